// Package application provides application initialization and dependency
// wiring. It encapsulates the creation of the catalog store, engine,
// handlers, router, metrics collector, and HTTP server instances, keeping
// the main package focused on CLI parsing and orchestration.
package application
