// Package config loads runtime configuration from multiple sources (YAML
// files, environment variables, CLI flags) with precedence: CLI flags >
// YAML config > Environment variables > Defaults. It also loads the
// ingredient pack-option catalogs that seed the in-memory store.
package config
