// Package planner computes the cheapest combination of discrete package
// sizes that covers a required ingredient quantity. It runs an unbounded
// coin-change dynamic program over integer amounts with headroom above the
// requirement, then picks among the feasible covers with deterministic
// tie-break rules.
package planner
