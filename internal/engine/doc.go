// Package engine aggregates per-serving ingredient usage into a purchasable
// shopping list. It folds usage lines into one total per distinct
// ingredient, applies a 10% safety buffer and category/unit rounding rules,
// and resolves packaging either through the multi-size pack planner or a
// single default-size fallback. The engine performs no I/O and keeps no
// state between invocations.
package engine
