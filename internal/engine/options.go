package engine

import "math"

// NormalizeOptions filters out unusable pack options and deduplicates the
// remainder by (tier, size), keeping the cheapest entry per key. Among
// equally priced duplicates the one carrying a purchase URL wins. Input
// order of first appearance is preserved.
func NormalizeOptions(options []PackOption) []PackOption {
	type optionKey struct {
		tier string
		size float64
	}

	best := make(map[optionKey]PackOption, len(options))
	order := make([]optionKey, 0, len(options))

	for _, opt := range options {
		if !usableOption(opt) {
			continue
		}
		key := optionKey{tier: opt.Tier, size: opt.Size}
		current, seen := best[key]
		if !seen {
			best[key] = opt
			order = append(order, key)
			continue
		}
		if opt.Price < current.Price {
			best[key] = opt
			continue
		}
		if opt.Price == current.Price && current.PurchaseURL == "" && opt.PurchaseURL != "" {
			best[key] = opt
		}
	}

	if len(order) == 0 {
		return nil
	}
	out := make([]PackOption, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

func usableOption(opt PackOption) bool {
	if opt.Size <= 0 || math.IsNaN(opt.Size) || math.IsInf(opt.Size, 0) {
		return false
	}
	if opt.Price < 0 || math.IsNaN(opt.Price) || math.IsInf(opt.Price, 0) {
		return false
	}
	return true
}
