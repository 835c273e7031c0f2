package planner

import (
	"math"
	"sort"
)

// preferredPackSize is favoured when otherwise equal-cost plans compete.
// 700 is the conventional liquor bottle size in ml; the preference is
// applied to every catalog, not only liquor ones.
const preferredPackSize = 700

// maxPlanAmount bounds the dynamic-programming table so a pathological
// requirement or pack size cannot exhaust memory. Plans beyond the cap
// return nil and callers fall back to the single-size path.
const maxPlanAmount = 2_000_000

// Option is one purchasable package considered by the planner.
type Option struct {
	Size        float64
	Price       float64
	PurchaseURL string
}

// Item is one pack size within a plan and how many of it to buy.
type Item struct {
	Size        float64 `json:"size"`
	Count       int     `json:"count"`
	PurchaseURL string  `json:"purchaseUrl,omitempty"`
}

// Plan is a multiset of packs covering a required quantity.
type Plan struct {
	Items     []Item  `json:"items"`
	TotalCost float64 `json:"totalCost"`
	Covered   float64 `json:"covered"`
}

// BuildPlan finds the minimum-cost combination of packs whose combined
// capacity covers the required quantity. The search allows overshooting the
// requirement by up to twice the largest pack size, since a single big pack
// is sometimes cheaper than an exact cover. Returns nil when the requirement
// is zero or no usable pack option remains after filtering.
func BuildPlan(required float64, catalog []Option) *Plan {
	need := int(math.Ceil(math.Max(0, required)))
	opts := usableOptions(catalog)
	if need == 0 || len(opts) == 0 {
		return nil
	}

	largest := 0
	for _, o := range opts {
		if o.size > largest {
			largest = o.size
		}
	}
	maxAmount := need + 2*largest
	if maxAmount > maxPlanAmount {
		return nil
	}

	table := fillTable(maxAmount, opts)
	amount := selectCompletion(table, opts, need, maxAmount)
	if amount < 0 {
		return nil
	}
	return reconstruct(table, opts, amount)
}

// intOption is an Option with its size snapped to the integer amount grid
// the dynamic program runs on.
type intOption struct {
	size  int
	price float64
	url   string
}

func usableOptions(catalog []Option) []intOption {
	out := make([]intOption, 0, len(catalog))
	for _, o := range catalog {
		size := int(math.Round(o.Size))
		if size <= 0 || o.Price < 0 || math.IsNaN(o.Price) || math.IsInf(o.Price, 0) {
			continue
		}
		out = append(out, intOption{size: size, price: o.Price, url: o.PurchaseURL})
	}
	return out
}

// dpTable holds the fill results: the cheapest known cost per amount plus
// the predecessor amount and chosen option index needed to rebuild a plan.
type dpTable struct {
	cost   []float64
	prev   []int
	choice []int
}

func fillTable(maxAmount int, opts []intOption) *dpTable {
	t := &dpTable{
		cost:   make([]float64, maxAmount+1),
		prev:   make([]int, maxAmount+1),
		choice: make([]int, maxAmount+1),
	}
	for a := 1; a <= maxAmount; a++ {
		t.cost[a] = math.Inf(1)
		t.prev[a] = -1
		t.choice[a] = -1
	}
	t.prev[0] = -1
	t.choice[0] = -1

	for a := 1; a <= maxAmount; a++ {
		for i, o := range opts {
			from := a - o.size
			if from < 0 || math.IsInf(t.cost[from], 1) {
				continue
			}
			if cand := t.cost[from] + o.price; cand < t.cost[a] {
				t.cost[a] = cand
				t.prev[a] = from
				t.choice[a] = i
			}
		}
	}
	return t
}

// completion summarizes one feasible covering amount for tie-breaking.
type completion struct {
	amount         int
	cost           float64
	preferredPacks int
	totalPacks     int
}

// selectCompletion picks the winning amount among all reachable amounts in
// [need, maxAmount]. Tie-break order: lowest cost, then most packs of the
// preferred size, then least overshoot, then fewest packs; a fully tied
// candidate loses to the earlier amount. Returns -1 when nothing in the
// range is reachable.
func selectCompletion(t *dpTable, opts []intOption, need, maxAmount int) int {
	best := completion{amount: -1}
	for a := need; a <= maxAmount; a++ {
		if math.IsInf(t.cost[a], 1) {
			continue
		}
		cand := summarize(t, opts, a)
		if best.amount < 0 || beats(cand, best) {
			best = cand
		}
	}
	return best.amount
}

func summarize(t *dpTable, opts []intOption, amount int) completion {
	c := completion{amount: amount, cost: t.cost[amount]}
	for a := amount; a > 0; a = t.prev[a] {
		o := opts[t.choice[a]]
		c.totalPacks++
		if o.size == preferredPackSize {
			c.preferredPacks++
		}
	}
	return c
}

func beats(a, b completion) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.preferredPacks != b.preferredPacks {
		return a.preferredPacks > b.preferredPacks
	}
	if a.amount != b.amount {
		return a.amount < b.amount
	}
	return a.totalPacks < b.totalPacks
}

// reconstruct walks the predecessor pointers from the winning amount and
// groups the chosen packs per size, largest first. Each size keeps the
// purchase URL of the first pack of that size encountered on the walk.
func reconstruct(t *dpTable, opts []intOption, amount int) *Plan {
	counts := make(map[int]int)
	urls := make(map[int]string)
	var sizes []int

	for a := amount; a > 0; a = t.prev[a] {
		o := opts[t.choice[a]]
		if counts[o.size] == 0 {
			sizes = append(sizes, o.size)
			urls[o.size] = o.url
		}
		counts[o.size]++
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))

	plan := &Plan{
		Items:     make([]Item, 0, len(sizes)),
		TotalCost: t.cost[amount],
		Covered:   float64(amount),
	}
	for _, size := range sizes {
		plan.Items = append(plan.Items, Item{
			Size:        float64(size),
			Count:       counts[size],
			PurchaseURL: urls[size],
		})
	}
	return plan
}
