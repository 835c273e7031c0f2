package planner

import (
	"math"
	"reflect"
	"testing"
)

func TestBuildPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		required float64
		catalog  []Option
		want     *Plan
	}{
		{
			name:     "ExactCoverBeatsOvershootOnEqualCost",
			required: 900,
			catalog:  []Option{{Size: 200, Price: 3}, {Size: 500, Price: 6}},
			// two 500s (1000 covered) and 500+200+200 (900 covered) both
			// cost 12; least overshoot wins.
			want: &Plan{
				Items:     []Item{{Size: 500, Count: 1}, {Size: 200, Count: 2}},
				TotalCost: 12,
				Covered:   900,
			},
		},
		{
			name:     "SingleSizeReducesToCeilingDivision",
			required: 900,
			catalog:  []Option{{Size: 250, Price: 4}},
			want: &Plan{
				Items:     []Item{{Size: 250, Count: 4}},
				TotalCost: 16,
				Covered:   1000,
			},
		},
		{
			name:     "LargePackOvershootCheaperThanExactCover",
			required: 30,
			catalog:  []Option{{Size: 10, Price: 1}, {Size: 1000, Price: 1}},
			want: &Plan{
				Items:     []Item{{Size: 1000, Count: 1}},
				TotalCost: 1,
				Covered:   1000,
			},
		},
		{
			name:     "PreferredBottleSizeWinsCostTie",
			required: 300,
			catalog:  []Option{{Size: 700, Price: 5}, {Size: 300, Price: 5}},
			// equal cost, so the 700 bottle is chosen even though it wastes
			// more than the exact 300 cover.
			want: &Plan{
				Items:     []Item{{Size: 700, Count: 1}},
				TotalCost: 5,
				Covered:   700,
			},
		},
		{
			name:     "FractionalRequirementRoundsUp",
			required: 449.3,
			catalog:  []Option{{Size: 450, Price: 2}},
			want: &Plan{
				Items:     []Item{{Size: 450, Count: 1}},
				TotalCost: 2,
				Covered:   450,
			},
		},
		{
			name:     "ZeroRequirement",
			required: 0,
			catalog:  []Option{{Size: 500, Price: 6}},
			want:     nil,
		},
		{
			name:     "EmptyCatalog",
			required: 500,
			catalog:  nil,
			want:     nil,
		},
		{
			name:     "OnlyInvalidOptions",
			required: 500,
			catalog:  []Option{{Size: -5, Price: 3}, {Size: 200, Price: -1}, {Size: 100, Price: math.NaN()}},
			want:     nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := BuildPlan(tc.required, tc.catalog)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("unexpected plan: got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestBuildPlanFeasibilityAndCostAccounting(t *testing.T) {
	t.Parallel()

	catalog := []Option{
		{Size: 250, Price: 4},
		{Size: 500, Price: 7},
		{Size: 1000, Price: 12},
	}

	for required := 50; required <= 2500; required += 137 {
		plan := BuildPlan(float64(required), catalog)
		if plan == nil {
			t.Fatalf("expected a plan for required=%d", required)
		}

		covered := 0.0
		cost := 0.0
		for _, item := range plan.Items {
			covered += float64(item.Count) * item.Size
			cost += priceOf(t, catalog, item.Size) * float64(item.Count)
		}
		if covered < float64(required) {
			t.Fatalf("plan covers %v, below requirement %d", covered, required)
		}
		if covered != plan.Covered {
			t.Fatalf("covered mismatch: items sum to %v, plan reports %v", covered, plan.Covered)
		}
		if math.Abs(cost-plan.TotalCost) > 1e-9 {
			t.Fatalf("cost mismatch: items sum to %v, plan reports %v", cost, plan.TotalCost)
		}
	}
}

func TestBuildPlanMatchesBruteForce(t *testing.T) {
	t.Parallel()

	catalogs := [][]Option{
		{{Size: 200, Price: 3}, {Size: 500, Price: 6}},
		{{Size: 330, Price: 2.5}, {Size: 700, Price: 4.8}, {Size: 1000, Price: 6.9}},
		{{Size: 70, Price: 9}, {Size: 150, Price: 14}},
	}

	for _, catalog := range catalogs {
		for required := 100; required <= 1200; required += 173 {
			plan := BuildPlan(float64(required), catalog)
			best := bruteForceMinCost(catalog, required)
			if plan == nil {
				t.Fatalf("no plan for required=%d catalog=%v", required, catalog)
			}
			if math.Abs(plan.TotalCost-best) > 1e-9 {
				t.Fatalf("required=%d catalog=%v: plan cost %v, brute force found %v",
					required, catalog, plan.TotalCost, best)
			}
		}
	}
}

func TestBuildPlanSortsItemsBySizeDescending(t *testing.T) {
	t.Parallel()

	plan := BuildPlan(950, []Option{{Size: 200, Price: 3}, {Size: 500, Price: 6}, {Size: 50, Price: 1}})
	if plan == nil {
		t.Fatalf("expected a plan")
	}
	for i := 1; i < len(plan.Items); i++ {
		if plan.Items[i].Size >= plan.Items[i-1].Size {
			t.Fatalf("items not sorted descending by size: %+v", plan.Items)
		}
	}
}

func TestBuildPlanKeepsPurchaseURL(t *testing.T) {
	t.Parallel()

	plan := BuildPlan(600, []Option{{Size: 500, Price: 6, PurchaseURL: "https://shop.example/500"}})
	if plan == nil {
		t.Fatalf("expected a plan")
	}
	if len(plan.Items) != 1 || plan.Items[0].Count != 2 {
		t.Fatalf("expected two 500 packs, got %+v", plan.Items)
	}
	if plan.Items[0].PurchaseURL != "https://shop.example/500" {
		t.Fatalf("purchase URL not carried into the plan: %+v", plan.Items[0])
	}
}

func TestBuildPlanRejectsOversizedTable(t *testing.T) {
	t.Parallel()

	if plan := BuildPlan(maxPlanAmount+1, []Option{{Size: 1, Price: 1}}); plan != nil {
		t.Fatalf("expected nil plan beyond the table cap, got %+v", plan)
	}
}

func priceOf(t *testing.T, catalog []Option, size float64) float64 {
	t.Helper()
	for _, o := range catalog {
		if o.Size == size {
			return o.Price
		}
	}
	t.Fatalf("plan used size %v not present in catalog %v", size, catalog)
	return 0
}

// bruteForceMinCost exhaustively searches pack counts for the cheapest
// cover. Only usable on the small catalogs in these tests.
func bruteForceMinCost(catalog []Option, required int) float64 {
	best := math.Inf(1)
	var walk func(idx int, covered int, cost float64)
	walk = func(idx int, covered int, cost float64) {
		if cost >= best {
			return
		}
		if covered >= required {
			best = cost
			return
		}
		if idx == len(catalog) {
			return
		}
		size := int(catalog[idx].Size)
		maxCount := (required-covered)/size + 1
		for count := maxCount; count >= 0; count-- {
			walk(idx+1, covered+count*size, cost+float64(count)*catalog[idx].Price)
		}
	}
	walk(0, 0, 0)
	return best
}
