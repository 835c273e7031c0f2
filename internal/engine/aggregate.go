package engine

import (
	"math"
	"strings"

	"github.com/eugenenazirov/barplanner/internal/planner"
)

// Engine turns flattened usage lines into a purchasable shopping list.
type Engine interface {
	BuildShoppingList(lines []UsageLine) []IngredientTotal
}

type listBuilder struct{}

// New creates the shopping-list engine. It is stateless and safe to share
// across concurrent callers.
func New() Engine {
	return &listBuilder{}
}

// accumulator is the running state for one ingredient while folding lines.
// Merge rules differ per field: totals add, pack size is last write wins,
// unit price and purchase URL are first value wins, options pool up.
type accumulator struct {
	id          string
	name        string
	category    Category
	unit        string
	rawTotal    float64
	packSize    float64
	unitPrice   *float64
	purchaseURL string
	options     []PackOption
}

func (b *listBuilder) BuildShoppingList(lines []UsageLine) []IngredientTotal {
	byID := make(map[string]*accumulator, len(lines))
	order := make([]string, 0, len(lines))

	for _, line := range lines {
		acc, ok := byID[line.IngredientID]
		if !ok {
			acc = &accumulator{
				id:       line.IngredientID,
				name:     line.Name,
				category: line.Category,
				unit:     normalizeUnit(line.Unit),
			}
			byID[line.IngredientID] = acc
			order = append(order, line.IngredientID)
		}

		acc.rawTotal += line.AmountPerServing * float64(line.Servings)

		if line.PackSize != nil && *line.PackSize > 0 {
			acc.packSize = *line.PackSize
		}
		if acc.unitPrice == nil && line.UnitPrice != nil && finite(*line.UnitPrice) {
			price := *line.UnitPrice
			acc.unitPrice = &price
		}
		if acc.purchaseURL == "" && line.PurchaseURL != "" {
			acc.purchaseURL = line.PurchaseURL
		}
		acc.options = append(acc.options, line.PackOptions...)
	}

	totals := make([]IngredientTotal, 0, len(order))
	for _, id := range order {
		totals = append(totals, finalize(byID[id]))
	}
	return totals
}

// finalize applies the safety buffer, the rounding policy and pack planning
// to one fully folded ingredient. Each ingredient is independent; order of
// finalization has no effect.
func finalize(acc *accumulator) IngredientTotal {
	buffered := acc.rawTotal * bufferFactor
	catalog := NormalizeOptions(acc.options)

	total := IngredientTotal{
		IngredientID:  acc.id,
		Name:          acc.name,
		Category:      acc.category,
		Unit:          acc.unit,
		RawTotal:      acc.rawTotal,
		BufferedTotal: buffered,
		UnitPrice:     acc.unitPrice,
		PurchaseURL:   acc.purchaseURL,
	}

	if acc.category == CategoryLiquor {
		finalizeLiquor(&total, acc, buffered, catalog)
		return total
	}

	total.Total = roundForPurchase(acc.category, acc.unit, buffered)
	total.PackSize = acc.packSize

	if plan := planFor(total.Total, catalog); plan != nil {
		total.Plan = plan
		total.TotalCost = plan.TotalCost
		return total
	}
	applyLegacyPacks(&total, acc)
	return total
}

// finalizeLiquor handles the liquor branch: quantities are always whole ml,
// the multi-size catalog plan wins over the legacy bottle count, and the
// bottle size defaults to 700 ml when nothing was recorded.
func finalizeLiquor(total *IngredientTotal, acc *accumulator, buffered float64, catalog []PackOption) {
	total.Unit = "ml"
	total.Total = ceilWhole(buffered)

	total.PackSize = acc.packSize
	if total.PackSize <= 0 {
		total.PackSize = defaultBottleSizeML
	}

	if plan := planFor(total.Total, catalog); plan != nil {
		total.Plan = plan
		total.TotalCost = plan.TotalCost
		return
	}

	total.PacksNeeded = int(ceilWhole(total.Total / total.PackSize))
	if acc.unitPrice != nil {
		total.TotalCost = float64(total.PacksNeeded) * *acc.unitPrice
	}
}

// applyLegacyPacks is the single-size fallback for ingredients without a
// catalog: plain ceiling division by the recorded pack size.
func applyLegacyPacks(total *IngredientTotal, acc *accumulator) {
	if acc.packSize <= 0 {
		return
	}
	total.PacksNeeded = int(ceilWhole(total.Total / acc.packSize))
	if acc.unitPrice != nil {
		total.TotalCost = float64(total.PacksNeeded) * *acc.unitPrice
	}
}

func planFor(required float64, catalog []PackOption) *planner.Plan {
	if len(catalog) == 0 {
		return nil
	}
	opts := make([]planner.Option, len(catalog))
	for i, c := range catalog {
		opts[i] = planner.Option{Size: c.Size, Price: c.Price, PurchaseURL: c.PurchaseURL}
	}
	return planner.BuildPlan(required, opts)
}

func normalizeUnit(unit string) string {
	unit = strings.ToLower(strings.TrimSpace(unit))
	if unit == "" {
		return "ml"
	}
	return unit
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
