package engine

import "github.com/eugenenazirov/barplanner/internal/planner"

// Category classifies an ingredient for buffering and rounding decisions.
type Category string

const (
	CategoryLiquor    Category = "liquor"
	CategoryMixer     Category = "mixer"
	CategoryJuice     Category = "juice"
	CategorySyrup     Category = "syrup"
	CategoryGarnish   Category = "garnish"
	CategoryIce       Category = "ice"
	CategoryGlassware Category = "glassware"
)

// PackOption is one purchasable package of an ingredient.
type PackOption struct {
	Size        float64 `json:"size" yaml:"size"`
	Price       float64 `json:"price" yaml:"price"`
	PurchaseURL string  `json:"purchaseUrl,omitempty" yaml:"purchase_url,omitempty"`
	Tier        string  `json:"tier,omitempty" yaml:"tier,omitempty"`
}

// UsageLine is one ingredient's consumption contributed by a single
// (recipe, servings) selection. The caller is expected to have flattened
// recipe joins into these records already; the engine never sees nested
// shapes.
type UsageLine struct {
	IngredientID     string
	Name             string
	Category         Category
	AmountPerServing float64
	Servings         int
	Unit             string
	PackSize         *float64
	UnitPrice        *float64
	PurchaseURL      string
	PackOptions      []PackOption
}

// IngredientTotal is the finalized aggregate for one distinct ingredient.
//
// Total is the purchasable quantity: buffered and rounded per category and
// unit. Exactly one of Plan (multi-size catalog plan) and PacksNeeded
// (single default-size fallback) is populated when packaging information is
// known; both stay empty otherwise.
type IngredientTotal struct {
	IngredientID  string        `json:"ingredientId"`
	Name          string        `json:"name"`
	Category      Category      `json:"category"`
	Unit          string        `json:"unit"`
	RawTotal      float64       `json:"rawTotal"`
	BufferedTotal float64       `json:"bufferedTotal"`
	Total         float64       `json:"total"`
	PackSize      float64       `json:"packSize,omitempty"`
	PacksNeeded   int           `json:"packsNeeded,omitempty"`
	Plan          *planner.Plan `json:"plan,omitempty"`
	TotalCost     float64       `json:"totalCost,omitempty"`
	UnitPrice     *float64      `json:"unitPrice,omitempty"`
	PurchaseURL   string        `json:"purchaseUrl,omitempty"`
}
