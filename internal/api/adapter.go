package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/eugenenazirov/barplanner/internal/engine"
)

// oneOrMany accepts either a single JSON object or an array of objects.
// Upstream recipe data arrives in both shapes depending on how the join was
// queried, so the normalization happens here, before anything reaches the
// engine.
type oneOrMany[T any] []T

func (m *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*m = nil
		return nil
	}
	if trimmed[0] == '[' {
		var list []T
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*m = list
		return nil
	}
	var single T
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	*m = []T{single}
	return nil
}

type ingredientPayload struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Category    string                       `json:"category"`
	Amount      float64                      `json:"amount"`
	Unit        string                       `json:"unit"`
	PackSize    *float64                     `json:"packSize"`
	Price       *float64                     `json:"price"`
	PurchaseURL string                       `json:"purchaseUrl"`
	PackOptions oneOrMany[engine.PackOption] `json:"packOptions"`
}

type recipePayload struct {
	Name        string                       `json:"name"`
	Ingredients oneOrMany[ingredientPayload] `json:"ingredients"`
}

type selectionPayload struct {
	Servings int           `json:"servings"`
	Recipe   recipePayload `json:"recipe"`
}

// flattenSelections expands each (recipe, servings) selection into flat
// per-serving usage lines for the engine. Ingredients without an id merge
// under their normalized display name.
func flattenSelections(selections []selectionPayload) []engine.UsageLine {
	var lines []engine.UsageLine
	for _, sel := range selections {
		for _, ing := range sel.Recipe.Ingredients {
			id := ing.ID
			if id == "" {
				id = strings.ToLower(strings.TrimSpace(ing.Name))
			}
			lines = append(lines, engine.UsageLine{
				IngredientID:     id,
				Name:             ing.Name,
				Category:         engine.Category(strings.ToLower(strings.TrimSpace(ing.Category))),
				AmountPerServing: ing.Amount,
				Servings:         sel.Servings,
				Unit:             ing.Unit,
				PackSize:         ing.PackSize,
				UnitPrice:        ing.Price,
				PurchaseURL:      ing.PurchaseURL,
				PackOptions:      ing.PackOptions,
			})
		}
	}
	return lines
}
