package email

import (
	"strings"
	"testing"

	"github.com/eugenenazirov/barplanner/internal/engine"
	"github.com/eugenenazirov/barplanner/internal/planner"
)

func TestRenderOrderListEscapesHTML(t *testing.T) {
	t.Parallel()

	totals := []engine.IngredientTotal{
		{Name: `<b>Rum & "Cola"</b>`, Category: "liquor", Unit: "ml", Total: 700},
	}

	got, err := RenderOrderList(`Tom's <party>`, totals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(got.HTML, `<b>Rum`) {
		t.Fatalf("ingredient name leaked unescaped into HTML:\n%s", got.HTML)
	}
	for _, want := range []string{"&lt;b&gt;", "&amp;", "&#34;Cola&#34;", "Tom&#39;s &lt;party&gt;"} {
		if !strings.Contains(got.HTML, want) {
			t.Fatalf("expected %q in HTML body:\n%s", want, got.HTML)
		}
	}
	// plain text keeps the original characters
	if !strings.Contains(got.Text, `<b>Rum & "Cola"</b>`) {
		t.Fatalf("plain text should not be escaped:\n%s", got.Text)
	}
}

func TestRenderOrderListPlanBreakdown(t *testing.T) {
	t.Parallel()

	totals := []engine.IngredientTotal{
		{
			Name: "Gin", Category: "liquor", Unit: "ml", Total: 880,
			Plan: &planner.Plan{
				Items:     []planner.Item{{Size: 700, Count: 1}, {Size: 200, Count: 1}},
				TotalCost: 22,
				Covered:   900,
			},
			TotalCost: 22,
		},
	}

	got, err := RenderOrderList("", totals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "880 ml · 1 × 700ml + 1 × 200ml"
	if !strings.Contains(got.Text, want) {
		t.Fatalf("expected breakdown %q in:\n%s", want, got.Text)
	}
	if !strings.Contains(got.Text, "Estimated cost: 22") {
		t.Fatalf("expected cost line in:\n%s", got.Text)
	}
}

func TestRenderOrderListLegacyBottlePhrasing(t *testing.T) {
	t.Parallel()

	totals := []engine.IngredientTotal{
		{Name: "Vodka", Category: "liquor", Unit: "ml", Total: 440, PackSize: 700, PacksNeeded: 1},
	}

	got, err := RenderOrderList("", totals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got.Text, "440 ml · 1 × 700ml") {
		t.Fatalf("expected default-bottle phrasing in:\n%s", got.Text)
	}
}

func TestRenderOrderListOmitsBreakdownWhenUnknown(t *testing.T) {
	t.Parallel()

	totals := []engine.IngredientTotal{
		{Name: "Mint", Category: "garnish", Unit: "g", Total: 120},
	}

	got, err := RenderOrderList("", totals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got.Text, "- Mint (garnish): 120 g\n") {
		t.Fatalf("expected bare quantity row in:\n%s", got.Text)
	}
	if strings.Contains(got.Text, "·") {
		t.Fatalf("no separator expected without a breakdown:\n%s", got.Text)
	}
	if strings.Contains(got.Text, "Estimated cost") {
		t.Fatalf("no cost line expected without prices:\n%s", got.Text)
	}
}
