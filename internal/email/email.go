// Package email renders a finalized shopping list into an order-list email
// body. Both an HTML and a plain-text rendering are produced; dispatching
// the message is the caller's concern.
package email

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/eugenenazirov/barplanner/internal/engine"
)

// OrderList holds both renderings of the same shopping list.
type OrderList struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

type listRow struct {
	Name     string
	Category string
	Quantity string
}

type listData struct {
	Event string
	Rows  []listRow
	Cost  string
}

// The template interpolates engine-provided strings (names, categories,
// units), so everything must go through html/template's escaping.
var htmlBody = template.Must(template.New("order-list").Parse(`<h2>Shopping list{{with .Event}} for {{.}}{{end}}</h2>
<table>
  <tbody>
{{- range .Rows}}
    <tr>
      <td>{{.Name}} <em>({{.Category}})</em></td>
      <td>{{.Quantity}}</td>
    </tr>
{{- end}}
  </tbody>
</table>
{{- with .Cost}}
<p>Estimated cost: {{.}}</p>
{{- end}}
`))

// RenderOrderList renders the shopping list into HTML and plain-text email
// bodies. The event name is optional and appears in the heading when set.
func RenderOrderList(event string, totals []engine.IngredientTotal) (OrderList, error) {
	data := listData{
		Event: event,
		Rows:  make([]listRow, 0, len(totals)),
	}

	cost := 0.0
	for _, total := range totals {
		data.Rows = append(data.Rows, listRow{
			Name:     total.Name,
			Category: string(total.Category),
			Quantity: quantityCell(total),
		})
		cost += total.TotalCost
	}
	if cost > 0 {
		data.Cost = formatAmount(cost)
	}

	var html strings.Builder
	if err := htmlBody.Execute(&html, data); err != nil {
		return OrderList{}, fmt.Errorf("render order list: %w", err)
	}

	return OrderList{HTML: html.String(), Text: renderText(data)}, nil
}

func renderText(data listData) string {
	var b strings.Builder
	b.WriteString("Shopping list")
	if data.Event != "" {
		b.WriteString(" for ")
		b.WriteString(data.Event)
	}
	b.WriteString("\n\n")
	for _, row := range data.Rows {
		fmt.Fprintf(&b, "- %s (%s): %s\n", row.Name, row.Category, row.Quantity)
	}
	if data.Cost != "" {
		fmt.Fprintf(&b, "\nEstimated cost: %s\n", data.Cost)
	}
	return b.String()
}

// quantityCell builds the right-hand cell: the purchasable total plus the
// pack breakdown, when one is known.
func quantityCell(total engine.IngredientTotal) string {
	cell := formatAmount(total.Total) + " " + total.Unit
	if breakdown := packBreakdown(total); breakdown != "" {
		cell += " · " + breakdown
	}
	return cell
}

// packBreakdown renders either the multi-size plan as "count × sizeunit"
// segments joined with " + " (plan items are already sorted largest first),
// the single default-size phrasing, or nothing.
func packBreakdown(total engine.IngredientTotal) string {
	if total.Plan != nil && len(total.Plan.Items) > 0 {
		segments := make([]string, 0, len(total.Plan.Items))
		for _, item := range total.Plan.Items {
			segments = append(segments, fmt.Sprintf("%d × %s%s", item.Count, formatAmount(item.Size), total.Unit))
		}
		return strings.Join(segments, " + ")
	}
	if total.PacksNeeded > 0 && total.PackSize > 0 {
		return fmt.Sprintf("%d × %s%s", total.PacksNeeded, formatAmount(total.PackSize), total.Unit)
	}
	return ""
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
