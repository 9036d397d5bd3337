// Package lineitems turns billed hours into invoice rows.
package lineitems

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aalvaropc/invoicer/internal/domain"
)

// Result is the ordered set of rows plus their sum.
type Result struct {
	Items []domain.LineItem
	Total decimal.Decimal
}

// Build creates one row per explicit item, or a single "Development
// services" row for totalHours when no items are given.
func Build(p domain.Period, rate, totalHours decimal.Decimal, items []domain.ItemSpec) Result {
	res := Result{Total: decimal.Zero}

	if len(items) == 0 {
		li := domain.NewLineItem("Development services for "+p.Label(), totalHours, rate)
		res.Items = []domain.LineItem{li}
		res.Total = li.Amount
		return res
	}

	res.Items = make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		li := domain.NewLineItem(it.Description, it.Hours, rate)
		res.Items = append(res.Items, li)
		res.Total = res.Total.Add(li.Amount)
	}
	return res
}

// HTML renders the rows for the items table body.
func (r Result) HTML(currency string) string {
	var b strings.Builder
	for _, li := range r.Items {
		fmt.Fprintf(&b, "\n<tr>\n    <td>%s</td>\n    <td>%s</td>\n    <td>%s</td>\n    <td>%s</td>\n</tr>",
			html.EscapeString(li.Description),
			domain.FormatHours(li.Hours),
			html.EscapeString(domain.FormatMoney(currency, li.Rate)),
			html.EscapeString(domain.FormatMoney(currency, li.Amount)),
		)
	}
	return b.String()
}
