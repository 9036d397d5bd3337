// Package pdfrender draws the invoice straight onto an A4 page with maroto,
// for hosts that have no Chrome available.
package pdfrender

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/ports"
)

// gridSize splits evenly into the seven calendar columns and into halves.
const gridSize = 14

var (
	colorAccent = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorMuted  = &props.Color{Red: 110, Green: 110, Blue: 110}
	colorRule   = &props.Color{Red: 200, Green: 200, Blue: 200}
)

type Renderer struct {
	currency   string
	dateLayout string
}

type Option func(*Renderer)

func WithCurrency(symbol string) Option {
	return func(r *Renderer) { r.currency = symbol }
}

func WithDateLayout(layout string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(layout) != "" {
			r.dateLayout = layout
		}
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{currency: "€", dateLayout: "02/01/2006"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.Renderer = (*Renderer)(nil)

// Render ignores doc.HTML and lays out doc.Invoice directly.
func (r *Renderer) Render(ctx context.Context, doc domain.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, r.fail(err)
	}

	inv := doc.Invoice

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithMaxGridSize(gridSize).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+inv.Number, true).
		WithAuthor(inv.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(r.headerRow(inv))
	m.AddRows(line.NewRow(2, props.Line{Color: colorAccent, Thickness: 0.5}))
	m.AddRows(partiesRow(inv))
	m.AddRows(line.NewRow(4))

	m.AddRows(sectionRow("Timesheet: " + inv.Period.Label()))
	m.AddRows(calendarRows(inv)...)
	m.AddRows(line.NewRow(4))

	m.AddRows(itemsHeaderRow())
	m.AddRows(r.itemRows(inv)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorRule, Thickness: 0.3}))
	m.AddRows(r.totalRow(inv))

	if rows := paymentRows(inv.Company.ActiveAccounts()); len(rows) > 0 {
		m.AddRows(line.NewRow(4))
		m.AddRows(sectionRow("Payment details"))
		m.AddRows(rows...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, r.fail(err)
	}

	pdf := out.GetBytes()
	if len(pdf) == 0 {
		return nil, r.fail(fmt.Errorf("empty document"))
	}
	return pdf, nil
}

func (r *Renderer) fail(err error) error {
	return &domain.OpError{
		Op:   "pdfrender.render",
		Kind: domain.KindRender,
		Err:  fmt.Errorf("%w: %v", domain.ErrRenderFailed, err),
	}
}

func (r *Renderer) headerRow(inv domain.ComputedInvoice) core.Row {
	return row.New(24).Add(
		col.New(8).Add(
			text.New(inv.Company.Name, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorAccent}),
			text.New(inv.Company.Address, props.Text{Size: 8, Top: 8, Color: colorMuted}),
			text.New(companyIDs(inv.Company), props.Text{Size: 8, Top: 13, Color: colorMuted}),
			text.New(inv.Company.Email, props.Text{Size: 8, Top: 18, Color: colorMuted}),
		),
		col.New(6).Add(
			text.New("INVOICE", props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Right, Color: colorAccent}),
			text.New(inv.Number, props.Text{Size: 10, Top: 8, Align: align.Right}),
			text.New("Date: "+inv.IssueOn.Format(r.dateLayout), props.Text{Size: 8, Top: 14, Align: align.Right}),
			text.New("Due: "+inv.DueOn.Format(r.dateLayout), props.Text{Size: 8, Top: 19, Align: align.Right}),
		),
	)
}

func companyIDs(c domain.CompanyInfo) string {
	var parts []string
	if c.NIF != "" {
		parts = append(parts, "NIF: "+c.NIF)
	}
	if c.STAT != "" {
		parts = append(parts, "STAT: "+c.STAT)
	}
	return strings.Join(parts, "  ")
}

func partiesRow(inv domain.ComputedInvoice) core.Row {
	bill := []core.Component{
		text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorMuted}),
		text.New(inv.Client.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
	}
	top := 11.0
	if inv.Client.AttentionTo != "" {
		bill = append(bill, text.New("Attn: "+inv.Client.AttentionTo, props.Text{Style: fontstyle.Italic, Size: 8, Top: top}))
		top += 5
	}
	for _, l := range strings.Split(inv.Client.Address, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		bill = append(bill, text.New(l, props.Text{Size: 8, Top: top}))
		top += 4
	}
	if inv.Client.Email != "" {
		bill = append(bill, text.New(inv.Client.Email, props.Text{Size: 8, Top: top}))
		top += 4
	}

	return row.New(top+2).Add(
		col.New(8).Add(bill...),
		col.New(6).Add(
			text.New("PERIOD", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorMuted}),
			text.New(inv.Period.Label(), props.Text{Size: 10, Top: 5, Align: align.Right}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(
		col.New(gridSize).Add(text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorAccent})),
	)
}

func calendarRows(inv domain.ComputedInvoice) []core.Row {
	rows := make([]core.Row, 0, len(inv.Calendar)+1)

	head := make([]core.Col, 0, len(inv.CalendarHeaders))
	for _, h := range inv.CalendarHeaders {
		head = append(head, col.New(2).Add(text.New(h, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center})))
	}
	rows = append(rows, row.New(6).Add(head...))

	for _, week := range inv.Calendar {
		cols := make([]core.Col, 0, len(week))
		for _, c := range week {
			cell := col.New(2)
			switch {
			case c.Empty():
			case c.Weekend:
				cell.Add(text.New(fmt.Sprint(c.Day), props.Text{Size: 8, Align: align.Center, Color: colorMuted}))
			default:
				cell.Add(
					text.New(fmt.Sprint(c.Day), props.Text{Size: 8, Align: align.Center}),
					text.New(domain.FormatHours(c.Hours)+"h", props.Text{Size: 7, Top: 4, Align: align.Center, Color: colorMuted}),
				)
			}
			cols = append(cols, cell)
		}
		rows = append(rows, row.New(9).Add(cols...))
	}

	return rows
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 1}))
	}
	return row.New(7).Add(
		h("Description", 8, align.Left),
		h("Hours", 2, align.Right),
		h("Rate", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

func (r *Renderer) itemRows(inv domain.ComputedInvoice) []core.Row {
	rows := make([]core.Row, 0, len(inv.Items))
	for _, it := range inv.Items {
		rows = append(rows, row.New(7).Add(
			col.New(8).Add(text.New(it.Description, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(domain.FormatHours(it.Hours), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(2).Add(text.New(domain.FormatMoney(r.currency, it.Rate), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(2).Add(text.New(domain.FormatMoney(r.currency, it.Amount), props.Text{Size: 8, Top: 1, Align: align.Right})),
		))
	}
	return rows
}

func (r *Renderer) totalRow(inv domain.ComputedInvoice) core.Row {
	return row.New(12).Add(
		col.New(8).Add(text.New("Total hours: "+domain.FormatHours(inv.TotalHours), props.Text{Size: 8, Top: 2, Color: colorMuted})),
		col.New(4).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 10, Top: 2, Align: align.Right})),
		col.New(2).Add(text.New(domain.FormatMoney(r.currency, inv.TotalAmount), props.Text{Style: fontstyle.Bold, Size: 10, Top: 2, Align: align.Right})),
	)
}

// paymentRows mirrors the HTML variants: one block, two side by side, or a
// stacked list.
func paymentRows(accounts []domain.BankAccount) []core.Row {
	switch len(accounts) {
	case 0:
		return nil
	case 2:
		return []core.Row{accountRow(accountLines(accounts[0]), accountLines(accounts[1]))}
	default:
		rows := make([]core.Row, 0, len(accounts))
		for _, a := range accounts {
			rows = append(rows, accountRow(accountLines(a)))
		}
		return rows
	}
}

func accountRow(blocks ...[]string) core.Row {
	height := 0
	cols := make([]core.Col, 0, len(blocks))
	size := gridSize / len(blocks)
	for _, lines := range blocks {
		c := col.New(size)
		for i, l := range lines {
			style := props.Text{Size: 8, Top: float64(i * 4)}
			if i == 0 {
				style.Style = fontstyle.Bold
			}
			c.Add(text.New(l, style))
		}
		cols = append(cols, c)
		if len(lines) > height {
			height = len(lines)
		}
	}
	return row.New(float64(height*4 + 3)).Add(cols...)
}

func accountLines(a domain.BankAccount) []string {
	lines := []string{a.Name}
	add := func(label, v string) {
		if v != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("Account name", a.AccountName)
	add("Account number", a.AccountNumber)
	add("IBAN", a.IBAN)
	add("SWIFT", a.SWIFT)
	return lines
}
