package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one billable row.
type LineItem struct {
	Description string
	Hours       decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// NewLineItem computes Amount as hours × rate.
func NewLineItem(desc string, hours, rate decimal.Decimal) LineItem {
	return LineItem{
		Description: desc,
		Hours:       hours,
		Rate:        rate,
		Amount:      hours.Mul(rate),
	}
}

// CalendarCell is one slot of a timesheet grid. Day is 0 for slots outside
// the month.
type CalendarCell struct {
	Day     int
	Date    time.Time
	Weekend bool
	Hours   decimal.Decimal
}

// Empty reports whether the cell lies outside the month.
func (c CalendarCell) Empty() bool { return c.Day == 0 }

// ComputedInvoice holds everything derived for a single run. It is never persisted.
type ComputedInvoice struct {
	Number  string
	Period  Period
	IssueOn time.Time
	DueOn   time.Time

	Company CompanyInfo
	Client  ClientInfo

	CalendarHeaders  []string
	Calendar         [][7]CalendarCell
	CalendarHeadHTML string
	CalendarHTML     string
	TotalHours       decimal.Decimal

	Items       []LineItem
	ItemsHTML   string
	TotalAmount decimal.Decimal

	PaymentHTML string
}

// InvoiceNumber formats <prefix>-<YYYYMM>-<seq>, seq zero-padded to two digits.
func InvoiceNumber(prefix string, p Period, seq int) string {
	if seq < 1 {
		seq = 1
	}
	return fmt.Sprintf("%s-%04d%02d-%02d", prefix, p.Year, int(p.Month), seq)
}

// FormatMoney renders an amount with exactly two decimals, e.g. "€1500.00".
func FormatMoney(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}

// FormatHours renders hours without trailing zeros, e.g. "8" or "4.5".
func FormatHours(d decimal.Decimal) string {
	return d.String()
}

// Document is what a Renderer turns into a PDF.
type Document struct {
	HTML    string
	CSS     []byte
	Invoice ComputedInvoice
}

// Artifacts are the committed outputs of a run.
type Artifacts struct {
	PDFPath   string
	HTMLPath  string
	CSSPath   string
	Published []string
}

// TemplateSet is the HTML template and stylesheet used for one run.
type TemplateSet struct {
	Path string
	HTML string
	CSS  []byte
}

// Output is the fully rendered invoice ready to be committed.
type Output struct {
	Number string
	PDF    []byte
	HTML   string
	CSS    []byte
}

// WorkspaceSpec describes where a workspace is scaffolded.
type WorkspaceSpec struct {
	Root string
}
