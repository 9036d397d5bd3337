package template

import (
	"html"
	"strings"

	"github.com/aalvaropc/invoicer/internal/domain"
)

// Placeholder names understood by the invoice template.
const (
	InvoiceNumber       = "invoiceNumber"
	Date                = "date"
	DueDate             = "dueDate"
	MyCompanyName       = "myCompanyName"
	MyCompanyAddress    = "myCompanyAddress"
	MyCompanyEmail      = "myCompanyEmail"
	MyCompanyNif        = "myCompanyNif"
	MyCompanyStat       = "myCompanyStat"
	ClientName          = "clientName"
	ClientAddress       = "clientAddress"
	ClientEmail         = "clientEmail"
	AttentionToLine     = "attentionToLine"
	MonthYear           = "monthYear"
	CalendarHeader      = "calendarHeader"
	CalendarBody        = "calendarBody"
	InvoiceItems        = "invoiceItems"
	TotalAmount         = "totalAmount"
	TotalHours          = "totalHours"
	PaymentInstructions = "paymentInstructions"
)

// Placeholders lists every name Values resolves.
var Placeholders = []string{
	InvoiceNumber, Date, DueDate,
	MyCompanyName, MyCompanyAddress, MyCompanyEmail, MyCompanyNif, MyCompanyStat,
	ClientName, ClientAddress, ClientEmail, AttentionToLine,
	MonthYear, CalendarHeader, CalendarBody, InvoiceItems, TotalAmount, TotalHours,
	PaymentInstructions,
}

// Format controls how dates and money are printed.
type Format struct {
	Currency   string
	DateLayout string
}

// Values resolves every placeholder for inv. Text fields are escaped;
// the prebuilt HTML fragments go in as-is. Absent values are "".
func Values(inv domain.ComputedInvoice, f Format) map[string]string {
	attn := ""
	if a := strings.TrimSpace(inv.Client.AttentionTo); a != "" {
		attn = "<em>Attn: " + html.EscapeString(a) + "</em><br>"
	}

	return map[string]string{
		InvoiceNumber:       text(inv.Number),
		Date:                text(inv.IssueOn.Format(f.DateLayout)),
		DueDate:             text(inv.DueOn.Format(f.DateLayout)),
		MyCompanyName:       text(inv.Company.Name),
		MyCompanyAddress:    multiline(inv.Company.Address),
		MyCompanyEmail:      text(inv.Company.Email),
		MyCompanyNif:        text(inv.Company.NIF),
		MyCompanyStat:       text(inv.Company.STAT),
		ClientName:          text(inv.Client.Name),
		ClientAddress:       multiline(inv.Client.Address),
		ClientEmail:         text(inv.Client.Email),
		AttentionToLine:     attn,
		MonthYear:           text(inv.Period.Label()),
		CalendarHeader:      inv.CalendarHeadHTML,
		CalendarBody:        inv.CalendarHTML,
		InvoiceItems:        inv.ItemsHTML,
		TotalAmount:         text(domain.FormatMoney(f.Currency, inv.TotalAmount)),
		TotalHours:          text(domain.FormatHours(inv.TotalHours)),
		PaymentInstructions: inv.PaymentHTML,
	}
}

// Assemble resolves every placeholder of tpl for inv.
func Assemble(tpl string, inv domain.ComputedInvoice, f Format) (string, error) {
	return RenderString(tpl, Values(inv, f))
}

func text(s string) string {
	return html.EscapeString(s)
}

// multiline escapes s and turns line breaks into <br>.
func multiline(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

// Check reports the placeholders of tpl that Values cannot resolve, and the
// known placeholders tpl never uses.
func Check(tpl string) (unknown, unused []string, err error) {
	names, err := Scan(tpl)
	if err != nil {
		return nil, nil, err
	}

	known := make(map[string]bool, len(Placeholders))
	for _, p := range Placeholders {
		known[p] = true
	}
	used := map[string]bool{}
	for _, n := range names {
		used[n] = true
		if !known[n] {
			unknown = append(unknown, n)
		}
	}
	for _, p := range Placeholders {
		if !used[p] {
			unused = append(unused, p)
		}
	}
	return unknown, unused, nil
}
