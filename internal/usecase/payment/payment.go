// Package payment renders the bank-transfer instructions block.
package payment

import (
	"fmt"
	"html"
	"strings"

	"github.com/aalvaropc/invoicer/internal/domain"
)

// Variant is the presentation chosen from the number of active accounts.
type Variant string

const (
	VariantNone      Variant = "none"
	VariantSingle    Variant = "single"
	VariantTwoColumn Variant = "two_column"
	VariantStacked   Variant = "stacked"
)

// VariantFor maps an active-account count to its layout: 0, 1, 2 or 3+.
func VariantFor(n int) Variant {
	switch {
	case n <= 0:
		return VariantNone
	case n == 1:
		return VariantSingle
	case n == 2:
		return VariantTwoColumn
	default:
		return VariantStacked
	}
}

// Instructions renders the block for the given active accounts.
// Callers pass CompanyInfo.ActiveAccounts(); inactive entries are dropped
// here as well.
func Instructions(accounts []domain.BankAccount) (string, Variant) {
	active := make([]domain.BankAccount, 0, len(accounts))
	for _, a := range accounts {
		if a.Active {
			active = append(active, a)
		}
	}

	v := VariantFor(len(active))
	var b strings.Builder

	switch v {
	case VariantNone:
		return "", v

	case VariantSingle:
		b.WriteString("\n<p>\n    Please make payment to the following bank account:<br>\n")
		writeDetails(&b, active[0])
		b.WriteString("\n</p>")

	case VariantTwoColumn:
		b.WriteString("<p>Please make payment to one of the following bank accounts:</p>")
		b.WriteString(`<div class="two-column-layout">`)
		for _, a := range active {
			b.WriteString("\n<div class=\"bank-card\">\n")
			writeDetails(&b, a)
			b.WriteString("\n</div>")
		}
		b.WriteString("</div>")

	case VariantStacked:
		b.WriteString("<p>Please make payment to one of the following bank accounts:</p>")
		for _, a := range active {
			b.WriteString("\n<div class=\"bank-details\">\n")
			writeDetails(&b, a)
			b.WriteString("\n</div>")
		}
	}

	return b.String(), v
}

func writeDetails(b *strings.Builder, a domain.BankAccount) {
	fmt.Fprintf(b, "    <strong>Bank:</strong> %s<br>\n", html.EscapeString(a.Name))
	fmt.Fprintf(b, "    <strong>Account Name:</strong> %s<br>\n", html.EscapeString(a.AccountName))
	fmt.Fprintf(b, "    <strong>Account Number:</strong> %s<br>\n", html.EscapeString(a.AccountNumber))
	fmt.Fprintf(b, "    <strong>IBAN:</strong> %s<br>\n", html.EscapeString(a.IBAN))
	fmt.Fprintf(b, "    <strong>SWIFT/BIC:</strong> %s", html.EscapeString(a.SWIFT))
}
