package template

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/infra/assets"
)

func sampleInvoice() domain.ComputedInvoice {
	issue := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)
	return domain.ComputedInvoice{
		Number:  "ACME-202403-01",
		Period:  domain.Period{Year: 2024, Month: time.March},
		IssueOn: issue,
		DueOn:   issue.AddDate(0, 0, 14),
		Company: domain.CompanyInfo{
			Name:    "Doe Consulting",
			Address: "1 Main St\nSpringfield",
			NIF:     "123",
			STAT:    "456",
			Email:   "jane@doe.test",
		},
		Client: domain.ClientInfo{
			Name:    "ACME <Corp>",
			Address: "2 Side St",
			Email:   "ap@acme.test",
			Prefix:  "ACME",
		},
		CalendarHeadHTML: "<tr><th>Sun</th></tr>",
		CalendarHTML:     "<tr><td></td></tr>",
		TotalHours:       decimal.NewFromInt(168),
		ItemsHTML:        "<tr><td>x</td></tr>",
		TotalAmount:      decimal.NewFromInt(8400),
	}
}

func TestValuesCoversEveryPlaceholder(t *testing.T) {
	vals := Values(sampleInvoice(), Format{Currency: "€", DateLayout: "02/01/2006"})
	for _, p := range Placeholders {
		if _, ok := vals[p]; !ok {
			t.Fatalf("placeholder %q has no value", p)
		}
	}
	if len(vals) != len(Placeholders) {
		t.Fatalf("expected %d values, got %d", len(Placeholders), len(vals))
	}
}

func TestAssembleDefaultTemplateLeavesNoPlaceholders(t *testing.T) {
	set, err := assets.NewLoader("").Load()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}

	out, err := Assemble(set.HTML, sampleInvoice(), Format{Currency: "€", DateLayout: "02/01/2006"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(out, "{{") || strings.Contains(out, "}}") {
		t.Fatalf("expected no placeholder tokens left")
	}
	for _, p := range Placeholders {
		if strings.Contains(out, "{{"+p+"}}") {
			t.Fatalf("placeholder %q left in output", p)
		}
	}

	wants := []string{
		"ACME-202403-01",
		"02/04/2024",
		"16/04/2024",
		"ACME &lt;Corp&gt;",
		"1 Main St<br>Springfield",
		"March 2024",
		"€8400.00",
		"(168h)",
	}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("expected output to contain %q", w)
		}
	}
	if strings.Count(out, "jane@doe.test") != 3 {
		t.Fatalf("expected repeated company email replaced at every occurrence")
	}
	if strings.Contains(out, "Attn:") {
		t.Fatalf("expected no attention line when client has none")
	}
}

func TestAssembleAttentionLine(t *testing.T) {
	inv := sampleInvoice()
	inv.Client.AttentionTo = "Wile E."

	out, err := Assemble("<p>{{attentionToLine}}</p>", inv, Format{Currency: "€"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "<p><em>Attn: Wile E.</em><br></p>" {
		t.Fatalf("unexpected attention line %q", out)
	}
}

func TestCheckReportsUnknownAndUnused(t *testing.T) {
	unknown, unused, err := Check("{{invoiceNumber}} {{clientNmae}}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unknown) != 1 || unknown[0] != "clientNmae" {
		t.Fatalf("unexpected unknown %v", unknown)
	}
	if len(unused) != len(Placeholders)-1 {
		t.Fatalf("expected %d unused, got %v", len(Placeholders)-1, unused)
	}
}

func TestCheckDefaultTemplateUsesEverything(t *testing.T) {
	set, err := assets.NewLoader("").Load()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	unknown, unused, err := Check(set.HTML)
	if err != nil || len(unknown) != 0 || len(unused) != 0 {
		t.Fatalf("expected default template to match placeholders exactly: unknown=%v unused=%v err=%v", unknown, unused, err)
	}
}

func TestAssembleAddressMarkupIsEscaped(t *testing.T) {
	inv := sampleInvoice()
	inv.Client.Address = "1 Main St<br>Springfield"

	out, err := Assemble("{{clientAddress}}|{{myCompanyAddress}}", inv, Format{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1 Main St&lt;br&gt;Springfield|1 Main St<br>Springfield" {
		t.Fatalf("expected inline markup escaped and newlines as <br>, got %q", out)
	}
}
