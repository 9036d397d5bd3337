package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/ui/tui"
	"github.com/aalvaropc/invoicer/internal/usecase"
	"github.com/aalvaropc/invoicer/internal/usecase/timesheet"
)

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = 0

func printSummary(w io.Writer, res usecase.GenerateResult, s domain.Settings) {
	theme := tui.DefaultTheme()
	inv := res.Invoice

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", theme.Title.Render("Invoice"), inv.Number)
	fmt.Fprintf(&b, "Client: %s\n", inv.Client.Name)
	fmt.Fprintf(&b, "Period: %s\n", inv.Period.Label())
	fmt.Fprintf(&b, "Hours:  %s\n", domain.FormatHours(inv.TotalHours))
	fmt.Fprintf(&b, "Total:  %s", domain.FormatMoney(s.Billing.Currency, inv.TotalAmount))
	fmt.Fprintln(w, theme.Card.Render(b.String()))

	fmt.Fprintf(w, "PDF generated: %s\n", res.Artifacts.PDFPath)
	fmt.Fprintf(w, "HTML saved: %s\n", res.Artifacts.HTMLPath)
	for _, loc := range res.Artifacts.Published {
		fmt.Fprintf(w, "Published: %s\n", loc)
	}
	if res.RunID != "" {
		fmt.Fprintln(w, theme.Help.Render("run "+res.RunID))
	}
}

func printTimesheet(w io.Writer, sheet timesheet.Sheet, ignored []string) {
	theme := tui.DefaultTheme()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.Accent).
		Headers(sheet.Headers()...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == headerRow {
				return theme.Title.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, week := range sheet.Weeks {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			switch {
			case c.Empty():
				cells = append(cells, "")
			case c.Weekend:
				cells = append(cells, theme.Weekend.Render(fmt.Sprintf("%2d  -", c.Day)))
			default:
				cells = append(cells, fmt.Sprintf("%2d %sh", c.Day, domain.FormatHours(c.Hours)))
			}
		}
		t.Row(cells...)
	}

	fmt.Fprintln(w, theme.Title.Render(sheet.Period.Label()))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Total hours: %s\n", domain.FormatHours(sheet.TotalHours))
	if len(ignored) > 0 {
		fmt.Fprintln(w, theme.Help.Render("Ignored overrides outside the month: "+strings.Join(ignored, ", ")))
	}
}

func printClients(w io.Writer, reg domain.Registry, s domain.Settings) {
	theme := tui.DefaultTheme()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.Accent).
		Headers("KEY", "NAME", "PREFIX", "RATE", "EMAIL").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == headerRow {
				return theme.Title.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, key := range reg.ClientKeys() {
		c := reg.Clients[key]
		t.Row(key, c.Name, c.Prefix, domain.FormatMoney(s.Billing.Currency, c.RateOr(s.Billing.DefaultRate)), c.Email)
	}

	fmt.Fprintln(w, theme.Title.Render(reg.Company.Name))
	fmt.Fprintln(w, t.Render())
}
