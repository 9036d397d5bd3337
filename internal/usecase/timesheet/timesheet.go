// Package timesheet lays out a month as a calendar grid and totals the
// billable hours of its workdays.
package timesheet

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aalvaropc/invoicer/internal/domain"
)

const (
	maxWeeks    = 6
	daysPerWeek = 7
)

// Cell is one slot of the grid.
type Cell = domain.CalendarCell

// Sheet is the calendar grid of a month plus its billable total.
type Sheet struct {
	Period     domain.Period
	WeekStart  time.Weekday
	Weeks      [][daysPerWeek]Cell
	TotalHours decimal.Decimal
}

// Options configures Build.
type Options struct {
	DailyHours decimal.Decimal
	WeekStart  time.Weekday
}

// DefaultOptions matches an 8-hour day on a Sunday-first calendar.
func DefaultOptions() Options {
	return Options{DailyHours: decimal.NewFromInt(8), WeekStart: time.Sunday}
}

// Build fills the grid for p. Weekdays take the override from custom when
// present, otherwise opts.DailyHours. Weekends always count zero.
func Build(p domain.Period, custom domain.CustomHours, opts Options) (Sheet, error) {
	if p.Year < 1 || p.Year > 9999 || p.Month < time.January || p.Month > time.December {
		return Sheet{}, &domain.OpError{
			Op:   "timesheet.build",
			Kind: domain.KindValidation,
			Err:  fmt.Errorf("period %04d-%02d is not a valid month: %w", p.Year, int(p.Month), domain.ErrInvalidInput),
		}
	}
	if opts.WeekStart < time.Sunday || opts.WeekStart > time.Saturday {
		opts.WeekStart = time.Sunday
	}

	first := p.FirstDay()
	days := p.Days()
	lead := (int(first.Weekday()) - int(opts.WeekStart) + daysPerWeek) % daysPerWeek

	sheet := Sheet{
		Period:     p,
		WeekStart:  opts.WeekStart,
		TotalHours: decimal.Zero,
	}

	day := 1
	for w := 0; w < maxWeeks && day <= days; w++ {
		var week [daysPerWeek]Cell
		for col := 0; col < daysPerWeek; col++ {
			if (w == 0 && col < lead) || day > days {
				continue
			}

			date := first.AddDate(0, 0, day-1)
			cell := Cell{Day: day, Date: date, Weekend: isWeekend(date.Weekday())}
			if !cell.Weekend {
				cell.Hours = opts.DailyHours
				if h, ok := custom.Lookup(date); ok {
					cell.Hours = h
				}
				sheet.TotalHours = sheet.TotalHours.Add(cell.Hours)
			}

			week[col] = cell
			day++
		}
		sheet.Weeks = append(sheet.Weeks, week)
	}

	return sheet, nil
}

// Populated counts the in-month cells of the grid.
func (s Sheet) Populated() int {
	n := 0
	for _, w := range s.Weeks {
		for _, c := range w {
			if !c.Empty() {
				n++
			}
		}
	}
	return n
}

// Headers returns the weekday column titles in grid order.
func (s Sheet) Headers() []string {
	out := make([]string, daysPerWeek)
	for i := range out {
		out[i] = time.Weekday((int(s.WeekStart) + i) % daysPerWeek).String()[:3]
	}
	return out
}

// HeaderHTML renders the weekday titles as a single <tr>.
func (s Sheet) HeaderHTML() string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, h := range s.Headers() {
		b.WriteString("<th>" + h + "</th>")
	}
	b.WriteString("</tr>")
	return b.String()
}

// HTML renders the grid body as <tr> rows for the calendar table.
func (s Sheet) HTML() string {
	var b strings.Builder
	for _, w := range s.Weeks {
		b.WriteString("<tr>")
		for _, c := range w {
			switch {
			case c.Empty():
				b.WriteString("<td></td>")
			case c.Weekend:
				fmt.Fprintf(&b, `<td class="weekend"><div class="day">%d</div></td>`, c.Day)
			default:
				fmt.Fprintf(&b, `<td><div class="day">%d</div><div class="hours">%sh</div></td>`, c.Day, domain.FormatHours(c.Hours))
			}
		}
		b.WriteString("</tr>")
	}
	return b.String()
}

// OutOfPeriod lists, sorted, the override dates that fall outside p.
func OutOfPeriod(p domain.Period, custom domain.CustomHours) []string {
	prefix := fmt.Sprintf("%04d-%02d-", p.Year, int(p.Month))
	var out []string
	for d := range custom {
		if !strings.HasPrefix(d, prefix) {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}
