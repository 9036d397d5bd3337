package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	isoDate = "2006-01-02"
	// year, month, clientKey, seq, customHours, items
	maxArgs = 6
)

// Period is a calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// Label is the human form used on the invoice, e.g. "March 2024".
func (p Period) Label() string {
	return p.Month.String() + " " + strconv.Itoa(p.Year)
}

// FirstDay returns midnight UTC of the first day of the period.
func (p Period) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of days in the period.
func (p Period) Days() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CustomHours maps YYYY-MM-DD to the hours worked that day.
type CustomHours map[string]decimal.Decimal

// Lookup returns the override for day d, if any.
func (c CustomHours) Lookup(d time.Time) (decimal.Decimal, bool) {
	if c == nil {
		return decimal.Decimal{}, false
	}
	h, ok := c[d.Format(isoDate)]
	return h, ok
}

// ItemSpec is an explicit line item as given on the command line.
type ItemSpec struct {
	Description string
	Hours       decimal.Decimal
}

// InvoiceRequest is the validated form of the command-line arguments.
type InvoiceRequest struct {
	Period      Period
	ClientKey   string
	Seq         int
	CustomHours CustomHours
	Items       []ItemSpec
}

// ParseRequest validates positional arguments:
// <year> <month> <clientKey> [seq] [customHours] [items].
func ParseRequest(args []string) (InvoiceRequest, error) {
	if len(args) < 3 {
		return InvoiceRequest{}, &OpError{
			Op:   "request.parse",
			Kind: KindUsage,
			Err:  ErrMissingArgs,
		}
	}
	if len(args) > maxArgs {
		return InvoiceRequest{}, &OpError{
			Op:   "request.parse",
			Kind: KindUsage,
			Err:  fmt.Errorf("%w: accepts at most %d arg(s), received %d", ErrTooManyArgs, maxArgs, len(args)),
		}
	}

	period, err := ParsePeriod(args[0], args[1])
	if err != nil {
		return InvoiceRequest{}, err
	}

	key := strings.TrimSpace(args[2])
	if key == "" {
		return InvoiceRequest{}, &OpError{
			Op:   "request.parse",
			Kind: KindUsage,
			Err:  ErrMissingArgs,
		}
	}

	req := InvoiceRequest{
		Period:    period,
		ClientKey: key,
		Seq:       1,
	}

	if len(args) > 3 {
		if req.Seq, err = ParseSeq(args[3]); err != nil {
			return InvoiceRequest{}, err
		}
	}
	if len(args) > 4 {
		if req.CustomHours, err = ParseCustomHours(args[4]); err != nil {
			return InvoiceRequest{}, err
		}
	}
	if len(args) > 5 {
		if req.Items, err = ParseItems(args[5]); err != nil {
			return InvoiceRequest{}, err
		}
	}

	return req, nil
}

// ParsePeriod validates a numeric year and a month in 1..12.
func ParsePeriod(year, month string) (Period, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < 1 || y > 9999 {
		return Period{}, invalid("request.period", "year %q is not a valid year", year)
	}

	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return Period{}, invalid("request.period", "month %q is not a number", month)
	}
	if m < 1 || m > 12 {
		return Period{}, invalid("request.period", "month %d out of range 1-12", m)
	}

	return Period{Year: y, Month: time.Month(m)}, nil
}

// ParseSeq parses the invoice sequence; empty means 1.
func ParseSeq(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, invalid("request.seq", "sequence %q must be a positive integer", s)
	}
	return n, nil
}

// ParseCustomHours parses "2024-01-15:4,2024-01-16:0". Blank entries are skipped.
func ParseCustomHours(s string) (CustomHours, error) {
	out := CustomHours{}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		date, hours, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, invalid("request.custom_hours", "entry %q must be date:hours", tok)
		}

		d, err := time.Parse(isoDate, strings.TrimSpace(date))
		if err != nil {
			return nil, invalid("request.custom_hours", "entry %q has invalid date (want YYYY-MM-DD)", tok)
		}

		h, err := parseHours(hours)
		if err != nil {
			return nil, invalid("request.custom_hours", "entry %q: %v", tok, err)
		}

		out[d.Format(isoDate)] = h
	}
	return out, nil
}

// ParseItems parses "Consulting:10,Support:5". The last ':' separates the
// description from the hours so descriptions may contain colons.
func ParseItems(s string) ([]ItemSpec, error) {
	var out []ItemSpec
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		i := strings.LastIndex(tok, ":")
		if i < 0 {
			return nil, invalid("request.items", "item %q must be description:hours", tok)
		}

		desc := strings.TrimSpace(tok[:i])
		if desc == "" {
			return nil, invalid("request.items", "item %q has an empty description", tok)
		}

		h, err := parseHours(tok[i+1:])
		if err != nil {
			return nil, invalid("request.items", "item %q: %v", tok, err)
		}

		out = append(out, ItemSpec{Description: desc, Hours: h})
	}
	return out, nil
}

func parseHours(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, errors.New("hours value is missing")
	}
	h, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("hours %q is not a number", s)
	}
	if h.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("hours %q must not be negative", s)
	}
	return h, nil
}
