package domain

import (
	"io/fs"
	"time"

	"github.com/shopspring/decimal"
)

// RendererKind selects the PDF backend.
type RendererKind string

const (
	RendererChrome RendererKind = "chrome"
	RendererNative RendererKind = "native"
)

// Settings are the runtime knobs loaded from invoicer.yaml, env and flags.
type Settings struct {
	Paths    PathsSettings
	Billing  BillingSettings
	Calendar CalendarSettings
	Render   RenderSettings
	Publish  PublishSettings
}

type PathsSettings struct {
	ConfigFile  string
	TemplateDir string // empty means the embedded defaults
	OutputDir   string
	FileMode    fs.FileMode // permissions of committed artifacts
}

type BillingSettings struct {
	DueDays     int
	DefaultRate decimal.Decimal
	DailyHours  decimal.Decimal
	Currency    string
	DateLayout  string
}

type CalendarSettings struct {
	WeekStart time.Weekday
}

type RenderSettings struct {
	Backend    RendererKind
	ChromePath string
	Timeout    time.Duration
}

type PublishSettings struct {
	Enabled bool
	Bucket  string
	Prefix  string
	Region  string
}

// DefaultSettings provides sane defaults if invoicer.yaml is partially missing.
func DefaultSettings() Settings {
	return Settings{
		Paths: PathsSettings{
			ConfigFile: "config.yaml",
			OutputDir:  "dist",
			FileMode:   0o644,
		},
		Billing: BillingSettings{
			DueDays:     14,
			DefaultRate: decimal.NewFromInt(50),
			DailyHours:  decimal.NewFromInt(8),
			Currency:    "€",
			DateLayout:  "02/01/2006",
		},
		Calendar: CalendarSettings{WeekStart: time.Sunday},
		Render: RenderSettings{
			Backend: RendererChrome,
			Timeout: 60 * time.Second,
		},
	}
}
