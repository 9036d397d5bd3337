// Package settings resolves runtime settings from invoicer.yaml, a
// workspace .env file, INVOICER_* environment variables and CLI flags,
// in increasing order of precedence.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aalvaropc/invoicer/internal/domain"
)

const (
	FileName  = "invoicer.yaml"
	EnvPrefix = "INVOICER"
)

// FlagKeys maps CLI flag names to settings keys.
var FlagKeys = map[string]string{
	"config":       "paths.config",
	"template-dir": "paths.templates",
	"output":       "paths.output",
	"renderer":     "render.backend",
	"chrome-path":  "render.chrome_path",
	"publish":      "publish.enabled",
}

// Load reads settings for the workspace at root. flags may be nil.
func Load(root string, flags *pflag.FlagSet) (domain.Settings, error) {
	if err := loadDotEnv(filepath.Join(root, ".env")); err != nil {
		return domain.Settings{}, err
	}

	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(root)

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return domain.Settings{}, settingsErr(root, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return domain.Settings{}, settingsErr(filepath.Join(root, FileName), err)
		}
	}

	return decode(root, v)
}

func setDefaults(v *viper.Viper) {
	d := domain.DefaultSettings()

	v.SetDefault("paths.config", d.Paths.ConfigFile)
	v.SetDefault("paths.templates", d.Paths.TemplateDir)
	v.SetDefault("paths.output", d.Paths.OutputDir)
	v.SetDefault("paths.file_mode", fmt.Sprintf("%04o", uint32(d.Paths.FileMode)))

	v.SetDefault("billing.due_days", d.Billing.DueDays)
	v.SetDefault("billing.default_rate", d.Billing.DefaultRate.String())
	v.SetDefault("billing.daily_hours", d.Billing.DailyHours.String())
	v.SetDefault("billing.currency", d.Billing.Currency)
	v.SetDefault("billing.date_layout", d.Billing.DateLayout)

	v.SetDefault("calendar.week_start", strings.ToLower(d.Calendar.WeekStart.String()))

	v.SetDefault("render.backend", string(d.Render.Backend))
	v.SetDefault("render.chrome_path", d.Render.ChromePath)
	v.SetDefault("render.timeout", d.Render.Timeout.String())

	v.SetDefault("publish.enabled", d.Publish.Enabled)
	v.SetDefault("publish.bucket", "")
	v.SetDefault("publish.prefix", "invoices")
	v.SetDefault("publish.region", "")
}

func decode(root string, v *viper.Viper) (domain.Settings, error) {
	path := filepath.Join(root, FileName)
	s := domain.DefaultSettings()

	s.Paths.ConfigFile = resolve(root, v.GetString("paths.config"))
	s.Paths.TemplateDir = resolve(root, v.GetString("paths.templates"))
	s.Paths.OutputDir = resolve(root, v.GetString("paths.output"))

	mode, err := strconv.ParseUint(strings.TrimSpace(v.GetString("paths.file_mode")), 8, 32)
	if err != nil || mode > 0o777 || mode&0o600 != 0o600 {
		return s, invalidKey(path, "paths.file_mode", "must be an octal mode the owner can read and write, e.g. 0644")
	}
	s.Paths.FileMode = fs.FileMode(mode)

	s.Billing.DueDays = v.GetInt("billing.due_days")
	if s.Billing.DueDays < 0 {
		return s, invalidKey(path, "billing.due_days", "must not be negative")
	}

	rate, err := decimal.NewFromString(v.GetString("billing.default_rate"))
	if err != nil || !rate.IsPositive() {
		return s, invalidKey(path, "billing.default_rate", "must be a positive number")
	}
	s.Billing.DefaultRate = rate

	daily, err := decimal.NewFromString(v.GetString("billing.daily_hours"))
	if err != nil || daily.IsNegative() {
		return s, invalidKey(path, "billing.daily_hours", "must be a non-negative number")
	}
	s.Billing.DailyHours = daily

	s.Billing.Currency = v.GetString("billing.currency")
	if layout := strings.TrimSpace(v.GetString("billing.date_layout")); layout != "" {
		s.Billing.DateLayout = layout
	}

	ws, err := parseWeekday(v.GetString("calendar.week_start"))
	if err != nil {
		return s, invalidKey(path, "calendar.week_start", err.Error())
	}
	s.Calendar.WeekStart = ws

	switch backend := domain.RendererKind(strings.ToLower(strings.TrimSpace(v.GetString("render.backend")))); backend {
	case domain.RendererChrome, domain.RendererNative:
		s.Render.Backend = backend
	default:
		return s, invalidKey(path, "render.backend", fmt.Sprintf("unsupported renderer %q (expected chrome|native)", backend))
	}
	s.Render.ChromePath = v.GetString("render.chrome_path")
	s.Render.Timeout = v.GetDuration("render.timeout")
	if s.Render.Timeout <= 0 {
		return s, invalidKey(path, "render.timeout", "must be a positive duration")
	}

	s.Publish = domain.PublishSettings{
		Enabled: v.GetBool("publish.enabled"),
		Bucket:  strings.TrimSpace(v.GetString("publish.bucket")),
		Prefix:  strings.Trim(v.GetString("publish.prefix"), "/"),
		Region:  strings.TrimSpace(v.GetString("publish.region")),
	}
	if s.Publish.Enabled && s.Publish.Bucket == "" {
		return s, invalidKey(path, "publish.bucket", "required when publishing is enabled")
	}

	return s, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday", "sun", "":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("unsupported week start %q (expected sunday|monday)", s)
	}
}

func resolve(root, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return settingsErr(path, err)
}

func settingsErr(path string, err error) error {
	return &domain.OpError{
		Op:   "settings.load",
		Kind: domain.KindConfig,
		Path: path,
		Err:  err,
	}
}

func invalidKey(path, key, msg string) error {
	return &domain.OpError{
		Op:   "settings.decode",
		Kind: domain.KindConfig,
		Path: path,
		Err:  fmt.Errorf("key %s: %s: %w", key, msg, domain.ErrInvalidConfig),
	}
}
