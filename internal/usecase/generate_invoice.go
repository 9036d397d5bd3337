package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aalvaropc/invoicer/internal/app/template"
	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/ports"
	"github.com/aalvaropc/invoicer/internal/usecase/lineitems"
	"github.com/aalvaropc/invoicer/internal/usecase/payment"
	"github.com/aalvaropc/invoicer/internal/usecase/timesheet"
)

// GenerateResult is what a successful run produced.
type GenerateResult struct {
	RunID     string
	Invoice   domain.ComputedInvoice
	Payment   payment.Variant
	Artifacts domain.Artifacts
}

type GenerateInvoice struct {
	config    ports.ConfigProvider
	templates ports.TemplateSource
	renderer  ports.Renderer
	store     ports.ArtifactStore
	publisher ports.Publisher

	now      func() time.Time
	newID    func() string
	log      *slog.Logger
	progress func(step string)
}

type GenerateOption func(*GenerateInvoice)

// WithNow is useful for tests.
func WithNow(now func() time.Time) GenerateOption {
	return func(uc *GenerateInvoice) { uc.now = now }
}

func WithLogger(l *slog.Logger) GenerateOption {
	return func(uc *GenerateInvoice) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithProgress is called with a short label before each pipeline step.
func WithProgress(fn func(step string)) GenerateOption {
	return func(uc *GenerateInvoice) {
		if fn != nil {
			uc.progress = fn
		}
	}
}

// WithPublisher uploads artifacts after they are committed.
func WithPublisher(p ports.Publisher) GenerateOption {
	return func(uc *GenerateInvoice) { uc.publisher = p }
}

func NewGenerateInvoice(cp ports.ConfigProvider, ts ports.TemplateSource, r ports.Renderer, st ports.ArtifactStore, opts ...GenerateOption) *GenerateInvoice {
	uc := &GenerateInvoice{
		config:    cp,
		templates: ts,
		renderer:  r,
		store:     st,
		now:       time.Now,
		newID:     uuid.NewString,
		log:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
		progress:  func(string) {},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs the pipeline once: config, timesheet, line items, payment,
// template, render, commit and optionally publish. The first failing step
// aborts the run and nothing is committed.
func (uc *GenerateInvoice) Execute(ctx context.Context, req domain.InvoiceRequest, s domain.Settings) (GenerateResult, error) {
	runID := uc.newID()
	log := uc.log.With("run_id", runID)
	started := uc.now()

	log.Info("invoice.start",
		"client", req.ClientKey,
		"period", req.Period.Label(),
		"seq", req.Seq,
		"renderer", string(s.Render.Backend),
	)

	inv, variant, tpl, err := uc.compute(req, s, log)
	if err != nil {
		log.Error("invoice.compute_failed", "error", err)
		return GenerateResult{}, err
	}

	uc.progress("assembling template")
	f := template.Format{Currency: s.Billing.Currency, DateLayout: s.Billing.DateLayout}
	html, err := template.Assemble(tpl.HTML, inv, f)
	if err != nil {
		err = withPath(err, tpl.Path)
		log.Error("invoice.template_failed", "template", tpl.Path, "error", err)
		return GenerateResult{}, err
	}

	renderCtx := ctx
	if s.Render.Timeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, s.Render.Timeout)
		defer cancel()
	}

	uc.progress("rendering PDF")
	pdf, err := uc.renderer.Render(renderCtx, domain.Document{HTML: html, CSS: tpl.CSS, Invoice: inv})
	if err != nil {
		log.Error("invoice.render_failed", "error", err)
		return GenerateResult{}, err
	}

	uc.progress("saving artifacts")
	art, err := uc.store.Commit(domain.Output{Number: inv.Number, PDF: pdf, HTML: html, CSS: tpl.CSS})
	if err != nil {
		log.Error("invoice.commit_failed", "error", err)
		return GenerateResult{}, err
	}

	if uc.publisher != nil {
		uc.progress("publishing")
		locs, err := uc.publisher.Publish(ctx, art)
		if err != nil {
			log.Error("invoice.publish_failed", "error", err)
			return GenerateResult{RunID: runID, Invoice: inv, Payment: variant, Artifacts: art}, err
		}
		art.Published = locs
	}

	log.Info("invoice.done",
		"number", inv.Number,
		"total_hours", inv.TotalHours.String(),
		"total_amount", inv.TotalAmount.StringFixed(2),
		"pdf", art.PDFPath,
		"duration_ms", uc.now().Sub(started).Milliseconds(),
	)

	return GenerateResult{RunID: runID, Invoice: inv, Payment: variant, Artifacts: art}, nil
}

func (uc *GenerateInvoice) compute(req domain.InvoiceRequest, s domain.Settings, log *slog.Logger) (domain.ComputedInvoice, payment.Variant, domain.TemplateSet, error) {
	uc.progress("loading config")
	reg, err := uc.config.LoadRegistry(s.Paths.ConfigFile)
	if err != nil {
		return domain.ComputedInvoice{}, "", domain.TemplateSet{}, err
	}

	client, err := reg.Client(req.ClientKey)
	if err != nil {
		return domain.ComputedInvoice{}, "", domain.TemplateSet{}, err
	}

	if skipped := timesheet.OutOfPeriod(req.Period, req.CustomHours); len(skipped) > 0 {
		log.Debug("timesheet.overrides_ignored", "dates", skipped)
	}

	uc.progress("building timesheet")
	sheet, err := timesheet.Build(req.Period, req.CustomHours, timesheet.Options{
		DailyHours: s.Billing.DailyHours,
		WeekStart:  s.Calendar.WeekStart,
	})
	if err != nil {
		return domain.ComputedInvoice{}, "", domain.TemplateSet{}, err
	}

	items := lineitems.Build(req.Period, client.RateOr(s.Billing.DefaultRate), sheet.TotalHours, req.Items)
	paymentHTML, variant := payment.Instructions(reg.Company.ActiveAccounts())
	log.Debug("invoice.computed",
		"weeks", len(sheet.Weeks),
		"items", len(items.Items),
		"payment_variant", string(variant),
	)

	tpl, err := uc.templates.Load()
	if err != nil {
		return domain.ComputedInvoice{}, "", domain.TemplateSet{}, err
	}

	issued := uc.now()
	issued = time.Date(issued.Year(), issued.Month(), issued.Day(), 0, 0, 0, 0, issued.Location())

	inv := domain.ComputedInvoice{
		Number:           domain.InvoiceNumber(client.Prefix, req.Period, req.Seq),
		Period:           req.Period,
		IssueOn:          issued,
		DueOn:            issued.AddDate(0, 0, s.Billing.DueDays),
		Company:          reg.Company,
		Client:           client,
		CalendarHeaders:  sheet.Headers(),
		Calendar:         sheet.Weeks,
		CalendarHeadHTML: sheet.HeaderHTML(),
		CalendarHTML:     sheet.HTML(),
		TotalHours:       sheet.TotalHours,
		Items:            items.Items,
		ItemsHTML:        items.HTML(s.Billing.Currency),
		TotalAmount:      items.Total,
		PaymentHTML:      paymentHTML,
	}

	return inv, variant, tpl, nil
}

// withPath records path on err's OpError when it has none yet.
func withPath(err error, path string) error {
	var oe *domain.OpError
	if errors.As(err, &oe) && oe.Path == "" {
		oe.Path = path
	}
	return err
}
