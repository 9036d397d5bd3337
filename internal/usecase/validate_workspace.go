package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/aalvaropc/invoicer/internal/app/template"
	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/ports"
	"github.com/aalvaropc/invoicer/internal/usecase/payment"
)

// ValidationReport summarizes a workspace that passed validation.
type ValidationReport struct {
	TemplatePath   string
	Clients        int
	ActiveAccounts int
	Payment        payment.Variant
	// UnusedPlaceholders are known values the template never prints.
	UnusedPlaceholders []string
}

type ValidateWorkspace struct {
	config    ports.ConfigProvider
	templates ports.TemplateSource
}

func NewValidateWorkspace(cp ports.ConfigProvider, ts ports.TemplateSource) *ValidateWorkspace {
	return &ValidateWorkspace{config: cp, templates: ts}
}

// Execute checks the data config and the template without rendering
// anything: the config must load and map cleanly, and the template may
// only use known placeholders.
func (uc *ValidateWorkspace) Execute(ctx context.Context, s domain.Settings) (ValidationReport, error) {
	reg, err := uc.config.LoadRegistry(s.Paths.ConfigFile)
	if err != nil {
		return ValidationReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return ValidationReport{}, err
	}

	tpl, err := uc.templates.Load()
	if err != nil {
		return ValidationReport{}, err
	}

	unknown, unused, err := template.Check(tpl.HTML)
	if err != nil {
		return ValidationReport{}, withPath(err, tpl.Path)
	}
	if len(unknown) > 0 {
		return ValidationReport{}, &domain.OpError{
			Op:   "validate.template",
			Kind: domain.KindConfig,
			Path: tpl.Path,
			Err:  fmt.Errorf("unknown placeholder(s) %s: %w", strings.Join(unknown, ", "), domain.ErrBadPlaceholder),
		}
	}

	active := reg.Company.ActiveAccounts()
	return ValidationReport{
		TemplatePath:       tpl.Path,
		Clients:            len(reg.Clients),
		ActiveAccounts:     len(active),
		Payment:            payment.VariantFor(len(active)),
		UnusedPlaceholders: unused,
	}, nil
}
