package ports

import "github.com/aalvaropc/invoicer/internal/domain"

// TemplateSource supplies the invoice template and stylesheet.
type TemplateSource interface {
	Load() (domain.TemplateSet, error)
}
