package ports

import (
	"context"

	"github.com/aalvaropc/invoicer/internal/domain"
)

// Renderer turns an assembled invoice document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, doc domain.Document) ([]byte, error)
}
