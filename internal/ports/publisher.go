package ports

import (
	"context"

	"github.com/aalvaropc/invoicer/internal/domain"
)

// Publisher copies committed artifacts to a remote destination and returns their locations.
type Publisher interface {
	Publish(ctx context.Context, art domain.Artifacts) ([]string, error)
}
