package ports

import "github.com/aalvaropc/invoicer/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
