package ports

import "github.com/aalvaropc/invoicer/internal/domain"

// ArtifactStore persists the PDF, the byte-identical HTML and the stylesheet.
// Either every file is committed or none is.
type ArtifactStore interface {
	Commit(out domain.Output) (domain.Artifacts, error)
}
