package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/infra/settings"
	"github.com/aalvaropc/invoicer/internal/ports"
)

// Finder locates an invoicer workspace root by searching for invoicer.yaml upward.
type Finder struct {
	ConfigFile string // defaults to settings.FileName
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: settings.FileName}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindConfig,
			Err:  err,
		}
	}

	// A file path means its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		if _, err := os.Stat(filepath.Join(cur, f.ConfigFile)); err == nil {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Path: abs,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}

// Resolve is FindRoot falling back to startDir itself when no workspace
// file exists above it, so a bare directory with config.yaml still works.
func (f *Finder) Resolve(startDir string) (string, error) {
	root, err := f.FindRoot(startDir)
	if err == nil {
		return root, nil
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		return "", err
	}
	return filepath.Abs(startDir)
}
