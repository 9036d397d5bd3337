// Package artifactstore commits rendered invoices to the output directory.
package artifactstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/ports"
)

const (
	HTMLFile       = "index.html"
	StylesheetFile = "style.css"
	stagePattern   = ".invoicer-stage-*"
)

// PDFFile returns the PDF name for an invoice number.
func PDFFile(number string) string {
	return "invoice-" + number + ".pdf"
}

type FileStore struct {
	dir      string
	fileMode os.FileMode
}

type Option func(*FileStore)

// WithFileMode sets the permissions of committed files (default 0644).
func WithFileMode(mode os.FileMode) Option {
	return func(s *FileStore) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}

func NewFileStore(dir string, opts ...Option) *FileStore {
	if strings.TrimSpace(dir) == "" {
		dir = "dist"
	}
	s := &FileStore{dir: dir, fileMode: 0o644}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ArtifactStore = (*FileStore)(nil)

// Commit writes every file into a staging directory first and only moves
// them into the output directory once all writes succeeded. Files being
// replaced are set aside in the stage, so a failed move restores them.
func (s *FileStore) Commit(out domain.Output) (domain.Artifacts, error) {
	if err := checkNumber(out.Number); err != nil {
		return domain.Artifacts{}, err
	}
	if len(out.PDF) == 0 {
		return domain.Artifacts{}, &domain.OpError{
			Op:   "artifactstore.commit",
			Kind: domain.KindRender,
			Err:  fmt.Errorf("%w: no PDF bytes to commit", domain.ErrRenderFailed),
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return domain.Artifacts{}, &domain.OpError{
			Op:   "artifactstore.mkdir",
			Kind: domain.KindConfig,
			Path: s.dir,
			Err:  err,
		}
	}

	stage, err := os.MkdirTemp(s.dir, stagePattern)
	if err != nil {
		return domain.Artifacts{}, &domain.OpError{
			Op:   "artifactstore.stage",
			Kind: domain.KindConfig,
			Path: s.dir,
			Err:  err,
		}
	}
	defer os.RemoveAll(stage)

	files := []struct {
		name string
		data []byte
	}{
		{PDFFile(out.Number), out.PDF},
		{HTMLFile, []byte(out.HTML)},
		{StylesheetFile, out.CSS},
	}

	for _, f := range files {
		p := filepath.Join(stage, f.name)
		if err := os.WriteFile(p, f.data, s.fileMode); err != nil {
			return domain.Artifacts{}, &domain.OpError{
				Op:   "artifactstore.write",
				Kind: domain.KindConfig,
				Path: p,
				Err:  err,
			}
		}
	}

	var done []moved
	for _, f := range files {
		dst := filepath.Join(s.dir, f.name)
		m := moved{dst: dst}

		if info, err := os.Lstat(dst); err == nil && info.Mode().IsRegular() {
			m.backup = filepath.Join(stage, f.name+".prev")
			if err := os.Rename(dst, m.backup); err != nil {
				rollback(done)
				return domain.Artifacts{}, renameErr(dst, err)
			}
		}

		if err := os.Rename(filepath.Join(stage, f.name), dst); err != nil {
			if m.backup != "" {
				_ = os.Rename(m.backup, dst)
			}
			rollback(done)
			return domain.Artifacts{}, renameErr(dst, err)
		}
		done = append(done, m)
	}

	return domain.Artifacts{
		PDFPath:  filepath.Join(s.dir, files[0].name),
		HTMLPath: filepath.Join(s.dir, HTMLFile),
		CSSPath:  filepath.Join(s.dir, StylesheetFile),
	}, nil
}

// checkNumber keeps the invoice number usable as a single path element.
func checkNumber(n string) error {
	if strings.TrimSpace(n) == "" || strings.ContainsAny(n, `/\`) || n == "." || n == ".." {
		return &domain.OpError{
			Op:   "artifactstore.commit",
			Kind: domain.KindValidation,
			Err:  fmt.Errorf("%w: invoice number %q cannot be used as a file name", domain.ErrInvalidInput, n),
		}
	}
	return nil
}

// moved is a committed destination and, when it replaced an earlier file,
// where that file was set aside.
type moved struct {
	dst    string
	backup string
}

// rollback removes new files and puts the previous ones back, newest first.
func rollback(done []moved) {
	for i := len(done) - 1; i >= 0; i-- {
		m := done[i]
		if m.backup == "" {
			_ = os.Remove(m.dst)
			continue
		}
		_ = os.Rename(m.backup, m.dst)
	}
}

func renameErr(dst string, err error) error {
	return &domain.OpError{
		Op:   "artifactstore.rename",
		Kind: domain.KindConfig,
		Path: dst,
		Err:  err,
	}
}
