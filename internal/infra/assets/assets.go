// Package assets loads the invoice HTML template and its stylesheet,
// either from a workspace directory or from the built-in defaults.
package assets

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/ports"
)

const (
	TemplateFile   = "invoice.html"
	StylesheetFile = "style.css"
)

//go:embed defaults/invoice.html defaults/style.css
var defaultsFS embed.FS

// Loader reads template files from Dir, falling back to the embedded
// defaults for any file Dir does not contain. An empty Dir means defaults only.
type Loader struct {
	Dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{Dir: strings.TrimSpace(dir)}
}

var _ ports.TemplateSource = (*Loader)(nil)

func (l *Loader) Load() (domain.TemplateSet, error) {
	tpl, tplPath, err := l.read(TemplateFile)
	if err != nil {
		return domain.TemplateSet{}, err
	}
	css, _, err := l.read(StylesheetFile)
	if err != nil {
		return domain.TemplateSet{}, err
	}
	return domain.TemplateSet{
		Path: tplPath,
		HTML: string(tpl),
		CSS:  css,
	}, nil
}

func (l *Loader) read(name string) ([]byte, string, error) {
	if l.Dir != "" {
		path := filepath.Join(l.Dir, name)
		b, err := os.ReadFile(path)
		if err == nil {
			return b, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, path, &domain.OpError{
				Op:   "assets.read",
				Kind: domain.KindConfig,
				Path: path,
				Err:  err,
			}
		}
	}

	b, err := Default(name)
	if err != nil {
		return nil, "", err
	}
	return b, "builtin:" + name, nil
}

// Default returns a built-in file by name.
func Default(name string) ([]byte, error) {
	b, err := defaultsFS.ReadFile("defaults/" + name)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "assets.default",
			Kind: domain.KindNotFound,
			Path: name,
			Err:  err,
		}
	}
	return b, nil
}
