package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/ports"
)

// Loader reads the clients/company file.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.ConfigProvider = (*Loader)(nil)

func (l *Loader) LoadRegistry(path string) (domain.Registry, error) {
	return LoadRegistry(path)
}

func LoadRegistry(path string) (domain.Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Registry{}, &domain.OpError{
			Op:   "config.load_registry",
			Kind: domain.KindConfig,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLRegistry
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.Registry{}, &domain.OpError{
			Op:   "config.load_registry",
			Kind: domain.KindConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapRegistry(path, dto)
}
