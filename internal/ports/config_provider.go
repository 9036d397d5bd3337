package ports

import "github.com/aalvaropc/invoicer/internal/domain"

// ConfigProvider loads company and client records from a source (e.g., a YAML/JSON file).
type ConfigProvider interface {
	LoadRegistry(path string) (domain.Registry, error)
}
