// Package catalog lists the textbooks the pipeline ingests.
// The default OpenStax catalog is compiled into the binary; an operator
// can point CATALOG_PATH at a YAML file with the same shape to override it.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mathsnap/ingest/internal/models"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

type file struct {
	Books []models.Book `yaml:"books"`
}

// Load returns the books to ingest, from path if given, otherwise the
// embedded default catalog. Order is preserved: the pipeline processes
// books in catalog order.
func Load(path string) ([]models.Book, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = b
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Books) == 0 {
		return nil, fmt.Errorf("catalog has no books")
	}

	seen := make(map[string]struct{}, len(f.Books))
	for _, b := range f.Books {
		if b.Name == "" || b.URL == "" {
			return nil, fmt.Errorf("catalog entry missing name or url: %+v", b)
		}
		if _, dup := seen[b.Name]; dup {
			return nil, fmt.Errorf("duplicate book name %q", b.Name)
		}
		seen[b.Name] = struct{}{}
	}
	return f.Books, nil
}
