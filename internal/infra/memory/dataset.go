package memory

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"assessment-chat-service/internal/domain"
)

//go:embed topics.yaml
var topicsYAML []byte

// DefaultCatalog parses the embedded topic/question dataset. It backs the
// server when no database is configured.
func DefaultCatalog() (domain.Catalog, error) {
	var catalog domain.Catalog
	if err := yaml.Unmarshal(topicsYAML, &catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("parse embedded catalog: %w", err)
	}
	return catalog, nil
}

// DefaultLoader wraps the embedded dataset as a CatalogLoader.
func DefaultLoader() (CatalogLoader, error) {
	catalog, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	return NewStaticCatalogLoader(catalog), nil
}

var _ CatalogLoader = (*StaticCatalogLoader)(nil)
