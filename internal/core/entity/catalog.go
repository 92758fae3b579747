package entity

import (
	"context"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
)

// Catalog is the base type for reference data: products, branches,
// movement types. Catalog rows are keyed by a display name that is
// unique within their table.
type Catalog struct {
	BaseEntity

	// Name is the display name (unique within the catalog)
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Name:       name,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
