// Package product manages the product catalog, including variant labels.
package product

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/entity"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/types"
)

// VariantList holds the declared variant labels of a product.
// Stored as a JSONB array; an empty list means the product has no variants.
// Implements sql.Scanner and driver.Valuer for PostgreSQL JSONB mapping.
type VariantList []string

// Scan implements sql.Scanner for reading from PostgreSQL JSONB.
func (v *VariantList) Scan(src any) error {
	if src == nil {
		*v = nil
		return nil
	}

	var source []byte
	switch t := src.(type) {
	case []byte:
		source = t
	case string:
		source = []byte(t)
	default:
		return fmt.Errorf("unsupported type for VariantList: %T", src)
	}

	if len(source) == 0 {
		*v = nil
		return nil
	}
	return json.Unmarshal(source, v)
}

// Value implements driver.Valuer for writing to PostgreSQL JSONB.
func (v VariantList) Value() (driver.Value, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

// Contains reports whether the label is one of the declared variants.
func (v VariantList) Contains(label string) bool {
	for _, s := range v {
		if s == label {
			return true
		}
	}
	return false
}

// Keys returns the balance-map keys for the declared variants.
// A product without variants has exactly one key, the sentinel.
func (v VariantList) Keys() []types.VariantKey {
	if len(v) == 0 {
		return []types.VariantKey{types.NoVariant}
	}
	keys := make([]types.VariantKey, 0, len(v))
	for _, s := range v {
		keys = append(keys, types.VariantKey(s))
	}
	return keys
}

// Product is a catalog item that stock movements reference.
// Product names are display labels and are not required to be unique;
// all ledger references go by id.
type Product struct {
	entity.Catalog

	// Variants lists the declared variant labels (may be empty)
	Variants VariantList `db:"variants" json:"variants"`

	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a Product with generated ID.
func New(name string, variants []string) *Product {
	p := &Product{
		Catalog:  entity.NewCatalog(name),
		Variants: variants,
	}
	p.UpdatedAt = p.CreatedAt
	return p
}

// HasVariants reports whether the product declares any variant labels.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(p.Variants))
	for _, label := range p.Variants {
		if strings.TrimSpace(label) == "" {
			return apperror.NewValidation("variant labels must not be blank").
				WithDetail("field", "variants")
		}
		if _, dup := seen[label]; dup {
			return apperror.NewValidation("variant labels must be unique").
				WithDetail("field", "variants").
				WithDetail("duplicate", label)
		}
		seen[label] = struct{}{}
	}
	return nil
}

// ValidateVariantRef checks a movement's variant reference against the
// declared set: products with variants require a declared label, products
// without variants require none.
func (p *Product) ValidateVariantRef(variant *string) error {
	if p.HasVariants() {
		if variant == nil || *variant == "" {
			return apperror.NewValidation("variant is required for this product").
				WithDetail("field", "variant").
				WithDetail("productId", p.ID.String())
		}
		if !p.Variants.Contains(*variant) {
			return apperror.NewValidation("variant is not declared for this product").
				WithDetail("field", "variant").
				WithDetail("variant", *variant).
				WithDetail("productId", p.ID.String())
		}
		return nil
	}
	if variant != nil && *variant != "" {
		return apperror.NewValidation("product has no variants").
			WithDetail("field", "variant").
			WithDetail("variant", *variant).
			WithDetail("productId", p.ID.String())
	}
	return nil
}
