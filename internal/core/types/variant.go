// Package types provides common type aliases and utilities.
package types

// VariantKey identifies a single variant of a product in balance maps.
// Products without variants are keyed under NoVariant so that the shape
// of a balance map is uniform regardless of the product.
type VariantKey string

// NoVariant is the key used for a product that has no variants.
const NoVariant VariantKey = "__default__"

// KeyOf maps an optional variant name to its balance-map key.
func KeyOf(variant *string) VariantKey {
	if variant == nil || *variant == "" {
		return NoVariant
	}
	return VariantKey(*variant)
}

// Ptr returns the variant name as stored in movement rows: nil for the
// no-variant key, a pointer to the name otherwise.
func (k VariantKey) Ptr() *string {
	if k == NoVariant || k == "" {
		return nil
	}
	s := string(k)
	return &s
}

// IsDefault reports whether the key denotes the variantless bucket.
func (k VariantKey) IsDefault() bool {
	return k == NoVariant || k == ""
}
