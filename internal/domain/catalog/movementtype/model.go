// Package movementtype manages the stock-in and stock-out type catalogs.
package movementtype

import (
	"context"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/entity"
)

// Direction selects which movement log a type belongs to.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Valid reports whether the direction is one of the two known values.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Destination categorizes where outgoing stock goes.
type Destination string

const (
	DestinationCentral  Destination = "central"
	DestinationBranch   Destination = "branch"
	DestinationSupplier Destination = "supplier"
)

// Valid reports whether the destination is one of the known categories.
func (d Destination) Valid() bool {
	switch d {
	case DestinationCentral, DestinationBranch, DestinationSupplier:
		return true
	}
	return false
}

// AdjustmentTypeName is the well-known type reconciliation corrections use.
// Seeded idempotently at startup; looked up by name at reconcile time.
const AdjustmentTypeName = "Stock Opname"

// MovementType is a catalog row in stock_in_types or stock_out_types.
// Names are unique within each direction's table.
type MovementType struct {
	entity.Catalog

	// Direction decides the backing table; not a column itself
	Direction Direction `db:"-" json:"direction"`

	// Destination is the default destination for out-types; empty for in-types
	Destination Destination `db:"destination" json:"destination,omitempty"`
}

// New creates a MovementType with generated ID.
func New(direction Direction, name string) *MovementType {
	return &MovementType{
		Catalog:   entity.NewCatalog(name),
		Direction: direction,
	}
}

// Validate implements entity.Validatable.
func (t *MovementType) Validate(ctx context.Context) error {
	if err := t.Catalog.Validate(ctx); err != nil {
		return err
	}
	if !t.Direction.Valid() {
		return apperror.NewValidation("direction must be in or out").
			WithDetail("field", "direction").
			WithDetail("direction", string(t.Direction))
	}
	if t.Direction == DirectionIn && t.Destination != "" {
		return apperror.NewValidation("stock-in types have no destination").
			WithDetail("field", "destination")
	}
	if t.Direction == DirectionOut && t.Destination != "" && !t.Destination.Valid() {
		return apperror.NewValidation("destination must be central, branch or supplier").
			WithDetail("field", "destination").
			WithDetail("destination", string(t.Destination))
	}
	return nil
}
