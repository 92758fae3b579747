// Package ledger records stock movements. Entries are append-only: there
// is no update or delete path, and balances are always derived from the
// full logs.
package ledger

import (
	"context"
	"time"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
)

// Entry is one movement row in stock_in or stock_out.
// Direction is implied by the table and not stored as a column.
type Entry struct {
	ID id.ID `db:"id" json:"id"`

	// Direction routes the entry to its log
	Direction movementtype.Direction `db:"-" json:"direction"`

	ProductID id.ID   `db:"product_id" json:"productId"`
	Variant   *string `db:"variant" json:"variant,omitempty"`
	Qty       int64   `db:"qty" json:"qty"`
	TypeID    id.ID   `db:"type_id" json:"typeId"`

	// BranchID is required when Destination is branch, optional otherwise
	BranchID *id.ID `db:"branch_id" json:"branchId,omitempty"`

	// Destination applies to stock-out entries only
	Destination movementtype.Destination `db:"destination" json:"destination,omitempty"`

	// Delivery metadata
	VehiclePlate    string `db:"vehicle_plate" json:"vehiclePlate,omitempty"`
	Driver          string `db:"driver" json:"driver,omitempty"`
	DeliveryOrderNo string `db:"delivery_order_no" json:"deliveryOrderNo,omitempty"`
	Note            string `db:"note" json:"note,omitempty"`

	// OccurredAt is the business timestamp reports and balances order by
	OccurredAt time.Time `db:"occurred_at" json:"occurredAt"`

	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// EntryView is an Entry enriched with display names for listing.
type EntryView struct {
	Entry

	ProductName string  `db:"product_name" json:"productName"`
	TypeName    string  `db:"type_name" json:"typeName"`
	BranchName  *string `db:"branch_name" json:"branchName,omitempty"`
}

// Validate checks entry invariants that need no database access.
func (e *Entry) Validate(ctx context.Context) error {
	if !e.Direction.Valid() {
		return apperror.NewValidation("direction must be in or out").
			WithDetail("field", "direction")
	}
	if id.IsNil(e.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if id.IsNil(e.TypeID) {
		return apperror.NewValidation("movement type is required").
			WithDetail("field", "typeId")
	}
	if e.Qty < 1 {
		return apperror.NewValidation("qty must be at least 1").
			WithDetail("field", "qty").
			WithDetail("qty", e.Qty)
	}
	if e.Direction == movementtype.DirectionOut {
		if !e.Destination.Valid() {
			return apperror.NewValidation("destination must be central, branch or supplier").
				WithDetail("field", "destination").
				WithDetail("destination", string(e.Destination))
		}
		if e.Destination == movementtype.DestinationBranch && e.BranchID == nil {
			return apperror.NewValidation("branch is required for branch-destined stock-out").
				WithDetail("field", "branchId")
		}
	}
	if e.Direction == movementtype.DirectionIn && e.Destination != "" {
		return apperror.NewValidation("stock-in entries have no destination").
			WithDetail("field", "destination")
	}
	return nil
}

// ListFilter narrows a movement listing.
type ListFilter struct {
	Direction movementtype.Direction

	ProductID *id.ID
	Variant   *string
	TypeID    *id.ID
	BranchID  *id.ID
	From      *time.Time
	To        *time.Time

	Limit  int
	Offset int
}

// ListResult is a paginated page of enriched entries.
type ListResult = domain.ListResult[*EntryView]

// Repository stores movement rows.
type Repository interface {
	// Insert appends one entry to its log
	Insert(ctx context.Context, e *Entry) error

	// InsertBatch appends many entries via the COPY protocol.
	// Must run inside a transaction; the whole batch lands or none of it.
	InsertBatch(ctx context.Context, direction movementtype.Direction, entries []*Entry) error

	// List returns enriched rows, newest first, with exact total count
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*EntryView], error)
}
