// Package opname reconciles recorded balances against physical counts.
package opname

import (
	"context"
	"time"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain"
)

// Record is one immutable reconciliation audit row.
type Record struct {
	ID id.ID `db:"id" json:"id"`

	ProductID id.ID   `db:"product_id" json:"productId"`
	Variant   *string `db:"variant" json:"variant,omitempty"`

	// QtyBefore is the recorded balance at reconcile time
	QtyBefore int64 `db:"qty_before" json:"qtyBefore"`

	// QtyAfter is the physically counted quantity
	QtyAfter int64 `db:"qty_after" json:"qtyAfter"`

	// QtyDifference = QtyAfter − QtyBefore
	QtyDifference int64 `db:"qty_difference" json:"qtyDifference"`

	Reason string `db:"reason" json:"reason"`

	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// RecordView is a Record enriched with the product name for listing.
type RecordView struct {
	Record

	ProductName string `db:"product_name" json:"productName"`
}

// ListFilter narrows a reconciliation listing.
type ListFilter struct {
	ProductID *id.ID
	From      *time.Time
	To        *time.Time

	Limit  int
	Offset int
}

// ListResult is a paginated page of reconciliation records.
type ListResult = domain.ListResult[*RecordView]

// Repository stores reconciliation records.
type Repository interface {
	Insert(ctx context.Context, r *Record) error
	List(ctx context.Context, filter ListFilter) (ListResult, error)
}
