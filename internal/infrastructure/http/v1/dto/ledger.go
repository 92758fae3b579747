package dto

import (
	"time"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/ledger"
)

// RecordEntryRequest is one stock-in or stock-out row.
type RecordEntryRequest struct {
	ProductID       string     `json:"productId" binding:"required"`
	Variant         *string    `json:"variant"`
	Qty             int64      `json:"qty" binding:"required,min=1"`
	TypeID          string     `json:"typeId" binding:"required"`
	BranchID        *string    `json:"branchId"`
	Destination     string     `json:"destination"`
	VehiclePlate    string     `json:"vehiclePlate"`
	Driver          string     `json:"driver"`
	DeliveryOrderNo string     `json:"deliveryOrderNo"`
	Note            string     `json:"note"`
	OccurredAt      *time.Time `json:"occurredAt"`
}

// ToEntity maps the request to a ledger entry. Direction is stamped by
// the service, not the client.
func (r RecordEntryRequest) ToEntity() (*ledger.Entry, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid productId format").
			WithDetail("productId", r.ProductID)
	}
	typeID, err := id.Parse(r.TypeID)
	if err != nil {
		return nil, apperror.NewValidation("invalid typeId format").
			WithDetail("typeId", r.TypeID)
	}

	e := &ledger.Entry{
		ProductID:       productID,
		Variant:         r.Variant,
		Qty:             r.Qty,
		TypeID:          typeID,
		Destination:     movementtype.Destination(r.Destination),
		VehiclePlate:    r.VehiclePlate,
		Driver:          r.Driver,
		DeliveryOrderNo: r.DeliveryOrderNo,
		Note:            r.Note,
	}
	if r.BranchID != nil && *r.BranchID != "" {
		branchID, err := id.Parse(*r.BranchID)
		if err != nil {
			return nil, apperror.NewValidation("invalid branchId format").
				WithDetail("branchId", *r.BranchID)
		}
		e.BranchID = &branchID
	}
	if r.OccurredAt != nil {
		e.OccurredAt = *r.OccurredAt
	}
	return e, nil
}

// BulkRecordRequest carries many rows recorded atomically.
type BulkRecordRequest struct {
	Entries []RecordEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// ToEntities maps the bulk request, reporting the index of a bad row.
func (r BulkRecordRequest) ToEntities() ([]*ledger.Entry, error) {
	entries := make([]*ledger.Entry, len(r.Entries))
	for i, req := range r.Entries {
		e, err := req.ToEntity()
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return nil, appErr.WithDetail("index", i)
			}
			return nil, err
		}
		entries[i] = e
	}
	return entries, nil
}

// ListEntriesQuery filters a movement listing.
type ListEntriesQuery struct {
	ProductID string     `form:"productId"`
	Variant   *string    `form:"variant"`
	TypeID    string     `form:"typeId"`
	BranchID  string     `form:"branchId"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit     int        `form:"limit"`
	Offset    int        `form:"offset"`
}

// ToFilter maps the query to a ledger list filter.
func (q ListEntriesQuery) ToFilter() (ledger.ListFilter, error) {
	filter := ledger.ListFilter{
		Variant: q.Variant,
		From:    q.From,
		To:      q.To,
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
	if q.ProductID != "" {
		productID, err := id.Parse(q.ProductID)
		if err != nil {
			return filter, apperror.NewValidation("invalid productId format")
		}
		filter.ProductID = &productID
	}
	if q.TypeID != "" {
		typeID, err := id.Parse(q.TypeID)
		if err != nil {
			return filter, apperror.NewValidation("invalid typeId format")
		}
		filter.TypeID = &typeID
	}
	if q.BranchID != "" {
		branchID, err := id.Parse(q.BranchID)
		if err != nil {
			return filter, apperror.NewValidation("invalid branchId format")
		}
		filter.BranchID = &branchID
	}
	return filter, nil
}
