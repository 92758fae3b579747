package dto

import (
	"time"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/opname"
)

// ReconcileRequest submits a physical count for one variant key.
type ReconcileRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Variant   *string `json:"variant"`
	QtyAfter  int64   `json:"qtyAfter"`
	Reason    string  `json:"reason" binding:"required"`
}

// ToInput maps the request to a reconciliation input.
func (r ReconcileRequest) ToInput() (opname.Input, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return opname.Input{}, apperror.NewValidation("invalid productId format").
			WithDetail("productId", r.ProductID)
	}
	return opname.Input{
		ProductID: productID,
		Variant:   r.Variant,
		QtyAfter:  r.QtyAfter,
		Reason:    r.Reason,
	}, nil
}

// ReconcileResponse reports the saved record and correction outcome.
// Warning is set when the count was saved but the balance was not
// corrected; a fresh reconciliation retries the correction.
type ReconcileResponse struct {
	Record            *opname.Record `json:"record"`
	CorrectionApplied bool           `json:"correctionApplied"`
	Warning           *ErrorResponse `json:"warning,omitempty"`
}

// FromResult maps a reconciliation result to the response.
func FromResult(res *opname.Result) ReconcileResponse {
	out := ReconcileResponse{
		Record:            res.Record,
		CorrectionApplied: res.CorrectionApplied,
	}
	if res.Warning != nil {
		out.Warning = &ErrorResponse{
			Code:    res.Warning.Code,
			Message: res.Warning.Message,
			Details: res.Warning.Details,
		}
	}
	return out
}

// ListOpnameQuery filters the reconciliation history.
type ListOpnameQuery struct {
	ProductID string     `form:"productId"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit     int        `form:"limit"`
	Offset    int        `form:"offset"`
}

// ToFilter maps the query to an opname list filter.
func (q ListOpnameQuery) ToFilter() (opname.ListFilter, error) {
	filter := opname.ListFilter{
		From:   q.From,
		To:     q.To,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if q.ProductID != "" {
		productID, err := id.Parse(q.ProductID)
		if err != nil {
			return filter, apperror.NewValidation("invalid productId format")
		}
		filter.ProductID = &productID
	}
	return filter, nil
}
