package dto

import (
	"time"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/reports"
)

// TurnoverQuery selects a product and period for the turnover report.
type TurnoverQuery struct {
	ProductID string    `form:"productId" binding:"required"`
	Variant   *string   `form:"variant"`
	From      time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To        time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// ToFilter maps the query to a turnover filter.
func (q TurnoverQuery) ToFilter() (reports.TurnoverFilter, error) {
	productID, err := id.Parse(q.ProductID)
	if err != nil {
		return reports.TurnoverFilter{}, apperror.NewValidation("invalid productId format")
	}
	return reports.TurnoverFilter{
		ProductID: productID,
		Variant:   q.Variant,
		From:      q.From,
		To:        q.To,
	}, nil
}

// HistoryQuery selects the variant and period for a product history.
type HistoryQuery struct {
	Variant *string    `form:"variant"`
	From    *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To      *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// ToFilter maps the query to a history filter.
func (q HistoryQuery) ToFilter() reports.HistoryFilter {
	return reports.HistoryFilter{
		Variant: q.Variant,
		From:    q.From,
		To:      q.To,
	}
}

// OverviewQuery selects the period for the dashboard overview.
type OverviewQuery struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
