// Package reports answers turnover, history and overview queries over the
// movement logs. All report math reduces log rows; nothing here writes.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/types"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/ledger"
)

// TurnoverFilter selects the product, optional variant and period.
type TurnoverFilter struct {
	ProductID id.ID
	Variant   *string
	From      time.Time
	To        time.Time
}

// VariantTurnover is the turnover of one variant key over a period.
// Closing always equals Opening + TotalIn − TotalOut.
type VariantTurnover struct {
	Variant types.VariantKey `json:"variant"`

	Opening int64 `json:"opening"`

	In  []*ledger.EntryView `json:"in"`
	Out []*ledger.EntryView `json:"out"`

	TotalIn  int64 `json:"totalIn"`
	TotalOut int64 `json:"totalOut"`
	Closing  int64 `json:"closing"`
}

// TurnoverResult carries one row per variant key in scope.
type TurnoverResult struct {
	ProductID id.ID             `json:"productId"`
	From      time.Time         `json:"from"`
	To        time.Time         `json:"to"`
	Variants  []VariantTurnover `json:"variants"`
}

// HistoryFilter selects the variant and period for a history query.
type HistoryFilter struct {
	Variant *string
	From    *time.Time
	To      *time.Time
}

// HistoryItem is one movement with the running balance of its variant key
// before and after the movement.
type HistoryItem struct {
	Entry *ledger.EntryView `json:"entry"`

	Direction movementtype.Direction `json:"direction"`
	Opening   int64                  `json:"opening"`
	Balance   int64                  `json:"balance"`
}

// Overview is the dashboard aggregate over a period.
type Overview struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	TotalIn  int64 `json:"totalIn"`
	TotalOut int64 `json:"totalOut"`
	CountIn  int64 `json:"countIn"`
	CountOut int64 `json:"countOut"`

	// Average units moved per day over the period, 2 decimal places
	AvgInPerDay  decimal.Decimal `json:"avgInPerDay"`
	AvgOutPerDay decimal.Decimal `json:"avgOutPerDay"`
}

// RangeTotals is the raw aggregate the overview builds on.
type RangeTotals struct {
	TotalIn  int64 `db:"total_in"`
	TotalOut int64 `db:"total_out"`
	CountIn  int64 `db:"count_in"`
	CountOut int64 `db:"count_out"`
}

// Repository reads report source data from the logs.
type Repository interface {
	// OpeningByVariant sums in − out strictly before the cutoff, per variant key
	OpeningByVariant(ctx context.Context, productID id.ID, before time.Time) (map[types.VariantKey]int64, error)

	// EntriesInRange returns enriched entries of one direction in
	// [from, to], ascending by occurrence
	EntriesInRange(ctx context.Context, productID id.ID, direction movementtype.Direction, from, to time.Time) ([]*ledger.EntryView, error)

	// Totals aggregates both logs over [from, to]
	Totals(ctx context.Context, from, to time.Time) (RangeTotals, error)
}
