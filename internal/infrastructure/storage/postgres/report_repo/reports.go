// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/types"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/ledger"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/reports"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

type openingRow struct {
	Variant *string `db:"variant"`
	Qty     int64   `db:"qty"`
}

// OpeningByVariant sums in − out strictly before the cutoff, per variant key.
func (r *ReportRepo) OpeningByVariant(ctx context.Context, productID id.ID, before time.Time) (map[types.VariantKey]int64, error) {
	query := `
		SELECT variant, SUM(qty) AS qty
		FROM (
			SELECT variant, qty
			FROM stock_in
			WHERE product_id = $1 AND occurred_at < $2
			UNION ALL
			SELECT variant, -qty
			FROM stock_out
			WHERE product_id = $1 AND occurred_at < $2
		) movements
		GROUP BY variant
	`

	var rows []openingRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, query, productID, before); err != nil {
		return nil, fmt.Errorf("opening balances: %w", err)
	}

	out := make(map[types.VariantKey]int64, len(rows))
	for _, row := range rows {
		out[types.KeyOf(row.Variant)] += row.Qty
	}
	return out, nil
}

// EntriesInRange returns enriched entries of one direction within
// [from, to], ascending by occurrence. A zero from means no lower bound.
func (r *ReportRepo) EntriesInRange(ctx context.Context, productID id.ID, direction movementtype.Direction, from, to time.Time) ([]*ledger.EntryView, error) {
	tbl, typeTbl, destCol := "stock_in", "stock_in_types", ""
	if direction == movementtype.DirectionOut {
		tbl, typeTbl, destCol = "stock_out", "stock_out_types", "e.destination,"
	}

	query := fmt.Sprintf(`
		SELECT
			e.id, e.product_id, e.variant, e.qty, e.type_id, e.branch_id,
			e.vehicle_plate, e.driver, e.delivery_order_no, e.note,
			e.occurred_at, e.created_by, e.created_at, %s
			p.name AS product_name,
			t.name AS type_name,
			b.name AS branch_name
		FROM %s e
		JOIN products p ON p.id = e.product_id
		JOIN %s t ON t.id = e.type_id
		LEFT JOIN branches b ON b.id = e.branch_id
		WHERE e.product_id = $1
		  AND ($2::timestamptz IS NULL OR e.occurred_at >= $2)
		  AND e.occurred_at <= $3
		ORDER BY e.occurred_at ASC, e.created_at ASC
	`, destCol, tbl, typeTbl)

	var fromArg any
	if !from.IsZero() {
		fromArg = from
	}

	var items []*ledger.EntryView
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, productID, fromArg, to); err != nil {
		return nil, fmt.Errorf("entries in range (%s): %w", tbl, err)
	}
	for _, item := range items {
		item.Direction = direction
	}
	return items, nil
}

// Totals aggregates both logs over [from, to].
func (r *ReportRepo) Totals(ctx context.Context, from, to time.Time) (reports.RangeTotals, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(qty) FROM stock_in WHERE occurred_at BETWEEN $1 AND $2), 0) AS total_in,
			COALESCE((SELECT SUM(qty) FROM stock_out WHERE occurred_at BETWEEN $1 AND $2), 0) AS total_out,
			(SELECT COUNT(*) FROM stock_in WHERE occurred_at BETWEEN $1 AND $2) AS count_in,
			(SELECT COUNT(*) FROM stock_out WHERE occurred_at BETWEEN $1 AND $2) AS count_out
	`

	var totals reports.RangeTotals
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &totals, query, from, to); err != nil {
		return totals, fmt.Errorf("range totals: %w", err)
	}
	return totals, nil
}
