// Package stock_repo provides the two balance readers the aggregator
// composes: the summary-projection reader and the authoritative log
// scanner. Both return the same map shape so the aggregator can swap
// them freely.
package stock_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/types"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/stock"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres"
)

const summaryTable = "product_stock_summary"

// Compile-time checks.
var (
	_ stock.BalanceReader = (*SummaryRepo)(nil)
	_ stock.BalanceReader = (*LogScanRepo)(nil)
)

type balanceRow struct {
	ProductID id.ID   `db:"product_id"`
	Variant   *string `db:"variant"`
	Qty       int64   `db:"qty"`
}

func groupRows(rows []balanceRow) map[id.ID]map[types.VariantKey]int64 {
	out := make(map[id.ID]map[types.VariantKey]int64)
	for _, row := range rows {
		m, ok := out[row.ProductID]
		if !ok {
			m = make(map[types.VariantKey]int64)
			out[row.ProductID] = m
		}
		m[types.KeyOf(row.Variant)] += row.Qty
	}
	return out
}

// SummaryRepo reads the product_stock_summary projection. The projection
// is a cache of the log reduction, rebuilt periodically via Refresh; the
// aggregator treats any error here as a miss and scans the logs.
type SummaryRepo struct {
	txManager *postgres.TxManager
}

// NewSummaryRepo creates the projection reader.
func NewSummaryRepo(txManager *postgres.TxManager) *SummaryRepo {
	return &SummaryRepo{txManager: txManager}
}

// ProductBalances reads projected balances of one product.
func (r *SummaryRepo) ProductBalances(ctx context.Context, productID id.ID) (map[types.VariantKey]int64, error) {
	m, err := r.BalancesForProducts(ctx, []id.ID{productID})
	if err != nil {
		return nil, err
	}
	if b, ok := m[productID]; ok {
		return b, nil
	}
	return map[types.VariantKey]int64{}, nil
}

// BalancesForProducts reads projected balances of many products at once.
func (r *SummaryRepo) BalancesForProducts(ctx context.Context, productIDs []id.ID) (map[id.ID]map[types.VariantKey]int64, error) {
	sql := fmt.Sprintf(`
		SELECT product_id, variant, current_stock AS qty
		FROM %s
		WHERE product_id = ANY($1)
	`, summaryTable)

	var rows []balanceRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, productIDs); err != nil {
		return nil, fmt.Errorf("read %s: %w", summaryTable, err)
	}
	return groupRows(rows), nil
}

// Refresh rebuilds the projection from the logs. CONCURRENTLY keeps
// readers unblocked while it runs.
func (r *SummaryRepo) Refresh(ctx context.Context) error {
	sql := fmt.Sprintf("REFRESH MATERIALIZED VIEW CONCURRENTLY %s", summaryTable)
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql); err != nil {
		return fmt.Errorf("refresh %s: %w", summaryTable, err)
	}
	return nil
}

// LogScanRepo reduces stock_in minus stock_out directly. It is the
// authoritative reader: slower than the projection but always right.
type LogScanRepo struct {
	txManager *postgres.TxManager
}

// NewLogScanRepo creates the log scanner.
func NewLogScanRepo(txManager *postgres.TxManager) *LogScanRepo {
	return &LogScanRepo{txManager: txManager}
}

const logScanSQL = `
	SELECT product_id, variant, SUM(qty) AS qty
	FROM (
		SELECT product_id, variant, qty FROM stock_in WHERE product_id = ANY($1)
		UNION ALL
		SELECT product_id, variant, -qty FROM stock_out WHERE product_id = ANY($1)
	) movements
	GROUP BY product_id, variant
`

// ProductBalances reduces the logs for one product.
func (r *LogScanRepo) ProductBalances(ctx context.Context, productID id.ID) (map[types.VariantKey]int64, error) {
	m, err := r.BalancesForProducts(ctx, []id.ID{productID})
	if err != nil {
		return nil, err
	}
	if b, ok := m[productID]; ok {
		return b, nil
	}
	return map[types.VariantKey]int64{}, nil
}

// BalancesForProducts reduces the logs for many products in one query.
func (r *LogScanRepo) BalancesForProducts(ctx context.Context, productIDs []id.ID) (map[id.ID]map[types.VariantKey]int64, error) {
	var rows []balanceRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, logScanSQL, productIDs); err != nil {
		return nil, fmt.Errorf("scan movement logs: %w", err)
	}
	return groupRows(rows), nil
}
