// Package ledger_repo provides the PostgreSQL implementation of the
// movement ledger. stock_in and stock_out are append-only tables; no
// update or delete statement exists in this package.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/ledger"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres"
)

const (
	stockInTable  = "stock_in"
	stockOutTable = "stock_out"
)

// Compile-time check.
var _ ledger.Repository = (*LedgerRepo)(nil)

// LedgerRepo implements ledger.Repository.
type LedgerRepo struct {
	txManager *postgres.TxManager
	inserter  *postgres.BatchInserter
	builder   squirrel.StatementBuilderType
}

// NewLedgerRepo creates the ledger repository.
func NewLedgerRepo(txManager *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{
		txManager: txManager,
		inserter:  postgres.NewBatchInserter(txManager),
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func table(direction movementtype.Direction) string {
	if direction == movementtype.DirectionOut {
		return stockOutTable
	}
	return stockInTable
}

func columns(direction movementtype.Direction) []string {
	cols := []string{
		"id", "product_id", "variant", "qty", "type_id", "branch_id",
		"vehicle_plate", "driver", "delivery_order_no", "note",
		"occurred_at", "created_by", "created_at",
	}
	if direction == movementtype.DirectionOut {
		cols = append(cols, "destination")
	}
	return cols
}

func values(e *ledger.Entry) []any {
	vals := []any{
		e.ID, e.ProductID, e.Variant, e.Qty, e.TypeID, e.BranchID,
		e.VehiclePlate, e.Driver, e.DeliveryOrderNo, e.Note,
		e.OccurredAt, e.CreatedBy, e.CreatedAt,
	}
	if e.Direction == movementtype.DirectionOut {
		vals = append(vals, e.Destination)
	}
	return vals
}

// Insert appends one entry to its log.
func (r *LedgerRepo) Insert(ctx context.Context, e *ledger.Entry) error {
	cols := columns(e.Direction)
	q := r.builder.
		Insert(table(e.Direction)).
		Columns(cols...).
		Values(values(e)...)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table(e.Direction), err)
	}
	return nil
}

// InsertBatch lands the whole batch through COPY. The transaction
// requirement comes from the COPY protocol itself; the service wraps
// every bulk call in RunInTransaction.
func (r *LedgerRepo) InsertBatch(ctx context.Context, direction movementtype.Direction, entries []*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	cols := columns(direction)
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, values(e))
	}

	if _, err := r.inserter.CopyFromSlice(ctx, table(direction), cols, rows); err != nil {
		return fmt.Errorf("copy into %s: %w", table(direction), err)
	}
	return nil
}

// List returns enriched rows, newest first, with exact total count.
func (r *LedgerRepo) List(ctx context.Context, filter ledger.ListFilter) (ledger.ListResult, error) {
	result := ledger.ListResult{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	tbl := table(filter.Direction)
	selectCols := []string{
		"e.id", "e.product_id", "e.variant", "e.qty", "e.type_id", "e.branch_id",
		"e.vehicle_plate", "e.driver", "e.delivery_order_no", "e.note",
		"e.occurred_at", "e.created_by", "e.created_at",
		"p.name AS product_name",
		"t.name AS type_name",
		"b.name AS branch_name",
	}
	if filter.Direction == movementtype.DirectionOut {
		selectCols = append(selectCols, "e.destination")
	}

	typeTable := "stock_in_types"
	if filter.Direction == movementtype.DirectionOut {
		typeTable = "stock_out_types"
	}

	q := r.builder.
		Select(selectCols...).
		From(tbl + " e").
		Join("products p ON p.id = e.product_id").
		Join(typeTable + " t ON t.id = e.type_id").
		LeftJoin("branches b ON b.id = e.branch_id")

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"e.product_id": *filter.ProductID})
	}
	if filter.Variant != nil {
		if *filter.Variant == "" {
			q = q.Where(squirrel.Eq{"e.variant": nil})
		} else {
			q = q.Where(squirrel.Eq{"e.variant": *filter.Variant})
		}
	}
	if filter.TypeID != nil {
		q = q.Where(squirrel.Eq{"e.type_id": *filter.TypeID})
	}
	if filter.BranchID != nil {
		q = q.Where(squirrel.Eq{"e.branch_id": *filter.BranchID})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"e.occurred_at": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"e.occurred_at": *filter.To})
	}

	countQ := r.builder.
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count %s: %w", tbl, err)
	}

	q = q.OrderBy("e.occurred_at DESC", "e.created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list %s: %w", tbl, err)
	}
	for _, item := range result.Items {
		item.Direction = filter.Direction
	}

	return result, nil
}

// exists runs a LIMIT 1 probe against one log table.
func (r *LedgerRepo) exists(ctx context.Context, tbl string, cond squirrel.Eq) (bool, error) {
	q := r.builder.
		Select("1").
		From(tbl).
		Where(cond).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("probe %s: %w", tbl, err)
	}
	return true, nil
}

// ProductReferenced reports whether either log references the product.
// Backs the catalog deletion guard.
func (r *LedgerRepo) ProductReferenced(ctx context.Context, productID id.ID) (bool, error) {
	if used, err := r.exists(ctx, stockInTable, squirrel.Eq{"product_id": productID}); err != nil || used {
		return used, err
	}
	return r.exists(ctx, stockOutTable, squirrel.Eq{"product_id": productID})
}

// BranchReferenced reports whether either log references the branch.
func (r *LedgerRepo) BranchReferenced(ctx context.Context, branchID id.ID) (bool, error) {
	if used, err := r.exists(ctx, stockInTable, squirrel.Eq{"branch_id": branchID}); err != nil || used {
		return used, err
	}
	return r.exists(ctx, stockOutTable, squirrel.Eq{"branch_id": branchID})
}
