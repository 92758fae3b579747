// Package opname_repo provides the PostgreSQL implementation of the
// stock opname repository.
package opname_repo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/opname"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres"
)

const opnameTable = "stock_opname"

// Compile-time check.
var _ opname.Repository = (*OpnameRepo)(nil)

// OpnameRepo implements opname.Repository.
type OpnameRepo struct {
	txManager *postgres.TxManager
	builder   sq.StatementBuilderType
}

// NewOpnameRepo creates a new opname repository.
func NewOpnameRepo(txManager *postgres.TxManager) *OpnameRepo {
	return &OpnameRepo{
		txManager: txManager,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert persists a reconciliation record.
func (r *OpnameRepo) Insert(ctx context.Context, rec *opname.Record) error {
	query, args, err := r.builder.
		Insert(opnameTable).
		Columns("id", "product_id", "variant", "qty_before", "qty_after",
			"qty_difference", "reason", "created_by", "created_at").
		Values(rec.ID, rec.ProductID, rec.Variant, rec.QtyBefore, rec.QtyAfter,
			rec.QtyDifference, rec.Reason, rec.CreatedBy, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert opname: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert opname record: %w", err)
	}
	return nil
}

// List returns reconciliation records newest-first.
func (r *OpnameRepo) List(ctx context.Context, filter opname.ListFilter) (opname.ListResult, error) {
	base := r.builder.
		Select(
			"o.id", "o.product_id", "o.variant", "o.qty_before", "o.qty_after",
			"o.qty_difference", "o.reason", "o.created_by", "o.created_at",
			"p.name AS product_name",
		).
		From(opnameTable + " o").
		Join("products p ON p.id = o.product_id")

	if filter.ProductID != nil {
		base = base.Where(sq.Eq{"o.product_id": *filter.ProductID})
	}
	if filter.From != nil {
		base = base.Where(sq.GtOrEq{"o.created_at": *filter.From})
	}
	if filter.To != nil {
		base = base.Where(sq.LtOrEq{"o.created_at": *filter.To})
	}

	countQuery, countArgs, err := r.builder.
		Select("COUNT(*)").
		FromSelect(base, "sub").
		ToSql()
	if err != nil {
		return opname.ListResult{}, fmt.Errorf("build count opname: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)

	var total int64
	if err := querier.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return opname.ListResult{}, apperror.NewStore("count opname records", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query, args, err := base.
		OrderBy("o.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return opname.ListResult{}, fmt.Errorf("build list opname: %w", err)
	}

	var items []*opname.RecordView
	if err := pgxscan.Select(ctx, querier, &items, query, args...); err != nil {
		return opname.ListResult{}, apperror.NewStore("list opname records", err)
	}

	return opname.ListResult{
		Items:      items,
		TotalCount: total,
		Limit:      limit,
		Offset:     filter.Offset,
	}, nil
}
