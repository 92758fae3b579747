package catalog_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ movementtype.Repository = (*MovementTypeRepo)(nil)

// MovementTypeRepo stores stock-in and stock-out types. The two
// directions live in separate tables with the same shape, except that
// only out-types carry a destination column.
type MovementTypeRepo struct {
	txManager *postgres.TxManager
	in        *BaseCatalogRepo[*movementtype.MovementType]
	out       *BaseCatalogRepo[*movementtype.MovementType]
}

const (
	stockInTypesTable  = "stock_in_types"
	stockOutTypesTable = "stock_out_types"
)

// NewMovementTypeRepo creates the movement-type repository.
func NewMovementTypeRepo(txManager *postgres.TxManager) *MovementTypeRepo {
	newFn := func() *movementtype.MovementType { return &movementtype.MovementType{} }

	inCols := []string{"id", "version", "created_at", "name"}
	outCols := []string{"id", "version", "created_at", "name", "destination"}

	return &MovementTypeRepo{
		txManager: txManager,
		in:        NewBaseCatalogRepo(txManager, stockInTypesTable, inCols, newFn),
		out:       NewBaseCatalogRepo(txManager, stockOutTypesTable, outCols, newFn),
	}
}

func (r *MovementTypeRepo) base(direction movementtype.Direction) *BaseCatalogRepo[*movementtype.MovementType] {
	if direction == movementtype.DirectionOut {
		return r.out
	}
	return r.in
}

// movementTable returns the log table a direction's types are referenced from.
func movementTable(direction movementtype.Direction) string {
	if direction == movementtype.DirectionOut {
		return "stock_out"
	}
	return "stock_in"
}

// Create inserts a type into its direction's table.
func (r *MovementTypeRepo) Create(ctx context.Context, t *movementtype.MovementType) error {
	return r.base(t.Direction).Create(ctx, t)
}

// GetByID retrieves a type and stamps its direction.
func (r *MovementTypeRepo) GetByID(ctx context.Context, direction movementtype.Direction, typeID id.ID) (*movementtype.MovementType, error) {
	t, err := r.base(direction).GetByID(ctx, typeID)
	if err != nil {
		return nil, err
	}
	t.Direction = direction
	return t, nil
}

// GetByName retrieves a type by its unique name.
func (r *MovementTypeRepo) GetByName(ctx context.Context, direction movementtype.Direction, name string) (*movementtype.MovementType, error) {
	t, err := r.base(direction).GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	t.Direction = direction
	return t, nil
}

// Update modifies a type with optimistic locking.
func (r *MovementTypeRepo) Update(ctx context.Context, t *movementtype.MovementType) error {
	return r.base(t.Direction).Update(ctx, t)
}

// Delete removes a type row.
func (r *MovementTypeRepo) Delete(ctx context.Context, direction movementtype.Direction, typeID id.ID) error {
	return r.base(direction).Delete(ctx, typeID)
}

// List retrieves types of one direction.
func (r *MovementTypeRepo) List(ctx context.Context, direction movementtype.Direction, filter domain.ListFilter) (domain.ListResult[*movementtype.MovementType], error) {
	res, err := r.base(direction).List(ctx, filter)
	if err != nil {
		return res, err
	}
	for _, t := range res.Items {
		t.Direction = direction
	}
	return res, nil
}

// Exists checks a type reference.
func (r *MovementTypeRepo) Exists(ctx context.Context, direction movementtype.Direction, typeID id.ID) (bool, error) {
	return r.base(direction).Exists(ctx, typeID)
}

// UpsertByName inserts the type unless a row with the same name exists,
// and returns the surviving row. The conflict arm is a no-op update so
// RETURNING yields the existing row instead of erroring.
func (r *MovementTypeRepo) UpsertByName(ctx context.Context, t *movementtype.MovementType) (*movementtype.MovementType, error) {
	base := r.base(t.Direction)

	data := postgres.StructToMap(t)
	filtered := make(map[string]any, len(base.selectCols))
	for _, col := range base.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	q := base.Builder().
		Insert(base.tableName).
		SetMap(filtered).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING " +
			strings.Join(base.selectCols, ", "))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}

	out := &movementtype.MovementType{}
	if err := pgxscan.Get(ctx, base.Querier(ctx), out, sql, args...); err != nil {
		return nil, fmt.Errorf("upsert %s: %w", base.tableName, err)
	}
	out.Direction = t.Direction
	return out, nil
}

// Referenced reports whether any movement row uses the type.
func (r *MovementTypeRepo) Referenced(ctx context.Context, direction movementtype.Direction, typeID id.ID) (bool, error) {
	base := r.base(direction)

	q := base.Builder().
		Select("1").
		From(movementTable(direction)).
		Where(squirrel.Eq{"type_id": typeID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = base.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check type references: %w", err)
	}
	return true, nil
}
