package ledger_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/ledger"
)

func TestTable(t *testing.T) {
	assert.Equal(t, "stock_in", table(movementtype.DirectionIn))
	assert.Equal(t, "stock_out", table(movementtype.DirectionOut))
}

func TestColumns(t *testing.T) {
	in := columns(movementtype.DirectionIn)
	out := columns(movementtype.DirectionOut)

	assert.NotContains(t, in, "destination")
	assert.Contains(t, out, "destination")
	assert.Len(t, out, len(in)+1)
}

func TestValues_MatchColumnOrder(t *testing.T) {
	variant := "Putih"
	branchID := id.New()
	occurred := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	e := &ledger.Entry{
		ID:          id.New(),
		Direction:   movementtype.DirectionOut,
		ProductID:   id.New(),
		Variant:     &variant,
		Qty:         30,
		TypeID:      id.New(),
		BranchID:    &branchID,
		Destination: movementtype.DestinationBranch,
		Driver:      "Pak Ujang",
		OccurredAt:  occurred,
		CreatedBy:   "user-1",
		CreatedAt:   occurred,
	}

	cols := columns(e.Direction)
	vals := values(e)
	require.Len(t, vals, len(cols))

	byCol := make(map[string]any, len(cols))
	for i, col := range cols {
		byCol[col] = vals[i]
	}

	assert.Equal(t, e.ID, byCol["id"])
	assert.Equal(t, e.ProductID, byCol["product_id"])
	assert.Equal(t, &variant, byCol["variant"])
	assert.Equal(t, int64(30), byCol["qty"])
	assert.Equal(t, &branchID, byCol["branch_id"])
	assert.Equal(t, movementtype.DestinationBranch, byCol["destination"])
	assert.Equal(t, "Pak Ujang", byCol["driver"])
	assert.Equal(t, occurred, byCol["occurred_at"])
}

func TestValues_StockInHasNoDestination(t *testing.T) {
	e := &ledger.Entry{
		ID:        id.New(),
		Direction: movementtype.DirectionIn,
		ProductID: id.New(),
		Qty:       10,
		TypeID:    id.New(),
	}

	assert.Len(t, values(e), len(columns(movementtype.DirectionIn)))
}
