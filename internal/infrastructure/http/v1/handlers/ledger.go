package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/ledger"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/http/v1/dto"
)

// LedgerHandler serves one direction of the movement log. The router
// mounts one handler for /stock-in and one for /stock-out.
type LedgerHandler struct {
	*BaseHandler
	service   *ledger.Service
	direction movementtype.Direction
}

// NewLedgerHandler creates a handler bound to one direction.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service, direction movementtype.Direction) *LedgerHandler {
	return &LedgerHandler{
		BaseHandler: base,
		service:     service,
		direction:   direction,
	}
}

func (h *LedgerHandler) record(ctx context.Context, e *ledger.Entry) error {
	if h.direction == movementtype.DirectionOut {
		return h.service.RecordStockOut(ctx, e)
	}
	return h.service.RecordStockIn(ctx, e)
}

func (h *LedgerHandler) recordBulk(ctx context.Context, entries []*ledger.Entry) error {
	if h.direction == movementtype.DirectionOut {
		return h.service.RecordStockOutBulk(ctx, entries)
	}
	return h.service.RecordStockInBulk(ctx, entries)
}

// Record handles POST - append one movement.
func (h *LedgerHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.record(ctx, entry); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// RecordBulk handles POST /bulk - append many movements atomically.
func (h *LedgerHandler) RecordBulk(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.BulkRecordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entries, err := req.ToEntities()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.recordBulk(ctx, entries); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recorded": len(entries)})
}

// List handles GET - list movements newest first.
func (h *LedgerHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListEntriesQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	var result ledger.ListResult
	if h.direction == movementtype.DirectionOut {
		result, err = h.service.ListStockOut(ctx, filter)
	} else {
		result, err = h.service.ListStockIn(ctx, filter)
	}
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: int(result.TotalCount),
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
