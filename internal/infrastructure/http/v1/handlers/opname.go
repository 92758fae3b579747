package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/opname"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/http/v1/dto"
)

// OpnameHandler serves stock opname reconciliation.
type OpnameHandler struct {
	*BaseHandler
	service *opname.Service
}

// NewOpnameHandler creates a new opname handler.
func NewOpnameHandler(base *BaseHandler, service *opname.Service) *OpnameHandler {
	return &OpnameHandler{BaseHandler: base, service: service}
}

// Reconcile handles POST /opname - record a physical count and correct
// the balance. A 201 with a warning means the count was saved but the
// correction was not applied.
func (h *OpnameHandler) Reconcile(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ReconcileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.Reconcile(ctx, input)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromResult(result))
}

// List handles GET /opname - reconciliation history, newest first.
func (h *OpnameHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListOpnameQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.List(ctx, filter)
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
