package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/http/v1/dto"
)

// MovementTypeHandler serves one direction's movement type catalog.
// Stock-in and stock-out types live in separate tables, so the router
// mounts one handler per direction.
type MovementTypeHandler struct {
	*BaseHandler
	service   *movementtype.Service
	direction movementtype.Direction
}

// NewMovementTypeHandler creates a handler bound to one direction.
func NewMovementTypeHandler(base *BaseHandler, service *movementtype.Service, direction movementtype.Direction) *MovementTypeHandler {
	return &MovementTypeHandler{
		BaseHandler: base,
		service:     service,
		direction:   direction,
	}
}

// List handles GET - list movement types of the handler's direction.
func (h *MovementTypeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "name")

	result, err := h.service.List(ctx, h.direction, filter)
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

// Get handles GET /:id.
func (h *MovementTypeHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	typeID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	item, err := h.service.GetByID(ctx, h.direction, typeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create handles POST.
func (h *MovementTypeHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateMovementTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := req.ToEntity(h.direction)

	if err := h.service.Create(ctx, item); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /:id.
func (h *MovementTypeHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	typeID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateMovementTypeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, h.direction, typeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(existing)

	if err := h.service.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, existing)
}

// Delete handles DELETE /:id.
func (h *MovementTypeHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	typeID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, h.direction, typeID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
