package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/reports"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves turnover, history and overview reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// GetTurnover handles GET /reports/turnover.
func (h *ReportsHandler) GetTurnover(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.TurnoverQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.Turnover(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHistory handles GET /reports/history/:productId.
// Items come back newest first with running balances.
func (h *ReportsHandler) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	var query dto.HistoryQuery
	if !h.BindQuery(c, &query) {
		return
	}

	items, err := h.service.History(ctx, productID, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productId": productID.String(),
		"items":     items,
	})
}

// GetOverview handles GET /reports/overview.
func (h *ReportsHandler) GetOverview(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.OverviewQuery
	if !h.BindQuery(c, &query) {
		return
	}

	overview, err := h.service.DashboardOverview(ctx, query.From, query.To)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
