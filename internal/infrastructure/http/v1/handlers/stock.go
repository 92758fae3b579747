package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/stock"
)

// StockHandler serves current balance queries.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

// GetProductBalances handles GET /stock/balances/:productId.
// Returns one row per variant key, declared variants included at zero.
func (h *StockHandler) GetProductBalances(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	balances, err := h.service.ProductBalances(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productId": productID.String(),
		"balances":  balances,
	})
}

// GetBalances handles GET /stock/balances?productIds=a,b,c.
// Batches the per-product lookup; unknown IDs are simply absent.
func (h *StockHandler) GetBalances(c *gin.Context) {
	ctx := c.Request.Context()

	raw := c.Query("productIds")
	if raw == "" {
		h.Error(c, apperror.NewValidation("productIds is required"))
		return
	}

	var productIDs []id.ID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		productID, err := id.Parse(part)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productIds format").
				WithDetail("productId", part))
			return
		}
		productIDs = append(productIDs, productID)
	}

	balances, err := h.service.BalancesForProducts(ctx, productIDs)
	if err != nil {
		h.Error(c, err)
		return
	}

	// Keyed by product ID string for JSON
	out := make(map[string][]stock.VariantBalance, len(balances))
	for productID, rows := range balances {
		out[productID.String()] = rows
	}

	c.JSON(http.StatusOK, gin.H{"balances": out})
}
