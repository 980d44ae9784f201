package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"tradex/internal/types"
	"tradex/internal/venue"

	"github.com/gin-gonic/gin"
)

type handlers struct {
	venue *venue.Service
}

func (h *handlers) submitOrder(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reading body failed"})
		return
	}
	if err := validateOrderPayload(raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req types.OrderRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decoding request failed: " + err.Error()})
		return
	}

	order, err := h.venue.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderResponse(order))
}

func (h *handlers) getOrder(c *gin.Context) {
	order, err := h.venue.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse(order))
}

func (h *handlers) getFills(c *gin.Context) {
	fills, err := h.venue.GetFills(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(fills))
	for i := range fills {
		out = append(out, fillResponse(&fills[i]))
	}
	c.JSON(http.StatusOK, gin.H{"fills": out})
}

func (h *handlers) cancelOrder(c *gin.Context) {
	order, err := h.venue.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse(order))
}

func (h *handlers) listPositions(c *gin.Context) {
	positions, err := h.venue.Positions(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(positions))
	for i := range positions {
		p := &positions[i]
		out = append(out, gin.H{
			"symbol":   p.Symbol,
			"qty":      p.Qty,
			"avg_cost": p.AvgCost.String(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"positions": out})
}

func (h *handlers) getTape(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	prints, err := h.venue.RecentPrints(c.Request.Context(), c.Param("symbol"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(prints))
	for i := range prints {
		p := &prints[i]
		out = append(out, gin.H{
			"symbol":         p.Symbol,
			"price":          p.Price,
			"qty":            p.Qty,
			"aggressor_side": p.AggressorSide,
			"executed_at":    p.ExecutedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"prints": out})
}

func (h *handlers) getBalance(c *gin.Context) {
	balance, err := h.venue.CashBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance.String()})
}

func orderResponse(o *types.Order) gin.H {
	resp := gin.H{
		"id":            o.ID,
		"account_id":    o.AccountID,
		"symbol":        o.Symbol,
		"side":          o.Side,
		"type":          o.Type,
		"qty":           o.Qty,
		"status":        o.Status,
		"filled_qty":    o.FilledQty,
		"time_in_force": o.TimeInForce,
		"created_at":    o.CreatedAt,
	}
	if o.ClientOrderID != "" {
		resp["client_order_id"] = o.ClientOrderID
	}
	if o.LimitPrice.Valid {
		resp["limit_price"] = o.LimitPrice.Decimal.String()
	}
	if o.AvgFillPrice.Valid {
		resp["avg_fill_price"] = o.AvgFillPrice.Decimal.String()
	}
	return resp
}

func fillResponse(f *types.Fill) gin.H {
	return gin.H{
		"id":          f.ID,
		"order_id":    f.OrderID,
		"qty":         f.Qty,
		"price":       f.Price.String(),
		"executed_at": f.ExecutedAt,
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrOrderNotFound), errors.Is(err, types.ErrQuoteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case types.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case types.IsRiskViolation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
