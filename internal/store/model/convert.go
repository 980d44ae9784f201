package model

import (
	"time"

	"tradex/internal/types"
)

func OrderFromDomain(o *types.Order) *OrderModel {
	return &OrderModel{
		OrderUID:      o.ID,
		ClientOrderID: o.ClientOrderID,
		AccountID:     o.AccountID,
		Symbol:        o.Symbol,
		Side:          string(o.Side),
		Type:          string(o.Type),
		Qty:           o.Qty,
		LimitPrice:    o.LimitPrice,
		TimeInForce:   o.TimeInForce,
		Status:        string(o.Status),
		FilledQty:     o.FilledQty,
		AvgFillPrice:  o.AvgFillPrice,
		CreatedAtNs:   o.CreatedAt.UnixNano(),
		UpdatedAtNs:   time.Now().UnixNano(),
	}
}

func (m *OrderModel) ToDomain() *types.Order {
	return &types.Order{
		ID:            m.OrderUID,
		ClientOrderID: m.ClientOrderID,
		AccountID:     m.AccountID,
		Symbol:        m.Symbol,
		Side:          types.Side(m.Side),
		Type:          types.OrderType(m.Type),
		Qty:           m.Qty,
		LimitPrice:    m.LimitPrice,
		TimeInForce:   m.TimeInForce,
		Status:        types.OrderStatus(m.Status),
		FilledQty:     m.FilledQty,
		AvgFillPrice:  m.AvgFillPrice,
		CreatedAt:     time.Unix(0, m.CreatedAtNs),
	}
}

func FillFromDomain(f *types.Fill) *FillModel {
	return &FillModel{
		FillUID:      f.ID,
		OrderUID:     f.OrderID,
		Qty:          f.Qty,
		Price:        f.Price,
		ExecutedAtNs: f.ExecutedAt.UnixNano(),
	}
}

func (m *FillModel) ToDomain() *types.Fill {
	return &types.Fill{
		ID:         m.FillUID,
		OrderID:    m.OrderUID,
		Qty:        m.Qty,
		Price:      m.Price,
		ExecutedAt: time.Unix(0, m.ExecutedAtNs),
	}
}

func (m *PositionModel) ToDomain() *types.Position {
	return &types.Position{
		AccountID: m.AccountID,
		Symbol:    m.Symbol,
		Qty:       m.Qty,
		AvgCost:   m.AvgCost,
		UpdatedAt: time.Unix(0, m.UpdatedAtNs),
	}
}
