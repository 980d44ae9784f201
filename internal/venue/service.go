// Package venue exposes the trading operations of the exchange:
// submit, lookup, fills and cancellation. It owns the submission
// pipeline: quote resolution, risk, persistence, routing to the
// matching engine or the TWAP slicer, and post-trade settlement
// notifications.
package venue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tradex/internal/cash"
	"tradex/internal/engine"
	"tradex/internal/ledger"
	"tradex/internal/logger"
	"tradex/internal/market"
	"tradex/internal/risk"
	"tradex/internal/store"
	"tradex/internal/store/model"
	"tradex/internal/tape"
	"tradex/internal/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Service struct {
	store  store.Store
	engine *engine.Engine
	ledger *ledger.Ledger
	quotes market.Source
	risk   risk.Validator
	cash   cash.Ledger
	tape   *tape.Tape
	locks  *engine.KeyedMutex
}

func NewService(st store.Store, eng *engine.Engine, led *ledger.Ledger, quotes market.Source, validator risk.Validator, cashLedger cash.Ledger, t *tape.Tape) *Service {
	return &Service{
		store:  st,
		engine: eng,
		ledger: led,
		quotes: quotes,
		risk:   validator,
		cash:   cashLedger,
		tape:   t,
		locks:  engine.NewKeyedMutex(),
	}
}

// Submit validates, persists and executes one order request. The
// returned order may already be partially or fully filled, or resting.
func (s *Service) Submit(ctx context.Context, req types.OrderRequest) (*types.Order, error) {
	if err := normalizeRequest(&req); err != nil {
		return nil, err
	}

	quote, err := s.quotes.GetQuote(ctx, req.Symbol)
	if err != nil {
		return nil, err
	}
	if err := s.risk.Validate(req, quote); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(req.Symbol)
	defer unlock()

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting submission failed: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			uow.Rollback()
		}
	}()

	touched, err := uow.Activity().Touched(ctx, req.Symbol)
	if err != nil {
		return nil, fmt.Errorf("checking symbol activity failed: %w", err)
	}

	order := &types.Order{
		ID:            uuid.NewString(),
		ClientOrderID: req.ClientOrderID,
		AccountID:     req.AccountID,
		Symbol:        req.Symbol,
		Side:          req.Side,
		Type:          req.Type,
		Qty:           req.Qty,
		LimitPrice:    req.LimitPrice,
		TimeInForce:   req.TimeInForce,
		Status:        types.StatusNew,
		CreatedAt:     time.Now(),
	}
	m := model.OrderFromDomain(order)
	if raw, err := json.Marshal(req); err == nil {
		m.RawRequest = datatypes.JSON(raw)
	}
	if err := uow.Orders().Save(ctx, m); err != nil {
		return nil, fmt.Errorf("persisting order failed: %w", err)
	}
	if err := uow.Activity().MarkTouched(ctx, req.Symbol); err != nil {
		return nil, fmt.Errorf("marking symbol activity failed: %w", err)
	}

	var execs []engine.Execution
	switch {
	case order.Qty == 0:
		// Accepted only to be terminalized; no matching attempt.
		order.Status = types.StatusCancelled
		err = uow.Orders().Save(ctx, model.OrderFromDomain(order))
	case order.Type == types.OrderTypeTWAP:
		execs, err = s.engine.SliceTWAP(ctx, uow, order, quote)
	default:
		execs, err = s.engine.Match(ctx, uow, order, quote, !touched)
	}
	if err != nil {
		if types.IsInternalInvariant(err) {
			logger.Errorf("matching aborted, nothing persisted: %v", err)
		}
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("committing submission failed: %w", err)
	}
	committed = true

	s.settle(ctx, order, execs)
	return order, nil
}

// GetOrder returns the order by id.
func (s *Service) GetOrder(ctx context.Context, id string) (*types.Order, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()
	m, err := uow.Orders().FindByUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrOrderNotFound, id)
	}
	return m.ToDomain(), nil
}

// GetFills returns the order's fills in execution order.
func (s *Service) GetFills(ctx context.Context, orderID string) ([]types.Fill, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()
	m, err := uow.Orders().FindByUID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrOrderNotFound, orderID)
	}
	rows, err := uow.Fills().ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	fills := make([]types.Fill, 0, len(rows))
	for i := range rows {
		fills = append(fills, *rows[i].ToDomain())
	}
	return fills, nil
}

// Cancel flips a not-yet-terminal order to CANCELLED. Terminal orders
// come back unchanged, so repeated cancels are idempotent. Fills
// already recorded are never undone.
func (s *Service) Cancel(ctx context.Context, id string) (*types.Order, error) {
	current, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(current.Symbol)
	defer unlock()

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			uow.Rollback()
		}
	}()

	m, err := uow.Orders().FindByUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrOrderNotFound, id)
	}
	order := m.ToDomain()
	if order.Status.Terminal() {
		return order, nil
	}
	order.Status = types.StatusCancelled
	if err := uow.Orders().Save(ctx, model.OrderFromDomain(order)); err != nil {
		return nil, fmt.Errorf("persisting cancel failed: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return order, nil
}

// Positions returns all open positions of one account.
func (s *Service) Positions(ctx context.Context, accountID string) ([]types.Position, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()
	return s.ledger.ListPositions(ctx, uow.Positions(), accountID)
}

// RecentPrints returns the latest tape prints for a symbol, newest
// first. Empty when the venue runs without a tape.
func (s *Service) RecentPrints(ctx context.Context, symbol string, limit int) ([]tape.Print, error) {
	if s.tape == nil {
		return nil, nil
	}
	return s.tape.Recent(ctx, strings.ToUpper(strings.TrimSpace(symbol)), limit)
}

// CashBalance returns the account's cash balance.
func (s *Service) CashBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	return s.cash.Balance(ctx, accountID)
}

// settle pushes post-trade notifications: cash for both sides of each
// execution and one print on the tape. Both are best-effort; the fills
// are already committed.
func (s *Service) settle(ctx context.Context, order *types.Order, execs []engine.Execution) {
	for i := range execs {
		ex := &execs[i]
		if err := s.cash.ApplyTrade(ctx, order.AccountID, order.Side, ex.Taker.Qty, ex.Taker.Price); err != nil {
			logger.Warnf("cash notify failed for account %s: %v", order.AccountID, err)
		}
		if ex.Maker != nil {
			if err := s.cash.ApplyTrade(ctx, ex.MakerAccountID, ex.MakerSide, ex.Maker.Qty, ex.Maker.Price); err != nil {
				logger.Warnf("cash notify failed for account %s: %v", ex.MakerAccountID, err)
			}
		}
		if s.tape != nil {
			pr := tape.Print{
				Symbol:        order.Symbol,
				Price:         ex.Taker.Price.String(),
				Qty:           ex.Taker.Qty,
				AggressorSide: string(order.Side),
				ExecutedAt:    ex.Taker.ExecutedAt,
			}
			if err := s.tape.Record(ctx, pr); err != nil {
				logger.Warnf("tape record failed for %s: %v", order.Symbol, err)
			}
		}
	}
}

// normalizeRequest applies structural validation before anything is
// persisted. MARKET orders shed any supplied price; TWAP keeps it as
// data but the slicer never uses it.
func normalizeRequest(req *types.OrderRequest) error {
	req.AccountID = strings.TrimSpace(req.AccountID)
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.AccountID == "" {
		return types.NewValidationError("account_id", "required")
	}
	if req.Symbol == "" {
		return types.NewValidationError("symbol", "required")
	}
	if !req.Side.Valid() {
		return types.NewValidationError("side", "must be BUY or SELL")
	}
	if !req.Type.Valid() {
		return types.NewValidationError("type", "must be MARKET, LIMIT or TWAP")
	}
	if req.Qty < 0 {
		return types.NewValidationError("qty", "must not be negative")
	}
	if req.Type == types.OrderTypeLimit {
		if !req.LimitPrice.Valid {
			return types.NewValidationError("limit_price", "required for LIMIT orders")
		}
		if !req.LimitPrice.Decimal.IsPositive() {
			return types.NewValidationError("limit_price", "must be positive")
		}
	}
	if req.Type == types.OrderTypeMarket {
		req.LimitPrice = decimal.NullDecimal{}
	}
	return nil
}
