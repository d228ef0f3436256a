package order

import (
	"context"
	"fmt"
	"time"

	"flashsale/internal/domain"
	"flashsale/internal/domain/entity"
	"flashsale/internal/metrics"
	"flashsale/pkg/contextx"
	"flashsale/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type OrderRepository interface {
	Place(ctx context.Context, dealID, units int64, now time.Time) (*entity.Order, error)
	Approve(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
}

type DealRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Deal, error)
}

type Service struct {
	orderRepo OrderRepository
	dealRepo  DealRepository
	now       func() time.Time
}

func NewService(orderRepo OrderRepository, dealRepo DealRepository) *Service {
	return &Service{
		orderRepo: orderRepo,
		dealRepo:  dealRepo,
		now:       time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// PlaceOrder reserves units on a lightning deal. The reservation itself is
// one transaction in the repository; this layer validates input and records
// the outcome metric.
func (s *Service) PlaceOrder(ctx context.Context, dealID, units int64) (*entity.Order, error) {
	start := time.Now()
	status := "failed"

	defer func() {
		metrics.RecordPlaceOrderDuration(status, time.Since(start).Seconds())
	}()

	if units <= 0 {
		return nil, domain.NewError(errcodes.ValidationError, "units must be positive")
	}

	ord, err := s.orderRepo.Place(ctx, dealID, units, s.now())
	if err != nil {
		if code, ok := domain.GetCode(err); ok &&
			(code == errcodes.DealExpiredOrNotFound || code == errcodes.InsufficientStock) {
			status = "rejected"
		}
		return nil, fmt.Errorf("orderRepo.Place: %w", err)
	}
	status = "success"

	logger(ctx).Info("order placed",
		"order_id", ord.ID, "deal_id", dealID, "units", units, "price", ord.Price)

	return ord, nil
}

// Approve flips the approval flag. Re-approving an approved order succeeds
// without error.
func (s *Service) Approve(ctx context.Context, orderID int64) error {
	if err := s.orderRepo.Approve(ctx, orderID); err != nil {
		return fmt.Errorf("orderRepo.Approve: %w", err)
	}

	logger(ctx).Info("order approved", "order_id", orderID)

	return nil
}

// Status joins an order with the current state of its deal. The deal part is
// live: available units reflect reservations made after this order, the
// order price does not.
func (s *Service) Status(ctx context.Context, orderID int64) (*entity.OrderStatus, error) {
	ord, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}

	deal, err := s.dealRepo.GetByID(ctx, ord.DealID)
	if err != nil {
		if code, ok := domain.GetCode(err); ok && code == errcodes.DealNotFound {
			// Deals are never deleted, so this points at corrupted state.
			logger(ctx).Error("order references a missing deal",
				"order_id", ord.ID, "deal_id", ord.DealID)
			return nil, domain.WrapError(err, errcodes.InconsistentState,
				"order references a missing lightning deal")
		}
		return nil, fmt.Errorf("dealRepo.GetByID: %w", err)
	}

	return &entity.OrderStatus{Order: *ord, Deal: *deal}, nil
}
