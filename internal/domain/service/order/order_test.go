package order_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"flashsale/internal/domain"
	"flashsale/internal/domain/entity"
	"flashsale/internal/domain/service/order"
	"flashsale/pkg/errcodes"
)

// fakeStore mirrors the storage contract of the postgres repositories:
// placement checks expiry, then stock, then inserts the order and decrements
// the deal under one lock.
type fakeStore struct {
	mu     sync.Mutex
	deals  map[int64]*entity.Deal
	orders map[int64]*entity.Order
	nextID int64
}

func newFakeStore(deals ...*entity.Deal) *fakeStore {
	s := &fakeStore{
		deals:  make(map[int64]*entity.Deal),
		orders: make(map[int64]*entity.Order),
		nextID: 1,
	}
	for _, d := range deals {
		s.deals[d.ID] = d
	}

	return s
}

func (s *fakeStore) Place(_ context.Context, dealID, units int64, now time.Time) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deal, ok := s.deals[dealID]
	if !ok || deal.Expired(now) {
		return nil, domain.NewError(errcodes.DealExpiredOrNotFound, "the lightning deal has expired")
	}

	if units > deal.AvailableUnits {
		return nil, domain.NewError(errcodes.InsufficientStock, "not enough units available")
	}

	ord := &entity.Order{
		ID:     s.nextID,
		DealID: dealID,
		Units:  units,
		Price:  deal.FinalPrice * float64(units),
	}
	s.nextID++
	s.orders[ord.ID] = ord
	deal.AvailableUnits -= units

	return ord, nil
}

func (s *fakeStore) Approve(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ord, ok := s.orders[id]
	if !ok {
		return domain.NewError(errcodes.OrderNotFound, "order not found")
	}
	ord.IsApproved = true

	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ord, ok := s.orders[id]
	if !ok {
		return nil, domain.NewError(errcodes.OrderNotFound, "order not found")
	}
	cp := *ord

	return &cp, nil
}

// dealStore adapts fakeStore to the deal lookup used by Status.
type dealStore struct {
	store *fakeStore
}

func (d dealStore) GetByID(_ context.Context, id int64) (*entity.Deal, error) {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	deal, ok := d.store.deals[id]
	if !ok {
		return nil, domain.NewError(errcodes.DealNotFound, "lightning deal not found")
	}
	cp := *deal

	return &cp, nil
}

func newTestService(store *fakeStore, now time.Time) *order.Service {
	return order.NewService(store, dealStore{store: store}).
		WithClock(func() time.Time { return now })
}

func widgetDeal(now time.Time) *entity.Deal {
	return &entity.Deal{
		ID:             1,
		ProductName:    "Widget",
		ActualPrice:    100,
		FinalPrice:     80,
		TotalUnits:     10,
		AvailableUnits: 10,
		ExpiresAt:      now.Add(time.Hour),
	}
}

func TestPlaceOrder(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	store := newFakeStore(widgetDeal(now))
	svc := newTestService(store, now)

	ord, err := svc.PlaceOrder(context.Background(), 1, 3)
	rq.NoError(err)

	rq.Equal(int64(1), ord.DealID)
	rq.Equal(int64(3), ord.Units)
	rq.InDelta(240.0, ord.Price, 1e-9)
	rq.False(ord.IsApproved)
	rq.Equal(int64(7), store.deals[1].AvailableUnits)
}

func TestPlaceOrderRejections(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name  string
		deal  *entity.Deal
		deal2 int64
		units int64
		code  errcodes.ErrorCode
	}{
		{
			name: "expired deal",
			deal: &entity.Deal{
				ID: 1, FinalPrice: 80, AvailableUnits: 10,
				ExpiresAt: now.Add(-time.Second),
			},
			units: 1,
			code:  errcodes.DealExpiredOrNotFound,
		},
		{
			name: "deal expiring this instant",
			deal: &entity.Deal{
				ID: 1, FinalPrice: 80, AvailableUnits: 10,
				ExpiresAt: now,
			},
			units: 1,
			code:  errcodes.DealExpiredOrNotFound,
		},
		{
			name:  "unknown deal",
			deal:  widgetDeal(now),
			deal2: 42,
			units: 1,
			code:  errcodes.DealExpiredOrNotFound,
		},
		{
			name: "zero stock",
			deal: &entity.Deal{
				ID: 1, FinalPrice: 80, AvailableUnits: 0,
				ExpiresAt: now.Add(time.Hour),
			},
			units: 1,
			code:  errcodes.InsufficientStock,
		},
		{
			name:  "more units than available",
			deal:  widgetDeal(now),
			units: 11,
			code:  errcodes.InsufficientStock,
		},
		{
			name:  "zero units",
			deal:  widgetDeal(now),
			units: 0,
			code:  errcodes.ValidationError,
		},
		{
			name:  "negative units",
			deal:  widgetDeal(now),
			units: -5,
			code:  errcodes.ValidationError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			store := newFakeStore(tc.deal)
			svc := newTestService(store, now)

			dealID := tc.deal.ID
			if tc.deal2 != 0 {
				dealID = tc.deal2
			}

			before := tc.deal.AvailableUnits

			_, err := svc.PlaceOrder(context.Background(), dealID, tc.units)
			rq.Error(err)

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(tc.code, code)

			rq.Equal(before, tc.deal.AvailableUnits)
			rq.Empty(store.orders)
		})
	}
}

// TestPlaceOrderConcurrent hammers one deal with more buyers than units and
// checks that stock is never oversold.
func TestPlaceOrderConcurrent(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	const (
		stock  = 10
		buyers = 50
	)

	deal := widgetDeal(now)
	deal.AvailableUnits = stock

	store := newFakeStore(deal)
	svc := newTestService(store, now)

	var (
		mu        sync.Mutex
		succeeded int
		rejected  int
	)

	g := new(errgroup.Group)

	for range buyers {
		g.Go(func() error {
			_, err := svc.PlaceOrder(context.Background(), 1, 1)

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				succeeded++
				return nil
			}

			code, ok := domain.GetCode(err)
			if !ok || code != errcodes.InsufficientStock {
				return err
			}
			rejected++

			return nil
		})
	}

	rq.NoError(g.Wait())

	rq.Equal(stock, succeeded)
	rq.Equal(buyers-stock, rejected)
	rq.Equal(int64(0), store.deals[1].AvailableUnits)

	var reservedTotal int64
	for _, ord := range store.orders {
		reservedTotal += ord.Units
	}
	rq.Equal(int64(stock), reservedTotal)
}

func TestApprove(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	store := newFakeStore(widgetDeal(now))
	svc := newTestService(store, now)

	ord, err := svc.PlaceOrder(context.Background(), 1, 2)
	rq.NoError(err)

	rq.NoError(svc.Approve(context.Background(), ord.ID))

	got, err := store.GetByID(context.Background(), ord.ID)
	rq.NoError(err)
	rq.True(got.IsApproved)

	// Approving again is a no-op, not an error.
	rq.NoError(svc.Approve(context.Background(), ord.ID))
}

func TestApproveUnknownOrder(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	svc := newTestService(newFakeStore(widgetDeal(now)), now)

	err := svc.Approve(context.Background(), 99)
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.OrderNotFound, code)
}

func TestStatus(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	store := newFakeStore(widgetDeal(now))
	svc := newTestService(store, now)

	ord, err := svc.PlaceOrder(context.Background(), 1, 3)
	rq.NoError(err)

	// A later price change must not touch the recorded order price.
	store.deals[1].FinalPrice = 60

	status, err := svc.Status(context.Background(), ord.ID)
	rq.NoError(err)

	rq.InDelta(240.0, status.Order.Price, 1e-9)
	rq.InDelta(60.0, status.Deal.FinalPrice, 1e-9)
	rq.Equal(int64(7), status.Deal.AvailableUnits)
	rq.False(status.Order.IsApproved)
}

func TestStatusUnknownOrder(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	svc := newTestService(newFakeStore(widgetDeal(now)), now)

	_, err := svc.Status(context.Background(), 99)
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.OrderNotFound, code)
}

func TestStatusMissingDeal(t *testing.T) {
	rq := require.New(t)
	now := time.Now()

	store := newFakeStore(widgetDeal(now))
	svc := newTestService(store, now)

	ord, err := svc.PlaceOrder(context.Background(), 1, 1)
	rq.NoError(err)

	delete(store.deals, 1)

	_, err = svc.Status(context.Background(), ord.ID)
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.InconsistentState, code)
}
