package deal

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"flashsale/internal/domain/entity"
	"flashsale/pkg/contextx"
)

const (
	listCacheTTL = time.Second
	listCacheKey = "active-deals"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type DealRepository interface {
	Create(ctx context.Context, deal *entity.Deal) error
	GetByID(ctx context.Context, id int64) (*entity.Deal, error)
	Update(ctx context.Context, deal *entity.Deal) error
	ListActive(ctx context.Context, now time.Time) ([]entity.Deal, error)
}

type Service struct {
	repo      DealRepository
	listCache *cache.Cache
}

func NewService(repo DealRepository) *Service {
	return &Service{
		repo:      repo,
		listCache: cache.New(listCacheTTL, time.Minute),
	}
}

// ListActive returns unexpired deals. The listing is cached for up to
// listCacheTTL, so available_units and expiry may lag the store by that
// much here; point lookups and order status always read the store.
func (s *Service) ListActive(ctx context.Context, now time.Time) ([]entity.Deal, error) {
	if cached, found := s.listCache.Get(listCacheKey); found {
		return cached.([]entity.Deal), nil
	}

	deals, err := s.repo.ListActive(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("dealRepo.ListActive: %w", err)
	}

	s.listCache.SetDefault(listCacheKey, deals)

	return deals, nil
}

// Create inserts a deal as-is. Attribute validation is a documented
// non-goal: price ordering and numeric ranges are not checked.
func (s *Service) Create(ctx context.Context, deal *entity.Deal) error {
	if err := s.repo.Create(ctx, deal); err != nil {
		return fmt.Errorf("dealRepo.Create: %w", err)
	}

	s.listCache.Delete(listCacheKey)

	logger(ctx).Info("lightning deal created", "deal_id", deal.ID, "product", deal.ProductName)

	return nil
}

// Update overwrites all attributes of an existing deal, available units
// included.
func (s *Service) Update(ctx context.Context, deal *entity.Deal) error {
	if err := s.repo.Update(ctx, deal); err != nil {
		return fmt.Errorf("dealRepo.Update: %w", err)
	}

	s.listCache.Delete(listCacheKey)

	logger(ctx).Info("lightning deal updated", "deal_id", deal.ID)

	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*entity.Deal, error) {
	deal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("dealRepo.GetByID: %w", err)
	}

	return deal, nil
}
