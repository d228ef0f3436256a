package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"flashsale/internal/domain/entity"
	"flashsale/pkg/httpx/reply"
	"flashsale/pkg/httpx/req"
	"flashsale/pkg/lox"
	"flashsale/pkg/rest"
)

type dealService interface {
	ListActive(ctx context.Context, now time.Time) ([]entity.Deal, error)
	Create(ctx context.Context, deal *entity.Deal) error
	Update(ctx context.Context, deal *entity.Deal) error
}

type DealServer struct {
	dealService dealService
}

func NewDealServer(dealService dealService) DealServer {
	return DealServer{
		dealService: dealService,
	}
}

func (s DealServer) getLightningDeals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	deals, err := s.dealService.ListActive(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("dealService.ListActive: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(deals, newRESTDeal))

	return nil
}

func (s DealServer) postLightningDeal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.SaveDealRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	deal := newDomainDeal(request)

	if err := s.dealService.Create(ctx, &deal); err != nil {
		return fmt.Errorf("dealService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTDeal(deal))

	return nil
}

func (s DealServer) putLightningDeal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		return fmt.Errorf("parseID: %w", err)
	}

	var request rest.SaveDealRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	deal := newDomainDeal(request)
	deal.ID = id

	if err := s.dealService.Update(ctx, &deal); err != nil {
		return fmt.Errorf("dealService.Update: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeal(deal))

	return nil
}
