package server

import (
	"context"
	"fmt"
	"net/http"

	"flashsale/internal/domain/entity"
	"flashsale/pkg/httpx/reply"
	"flashsale/pkg/httpx/req"
	"flashsale/pkg/rest"
)

type orderService interface {
	PlaceOrder(ctx context.Context, dealID, units int64) (*entity.Order, error)
	Approve(ctx context.Context, orderID int64) error
	Status(ctx context.Context, orderID int64) (*entity.OrderStatus, error)
}

type OrderServer struct {
	orderService orderService
}

func NewOrderServer(orderService orderService) OrderServer {
	return OrderServer{
		orderService: orderService,
	}
}

func (s OrderServer) postOrder(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PlaceOrderRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	order, err := s.orderService.PlaceOrder(ctx, request.DealID, request.Units)
	if err != nil {
		return fmt.Errorf("orderService.PlaceOrder: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTOrder(*order))

	return nil
}

func (s OrderServer) putOrderApprove(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		return fmt.Errorf("parseID: %w", err)
	}

	if err := s.orderService.Approve(ctx, id); err != nil {
		return fmt.Errorf("orderService.Approve: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Message{Message: "Order approved successfully"})

	return nil
}

func (s OrderServer) getOrderStatus(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		return fmt.Errorf("parseID: %w", err)
	}

	status, err := s.orderService.Status(ctx, id)
	if err != nil {
		return fmt.Errorf("orderService.Status: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTOrderStatus(*status))

	return nil
}
