package server

import (
	"net/http"
	"strconv"
	"time"

	"flashsale/internal/domain"
	"flashsale/internal/domain/entity"
	"flashsale/pkg/errcodes"
	"flashsale/pkg/rest"
)

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.ValidationError, "invalid id")
	}

	return id, nil
}

func newRESTDeal(deal entity.Deal) rest.Deal {
	return rest.Deal{
		ID:             deal.ID,
		ProductName:    deal.ProductName,
		ActualPrice:    deal.ActualPrice,
		FinalPrice:     deal.FinalPrice,
		TotalUnits:     deal.TotalUnits,
		AvailableUnits: deal.AvailableUnits,
		ExpiryTime:     deal.ExpiresAt.Unix(),
	}
}

func newDomainDeal(request rest.SaveDealRequest) entity.Deal {
	return entity.Deal{
		ProductName:    request.ProductName,
		ActualPrice:    request.ActualPrice,
		FinalPrice:     request.FinalPrice,
		TotalUnits:     request.TotalUnits,
		AvailableUnits: request.AvailableUnits,
		ExpiresAt:      time.Unix(request.ExpiryTime, 0),
	}
}

func newRESTOrder(order entity.Order) rest.Order {
	return rest.Order{
		ID:         order.ID,
		DealID:     order.DealID,
		Units:      order.Units,
		Price:      order.Price,
		IsApproved: order.IsApproved,
	}
}

func newRESTOrderStatus(status entity.OrderStatus) rest.OrderStatus {
	return rest.OrderStatus{
		ID:         status.Order.ID,
		Deal:       newRESTDeal(status.Deal),
		Units:      status.Order.Units,
		Price:      status.Order.Price,
		IsApproved: status.Order.IsApproved,
	}
}
