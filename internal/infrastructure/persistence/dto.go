package persistence

import (
	"time"

	"flashsale/internal/domain/entity"
)

// dealSchema maps a lightning_deals row. Expiry is stored as unix seconds,
// matching the wire format.
type dealSchema struct {
	ID             int64   `db:"id"`
	ProductName    string  `db:"product_name"`
	ActualPrice    float64 `db:"actual_price"`
	FinalPrice     float64 `db:"final_price"`
	TotalUnits     int64   `db:"total_units"`
	AvailableUnits int64   `db:"available_units"`
	ExpiryTime     int64   `db:"expiry_time"`
}

func (s *dealSchema) toDomain() *entity.Deal {
	return &entity.Deal{
		ID:             s.ID,
		ProductName:    s.ProductName,
		ActualPrice:    s.ActualPrice,
		FinalPrice:     s.FinalPrice,
		TotalUnits:     s.TotalUnits,
		AvailableUnits: s.AvailableUnits,
		ExpiresAt:      time.Unix(s.ExpiryTime, 0),
	}
}

func fromDeal(d *entity.Deal) *dealSchema {
	return &dealSchema{
		ID:             d.ID,
		ProductName:    d.ProductName,
		ActualPrice:    d.ActualPrice,
		FinalPrice:     d.FinalPrice,
		TotalUnits:     d.TotalUnits,
		AvailableUnits: d.AvailableUnits,
		ExpiryTime:     d.ExpiresAt.Unix(),
	}
}

// orderSchema maps an orders row.
type orderSchema struct {
	ID         int64   `db:"id"`
	DealID     int64   `db:"deal_id"`
	Units      int64   `db:"units"`
	Price      float64 `db:"price"`
	IsApproved bool    `db:"is_approved"`
}

func (s *orderSchema) toDomain() *entity.Order {
	return &entity.Order{
		ID:         s.ID,
		DealID:     s.DealID,
		Units:      s.Units,
		Price:      s.Price,
		IsApproved: s.IsApproved,
	}
}
