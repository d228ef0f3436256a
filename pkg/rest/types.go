package rest

// Deal is the wire representation of a lightning deal. ExpiryTime is unix
// seconds.
type Deal struct {
	ID             int64   `json:"id"`
	ProductName    string  `json:"product_name"`
	ActualPrice    float64 `json:"actual_price"`
	FinalPrice     float64 `json:"final_price"`
	TotalUnits     int64   `json:"total_units"`
	AvailableUnits int64   `json:"available_units"`
	ExpiryTime     int64   `json:"expiry_time"`
}

// SaveDealRequest carries all six deal attributes for create and full
// update. Attribute validation is deliberately absent: malformed deals are
// accepted as-is.
type SaveDealRequest struct {
	ProductName    string  `json:"product_name"`
	ActualPrice    float64 `json:"actual_price"`
	FinalPrice     float64 `json:"final_price"`
	TotalUnits     int64   `json:"total_units"`
	AvailableUnits int64   `json:"available_units"`
	ExpiryTime     int64   `json:"expiry_time"`
}

type Order struct {
	ID         int64   `json:"id"`
	DealID     int64   `json:"deal_id"`
	Units      int64   `json:"units"`
	Price      float64 `json:"price"`
	IsApproved bool    `json:"isApproved"`
}

type PlaceOrderRequest struct {
	DealID int64 `json:"deal_id" validate:"required"`
	Units  int64 `json:"units" validate:"required,gte=1"`
}

// OrderStatus embeds the current deal state next to the fixed order price.
type OrderStatus struct {
	ID         int64   `json:"id"`
	Deal       Deal    `json:"deal"`
	Units      int64   `json:"units"`
	Price      float64 `json:"price"`
	IsApproved bool    `json:"isApproved"`
}

type Message struct {
	Message string `json:"message"`
}

// Error is the wire model of a failed request.
type Error struct {
	Code ErrorCode `json:"code"`

	// Message is safe to show in a UI.
	Message string `json:"message"`
}

type ErrorCode string
