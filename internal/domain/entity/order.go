package entity

// Order is a reservation of units against a deal. Price is the total fixed
// at placement time (final price × units) and is never recomputed.
type Order struct {
	ID         int64
	DealID     int64
	Units      int64
	Price      float64
	IsApproved bool
}

// OrderStatus joins an order with the current state of its deal. The deal
// part is live data, not a placement-time snapshot.
type OrderStatus struct {
	Order Order
	Deal  Deal
}
