package entity

import "time"

// Deal is a time-boxed discounted offer with a finite number of units.
// AvailableUnits only decreases through order placement; the full-update
// endpoint may set it to anything, including above TotalUnits.
type Deal struct {
	ID             int64
	ProductName    string
	ActualPrice    float64
	FinalPrice     float64
	TotalUnits     int64
	AvailableUnits int64
	ExpiresAt      time.Time
}

func (d Deal) Expired(now time.Time) bool {
	return !d.ExpiresAt.After(now)
}
