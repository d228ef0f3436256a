package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlaceOrderDuration tracks the latency of order placement by outcome.
	PlaceOrderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "flashsale_place_order_duration_seconds",
			Help: "Duration of order placement requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
			},
		},
		[]string{"status"}, // success, rejected or failed
	)
)

// RecordPlaceOrderDuration records the duration of an order placement.
func RecordPlaceOrderDuration(status string, duration float64) {
	PlaceOrderDuration.WithLabelValues(status).Observe(duration)
}
