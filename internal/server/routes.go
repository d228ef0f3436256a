package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"flashsale/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/lightning_deals", func(r chi.Router) {
		r.Get("/", handler(s.getLightningDeals))
		r.Post("/", handler(s.postLightningDeal))
		r.Put("/{id}", handler(s.putLightningDeal))
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", handler(s.postOrder))
		r.Put("/{id}/approve", handler(s.putOrderApprove))
		r.Get("/{id}/status", handler(s.getOrderStatus))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
