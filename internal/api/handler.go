// Package api exposes the order management service over an HTTP JSON API.
// Every route except login and the health probes requires a bearer token
// issued by the session manager.
package api

import (
	"net/http"

	"github.com/salesdesk/salesdesk/internal/domain/catalog"
	"github.com/salesdesk/salesdesk/internal/domain/order"
	"github.com/salesdesk/salesdesk/internal/session"
)

// Handler serves the dashboard API, delegating business logic to the
// order service and catalog store.
type Handler struct {
	catalog  catalog.Store
	orders   *order.Service
	sessions *session.Manager
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(cat catalog.Store, orders *order.Service, sessions *session.Manager) *Handler {
	return &Handler{
		catalog:  cat,
		orders:   orders,
		sessions: sessions,
	}
}

// Routes returns the API route table.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", h.login)
	mux.Handle("POST /api/logout", h.requireSession(http.HandlerFunc(h.logout)))

	mux.Handle("GET /api/customers", h.requireSession(http.HandlerFunc(h.listCustomers)))
	mux.Handle("GET /api/products", h.requireSession(http.HandlerFunc(h.listProducts)))

	mux.Handle("GET /api/orders", h.requireSession(http.HandlerFunc(h.listOrders)))
	mux.Handle("POST /api/orders", h.requireSession(http.HandlerFunc(h.createOrder)))
	mux.Handle("PUT /api/orders/{id}", h.requireSession(http.HandlerFunc(h.updateOrder)))
	mux.Handle("POST /api/orders/{id}/paid", h.requireSession(http.HandlerFunc(h.markOrderPaid)))

	return mux
}
