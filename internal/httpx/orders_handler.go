package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/clerin-codes/canvas/internal/auth"
	"github.com/clerin-codes/canvas/internal/checkout"
	"github.com/clerin-codes/canvas/internal/orders"
	"github.com/clerin-codes/canvas/internal/users"
)

type OrdersHandler struct {
	Checkout *checkout.Service
	Ledger   *orders.Ledger
	Users    *users.Repo
	Log      *zap.Logger
}

func (h *OrdersHandler) Register(r *chi.Mux, authmw func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authmw)
		r.Post("/checkout", h.doCheckout)
		r.Get("/my-orders", h.myOrders)
		r.Get("/{orderID}", h.getOrder)
	})
}

func (h *OrdersHandler) doCheckout(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	// user harus masih ada; email & nama untuk notifikasi diambil dari DB,
	// bukan dari token
	u, err := h.Users.FindByID(r.Context(), id.UserID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	o, err := h.Checkout.Checkout(r.Context(), u.ID, u.Email, u.Name, middleware.GetReqID(r.Context()))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order created successfully",
		"order":   o,
	})
}

func (h *OrdersHandler) myOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	out, err := h.Ledger.ListByOwner(r.Context(), id.UserID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if out == nil {
		out = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": out})
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	o, err := h.Ledger.GetByID(r.Context(), chi.URLParam(r, "orderID"), id.UserID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": o})
}
