package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/clerin-codes/canvas/internal/auth"
	"github.com/clerin-codes/canvas/internal/cart"
)

type CartHandler struct {
	Svc *cart.Service
	Log *zap.Logger
}

type addToCartReq struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type updateLineReq struct {
	Quantity int `json:"quantity"`
}

type mergeReq struct {
	Items []cart.GuestLine `json:"items"`
}

type cartResponse struct {
	Message    string          `json:"message,omitempty"`
	Cart       *cart.Cart      `json:"cart"`
	Total      decimal.Decimal `json:"total"`
	TotalItems int             `json:"totalItems"`
}

func (h *CartHandler) Register(r *chi.Mux, authmw func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authmw)
		r.Get("/", h.getCart)
		r.Post("/add", h.addToCart)
		r.Put("/item/{lineID}", h.updateLine)
		r.Delete("/item/{lineID}", h.removeLine)
		r.Delete("/clear", h.clearCart)
		r.Post("/merge", h.mergeCart)
	})
}

func (h *CartHandler) respond(w http.ResponseWriter, msg string, c *cart.Cart) {
	writeJSON(w, http.StatusOK, cartResponse{
		Message:    msg,
		Cart:       c,
		Total:      c.Total(),
		TotalItems: c.TotalItems(),
	})
}

func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	c, err := h.Svc.Get(r.Context(), id.UserID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.respond(w, "", c)
}

func (h *CartHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if req.ProductID == "" || req.Size == "" {
		badRequest(w, "productId and size are required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	id, _ := auth.FromContext(r.Context())
	c, err := h.Svc.AddLine(r.Context(), id.UserID, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.respond(w, "Item added to cart", c)
}

func (h *CartHandler) updateLine(w http.ResponseWriter, r *http.Request) {
	var req updateLineReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}

	id, _ := auth.FromContext(r.Context())
	c, err := h.Svc.UpdateLine(r.Context(), id.UserID, chi.URLParam(r, "lineID"), req.Quantity)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.respond(w, "Cart updated", c)
}

func (h *CartHandler) removeLine(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	c, err := h.Svc.RemoveLine(r.Context(), id.UserID, chi.URLParam(r, "lineID"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.respond(w, "Item removed from cart", c)
}

func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	c, err := h.Svc.Clear(r.Context(), id.UserID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.respond(w, "Cart cleared", c)
}

func (h *CartHandler) mergeCart(w http.ResponseWriter, r *http.Request) {
	var req mergeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if req.Items == nil {
		badRequest(w, "items must be an array")
		return
	}

	id, _ := auth.FromContext(r.Context())
	c, err := h.Svc.Merge(r.Context(), id.UserID, req.Items)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.respond(w, "Cart merged", c)
}
