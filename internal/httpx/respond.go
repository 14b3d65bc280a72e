package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/clerin-codes/canvas/internal/cart"
	"github.com/clerin-codes/canvas/internal/catalog"
	"github.com/clerin-codes/canvas/internal/checkout"
	"github.com/clerin-codes/canvas/internal/orders"
	"github.com/clerin-codes/canvas/internal/users"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError petakan sentinel domain ke status code. Error tak dikenal =
// dependency failure: detail cuma masuk log, client dapat pesan generik.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, cart.ErrCartNotFound),
		errors.Is(err, cart.ErrLineNotFound),
		errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, users.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})

	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrSizeUnavailable),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, users.ErrEmailTaken),
		errors.Is(err, users.ErrInvalidOTP):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})

	case errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, checkout.ErrProductUnavailable):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})

	case errors.Is(err, orders.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "this order does not belong to you"})

	default:
		log.Error("internal error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
