package orders

import (
	"encoding/json"
	"time"
)

const EventOrderConfirmed = "OrderConfirmed"

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

type LinePayload struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

// OrderConfirmedPayload membawa order lengkap plus alamat email pemilik,
// supaya notifier tidak perlu query balik ke API.
type OrderConfirmedPayload struct {
	OrderID     string        `json:"order_id"`
	UserID      string        `json:"user_id"`
	Email       string        `json:"email"`
	UserName    string        `json:"user_name,omitempty"`
	Lines       []LinePayload `json:"lines"`
	TotalAmount string        `json:"total_amount"`
	CreatedAt   time.Time     `json:"created_at"`
}

func ConfirmedPayload(o *Order, email, userName string) OrderConfirmedPayload {
	lines := make([]LinePayload, 0, len(o.Lines))
	for _, ln := range o.Lines {
		lines = append(lines, LinePayload{
			ProductID:   ln.ProductID,
			ProductName: ln.ProductName,
			Size:        ln.Size,
			Quantity:    ln.Quantity,
			Price:       ln.Price.StringFixed(2),
		})
	}
	return OrderConfirmedPayload{
		OrderID:     o.ID,
		UserID:      o.UserID,
		Email:       email,
		UserName:    userName,
		Lines:       lines,
		TotalAmount: o.TotalAmount.StringFixed(2),
		CreatedAt:   o.CreatedAt,
	}
}
