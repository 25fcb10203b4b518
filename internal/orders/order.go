package orders

import (
	"time"

	"github.com/google/uuid"
)

// Order is the archived record of a paid checkout session.
type Order struct {
	ID          uuid.UUID   `json:"id"`
	SessionID   string      `json:"session_id"`
	CartID      string      `json:"cart_id,omitempty"`
	AmountTotal int64       `json:"amount_total"`
	Currency    string      `json:"currency"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
}

// OrderItem is one purchased line as reported by the payment processor
// when the session was confirmed.
type OrderItem struct {
	Description string `json:"description"`
	PriceID     string `json:"price_id,omitempty"`
	Quantity    int64  `json:"quantity"`
	AmountTotal int64  `json:"amount_total"`
}
