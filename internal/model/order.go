package model

import "time"

// Order lifecycle statuses. Transitions are merchant-driven; the intake
// pipeline only ever creates orders in StatusPending.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
	StatusReturned  = "returned"
)

// transitions maps each non-terminal status to the statuses it may move to.
// "delivered", "cancelled" and "returned" are terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusReturned},
	StatusConfirmed: {StatusShipped, StatusReturned},
	StatusShipped:   {StatusDelivered, StatusReturned},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderSubmission is the raw payload produced by the storefront widget.
// It is immutable once received and consumed exactly once by the intake
// or partial-settlement pipeline.
type OrderSubmission struct {
	ShopID         string  `json:"shop_id" validate:"required"`
	CustomerName   string  `json:"customer_name"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	Email          string  `json:"email"`
	ProductID      string  `json:"product_id"`
	VariantID      string  `json:"variant_id"`
	ProductTitle   string  `json:"product_title"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	Notes          string  `json:"notes"`
	ShippingMethod string  `json:"shipping_method"`
	ShippingPrice  float64 `json:"shipping_price"`
}

// DefaultMaxQuantity applies when a shop has no stored policy.
const DefaultMaxQuantity = 10

// ValidationPolicy is the per-shop intake policy. RequiredFields is a subset
// of {"name", "phone", "address"}.
type ValidationPolicy struct {
	RequiredFields []string
	MaxQuantity    int
}

// DefaultPolicy returns the policy used for shops without a stored one.
func DefaultPolicy() ValidationPolicy {
	return ValidationPolicy{
		RequiredFields: []string{"name", "phone", "address"},
		MaxQuantity:    DefaultMaxQuantity,
	}
}

// OrderLogEntry is the durable order record. Never deleted; status only
// moves through the lifecycle above.
type OrderLogEntry struct {
	ID              int64     `json:"id" db:"id"`
	ShopID          string    `json:"shop_id" db:"shop_id"`
	OrderName       string    `json:"order_name" db:"order_name"`
	CustomerName    string    `json:"customer_name" db:"customer_name"`
	Phone           string    `json:"phone" db:"phone"`
	Address         string    `json:"address" db:"address"`
	Email           string    `json:"email" db:"email"`
	ProductID       string    `json:"product_id" db:"product_id"`
	VariantID       string    `json:"variant_id" db:"variant_id"`
	ProductTitle    string    `json:"product_title" db:"product_title"`
	Quantity        int       `json:"quantity" db:"quantity"`
	TotalPrice      float64   `json:"total_price" db:"total_price"`
	Currency        string    `json:"currency" db:"currency"`
	Status          string    `json:"status" db:"status"`
	Notes           string    `json:"notes" db:"notes"`
	ShippingMethod  string    `json:"shipping_method" db:"shipping_method"`
	IsPartialCod    bool      `json:"is_partial_cod" db:"is_partial_cod"`
	AdvanceAmount   float64   `json:"advance_amount" db:"advance_amount"`
	RemainingAmount float64   `json:"remaining_amount" db:"remaining_amount"`
	DraftOrderID    string    `json:"draft_order_id" db:"draft_order_id"`
	DraftOrderName  string    `json:"draft_order_name" db:"draft_order_name"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
