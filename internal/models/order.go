package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutForm carries the customer fields collected on the checkout screen.
type CheckoutForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Order is an immutable snapshot of a completed checkout. Orders are
// append-only and only ever read back for display.
type Order struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	Customer   CheckoutForm    `json:"customer"`
	Items      []CartItem      `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	CouponCode string          `json:"coupon_code,omitempty"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}
