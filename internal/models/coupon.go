package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount types understood by the checkout calculator.
const (
	DiscountPercentage   = "percentage"
	DiscountFreeShipping = "shipping"
)

type Coupon struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	Active        bool            `json:"active"`
	Terms         string          `json:"terms,omitempty"`
}
