package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/prakritistore/cart-service/internal/models"
)

// Pricing carries the configurable checkout parameters. The storefront
// screens used to hard-code these with diverging values; here there is one
// set, injected from configuration.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// Totals is the full checkout breakdown. Values are exact decimals; round
// with Rounded only at the presentation boundary.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives the payable amount from the item list, an optional
// applied coupon, and the pricing parameters.
//
//	subtotal = sum(price * qty)
//	discount = subtotal * pct/100 for a percentage coupon, else 0
//	shipping = 0 for a valid shipping coupon or above the free threshold,
//	           else the flat fee
//	tax      = subtotal * rate
//	total    = subtotal - discount + shipping + tax
func ComputeTotals(items []models.CartItem, coupon *models.Coupon, p Pricing) Totals {
	sub := decimal.Zero
	for _, it := range items {
		sub = sub.Add(it.LineTotal())
	}

	discount := decimal.Zero
	freeShipByCoupon := false
	if coupon != nil && sub.GreaterThanOrEqual(coupon.MinOrderValue) {
		switch coupon.DiscountType {
		case models.DiscountPercentage:
			discount = sub.Mul(coupon.DiscountValue).Div(decimal.NewFromInt(100))
		case models.DiscountFreeShipping:
			freeShipByCoupon = true
		}
	}

	shipping := decimal.Zero
	if !freeShipByCoupon && len(items) > 0 && sub.LessThan(p.FreeShippingThreshold) {
		shipping = p.ShippingFee
	}

	tax := sub.Mul(p.TaxRate)

	return Totals{
		Subtotal: sub,
		Discount: discount,
		Shipping: shipping,
		Tax:      tax,
		Total:    sub.Sub(discount).Add(shipping).Add(tax),
	}
}

// Rounded returns the breakdown rounded to 2 decimal places for display and
// serialization.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round(2),
		Discount: t.Discount.Round(2),
		Shipping: t.Shipping.Round(2),
		Tax:      t.Tax.Round(2),
		Total:    t.Total.Round(2),
	}
}
