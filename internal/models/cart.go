package models

import "github.com/shopspring/decimal"

// CartItem is one line in the basket. Name, Image and Price are copied from
// the catalog entry at add-time; Quantity is the only field that changes
// afterwards.
type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Image    string          `json:"image,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// LineTotal returns price * quantity for this item.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
