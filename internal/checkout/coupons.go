package checkout

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prakritistore/cart-service/internal/models"
)

var (
	ErrCouponNotFound = errors.New("checkout: coupon not found")
	ErrCouponInactive = errors.New("checkout: coupon inactive")
	ErrCouponExpired  = errors.New("checkout: coupon expired")
	ErrMinimumNotMet  = errors.New("checkout: minimum order value not met")
)

// CouponTable holds the configured coupons in memory. Codes are matched
// case-insensitively.
type CouponTable struct {
	mu    sync.RWMutex
	store map[string]models.Coupon
}

func NewCouponTable(coupons []models.Coupon) *CouponTable {
	t := &CouponTable{store: make(map[string]models.Coupon, len(coupons))}
	for _, c := range coupons {
		t.store[normalizeCode(c.Code)] = c
	}
	return t
}

// DefaultCoupons is the seed table used when no coupon file is configured.
func DefaultCoupons() []models.Coupon {
	return []models.Coupon{
		{
			Code:          "SAVE20",
			DiscountType:  models.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(20),
			MinOrderValue: decimal.NewFromInt(100),
			Active:        true,
			Terms:         "20% off orders of 100 or more",
		},
		{
			Code:          "WELCOME10",
			DiscountType:  models.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(10),
			MinOrderValue: decimal.NewFromInt(50),
			Active:        true,
			Terms:         "10% off your first order of 50 or more",
		},
		{
			Code:          "FREESHIP",
			DiscountType:  models.DiscountFreeShipping,
			DiscountValue: decimal.Zero,
			MinOrderValue: decimal.NewFromInt(75),
			Active:        true,
			Terms:         "Free shipping on orders of 75 or more",
		},
	}
}

// LoadCouponFile reads a JSON array of coupons from disk, for deployments
// that override the default table.
func LoadCouponFile(path string) ([]models.Coupon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("checkout: read coupon file: %w", err)
	}
	var coupons []models.Coupon
	if err := json.Unmarshal(data, &coupons); err != nil {
		return nil, fmt.Errorf("checkout: parse coupon file: %w", err)
	}
	return coupons, nil
}

func (t *CouponTable) Lookup(code string) (models.Coupon, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.store[normalizeCode(code)]
	return c, ok
}

func (t *CouponTable) Put(c models.Coupon) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store[normalizeCode(c.Code)] = c
}

func (t *CouponTable) All() []models.Coupon {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]models.Coupon, 0, len(t.store))
	for _, c := range t.store {
		out = append(out, c)
	}
	return out
}

// Apply validates a coupon code against the current subtotal. Cart state is
// never touched here; a rejected coupon simply leaves the caller's totals
// without a discount.
func (t *CouponTable) Apply(code string, subtotal decimal.Decimal) (models.Coupon, error) {
	c, ok := t.Lookup(code)
	if !ok {
		return models.Coupon{}, ErrCouponNotFound
	}
	if !c.Active {
		return models.Coupon{}, ErrCouponInactive
	}
	if c.ExpiresAt != nil && time.Now().After(*c.ExpiresAt) {
		return models.Coupon{}, ErrCouponExpired
	}
	if subtotal.LessThan(c.MinOrderValue) {
		return models.Coupon{}, ErrMinimumNotMet
	}
	return c, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
