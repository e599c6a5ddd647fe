package checkout

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakritistore/cart-service/internal/models"
)

func TestApplyCouponGating(t *testing.T) {
	table := NewCouponTable(DefaultCoupons())

	_, err := table.Apply("SAVE20", decimal.NewFromInt(99))
	require.ErrorIs(t, err, ErrMinimumNotMet)

	c, err := table.Apply("SAVE20", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, c.DiscountValue.Equal(decimal.NewFromInt(20)))
}

func TestApplyCouponUnknownCode(t *testing.T) {
	table := NewCouponTable(DefaultCoupons())
	_, err := table.Apply("NOPE", decimal.NewFromInt(500))
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestApplyCouponCaseInsensitive(t *testing.T) {
	table := NewCouponTable(DefaultCoupons())
	_, err := table.Apply("  save20 ", decimal.NewFromInt(150))
	assert.NoError(t, err)
}

func TestApplyCouponInactive(t *testing.T) {
	table := NewCouponTable([]models.Coupon{{
		Code:          "RETIRED",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(5),
		Active:        false,
	}})
	_, err := table.Apply("RETIRED", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, ErrCouponInactive)
}

func TestApplyCouponExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	table := NewCouponTable([]models.Coupon{{
		Code:          "BYGONE",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(5),
		ExpiresAt:     &past,
		Active:        true,
	}})
	_, err := table.Apply("BYGONE", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestCouponTablePut(t *testing.T) {
	table := NewCouponTable(nil)
	table.Put(models.Coupon{
		Code:          "DIWALI25",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(25),
		Active:        true,
	})

	c, ok := table.Lookup("diwali25")
	require.True(t, ok)
	assert.Equal(t, "DIWALI25", c.Code)
	assert.Len(t, table.All(), 1)
}
