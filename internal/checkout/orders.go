package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prakritistore/cart-service/internal/cart"
	"github.com/prakritistore/cart-service/internal/models"
	"github.com/prakritistore/cart-service/internal/storage"
)

// OrderStatus is fixed at creation; there is no downstream fulfilment to
// move an order past it.
const OrderStatus = "Processing"

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe   = regexp.MustCompile(`^[0-9]{10}$`)
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
)

// FormErrors maps checkout form field names to validation messages.
type FormErrors map[string]string

func (e FormErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	return fmt.Sprintf("checkout: invalid form fields: %s", strings.Join(fields, ", "))
}

// ValidateForm checks every customer field and returns all failures at once
// so the caller can render per-field messages.
func ValidateForm(f models.CheckoutForm) FormErrors {
	errs := FormErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if !emailRe.MatchString(f.Email) {
		errs["email"] = "Enter a valid email address"
	}
	if !phoneRe.MatchString(f.Phone) {
		errs["phone"] = "Enter a 10-digit phone number"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(f.City) == "" {
		errs["city"] = "City is required"
	}
	if !pincodeRe.MatchString(f.Pincode) {
		errs["pincode"] = "Enter a 6-digit pincode"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Service runs the checkout flow: totals, coupon application, and simulated
// order placement against the local store.
type Service struct {
	kv      storage.KV
	cart    *cart.Store
	coupons *CouponTable
	pricing Pricing
}

func NewService(kv storage.KV, cartStore *cart.Store, coupons *CouponTable, pricing Pricing) *Service {
	return &Service{kv: kv, cart: cartStore, coupons: coupons, pricing: pricing}
}

// Quote computes the current checkout breakdown, applying the coupon code if
// one is given. Coupon failures are returned as typed errors with the
// couponless totals, so callers can show an inline message next to an
// otherwise valid summary.
func (s *Service) Quote(couponCode string) (Totals, error) {
	items := s.cart.Items()
	base := ComputeTotals(items, nil, s.pricing)
	if strings.TrimSpace(couponCode) == "" {
		return base, nil
	}
	coupon, err := s.coupons.Apply(couponCode, base.Subtotal)
	if err != nil {
		return base, err
	}
	return ComputeTotals(items, &coupon, s.pricing), nil
}

// PlaceOrder validates the form, snapshots the cart with its totals into an
// append-only order record, and clears the cart. There is no payment step;
// the order is written locally with a fixed initial status.
func (s *Service) PlaceOrder(ctx context.Context, form models.CheckoutForm, couponCode string) (*models.Order, error) {
	if errs := ValidateForm(form); errs != nil {
		return nil, errs
	}
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, fmt.Errorf("checkout: cart is empty")
	}

	totals, err := s.Quote(couponCode)
	if err != nil {
		return nil, err
	}
	totals = totals.Rounded()

	now := time.Now().UTC()
	order := models.Order{
		ID:        uuid.NewString(),
		Number:    "ORD" + now.Format("20060102") + fmt.Sprintf("%04d", now.UnixNano()%1e4),
		Customer:  form,
		Items:     items,
		Subtotal:  totals.Subtotal,
		Discount:  totals.Discount,
		Shipping:  totals.Shipping,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Status:    OrderStatus,
		CreatedAt: now,
	}
	if strings.TrimSpace(couponCode) != "" {
		order.CouponCode = strings.ToUpper(strings.TrimSpace(couponCode))
	}

	orders, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	orders = append(orders, order)

	data, err := json.Marshal(orders)
	if err != nil {
		return nil, fmt.Errorf("checkout: encode orders: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyOrders, data); err != nil {
		return nil, fmt.Errorf("checkout: persist order: %w", err)
	}

	if err := s.cart.Clear(ctx); err != nil {
		// The order is already durable; an empty-cart write failure only
		// leaves stale items behind for the next mutation to overwrite.
		slog.WarnContext(ctx, "checkout: cart clear after order failed", "order_id", order.ID, "error", err)
	}

	slog.InfoContext(ctx, "order placed", "order_id", order.ID, "number", order.Number, "total", order.Total)
	return &order, nil
}

// ListOrders returns every recorded order, oldest first. Corrupt or missing
// order history reads as empty.
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	data, err := s.kv.Get(ctx, storage.KeyOrders)
	if err != nil {
		if errors.Is(err, storage.ErrNoKey) {
			return []models.Order{}, nil
		}
		return nil, fmt.Errorf("checkout: load orders: %w", err)
	}
	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		slog.Warn("checkout: order history corrupt, resetting", "error", err)
		return []models.Order{}, nil
	}
	return orders, nil
}
