package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prakritistore/cart-service/internal/checkout"
	"github.com/prakritistore/cart-service/internal/models"
)

// --- Request / Response DTOs ---

type ValidateCouponRequest struct {
	Code string `json:"code"`
}

type ValidateCouponResponse struct {
	Valid    bool            `json:"valid"`
	Discount decimal.Decimal `json:"discount"`
	Message  string          `json:"message"`
}

type ApplicableCouponsResponse struct {
	ApplicableCoupons []string `json:"applicable_coupons"`
}

type PlaceOrderRequest struct {
	Customer   models.CheckoutForm `json:"customer"`
	CouponCode string              `json:"coupon_code,omitempty"`
}

type CheckoutHandler struct {
	service *checkout.Service
	coupons *checkout.CouponTable
}

func NewCheckoutHandler(service *checkout.Service, coupons *checkout.CouponTable) *CheckoutHandler {
	return &CheckoutHandler{service: service, coupons: coupons}
}

// ValidateCoupon handles POST /coupons/validate. Rejections are ordinary
// 200 responses with valid=false so clients render them inline.
func (h *CheckoutHandler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req ValidateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	totals, err := h.service.Quote(req.Code)
	if err != nil {
		writeJSON(w, http.StatusOK, ValidateCouponResponse{
			Valid:    false,
			Discount: decimal.Zero,
			Message:  couponMessage(err),
		})
		return
	}
	writeJSON(w, http.StatusOK, ValidateCouponResponse{
		Valid:    true,
		Discount: totals.Discount.Round(2),
		Message:  "Coupon applied successfully",
	})
}

// ApplicableCoupons handles GET /coupons/applicable: the codes the current
// cart already qualifies for, for the offers strip on the cart screen.
func (h *CheckoutHandler) ApplicableCoupons(w http.ResponseWriter, r *http.Request) {
	totals, _ := h.service.Quote("")
	now := time.Now()

	codes := []string{}
	for _, c := range h.coupons.All() {
		if !c.Active {
			continue
		}
		if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
			continue
		}
		if totals.Subtotal.GreaterThanOrEqual(c.MinOrderValue) {
			codes = append(codes, c.Code)
		}
	}
	writeJSON(w, http.StatusOK, ApplicableCouponsResponse{ApplicableCoupons: codes})
}

// Quote handles GET /checkout/quote?coupon=CODE
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("coupon")
	totals, err := h.service.Quote(code)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"totals":       totals.Rounded(),
			"coupon_error": couponMessage(err),
			"coupon_valid": false,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"totals":       totals.Rounded(),
		"coupon_valid": code != "",
	})
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), req.Customer, req.CouponCode)
	if err != nil {
		var formErrs checkout.FormErrors
		if errors.As(err, &formErrs) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":  "invalid_form",
				"fields": formErrs,
			})
			return
		}
		if isCouponError(err) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error":   "invalid_coupon",
				"message": couponMessage(err),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed_place_order")
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// ListOrders handles GET /orders
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed_list_orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func isCouponError(err error) bool {
	return errors.Is(err, checkout.ErrCouponNotFound) ||
		errors.Is(err, checkout.ErrCouponInactive) ||
		errors.Is(err, checkout.ErrCouponExpired) ||
		errors.Is(err, checkout.ErrMinimumNotMet)
}

func couponMessage(err error) string {
	switch {
	case errors.Is(err, checkout.ErrCouponNotFound):
		return "Coupon not found"
	case errors.Is(err, checkout.ErrCouponInactive):
		return "Coupon is no longer active"
	case errors.Is(err, checkout.ErrCouponExpired):
		return "Coupon has expired"
	case errors.Is(err, checkout.ErrMinimumNotMet):
		return "Order total does not meet the coupon minimum"
	default:
		return "Coupon could not be applied"
	}
}
