package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/prakritistore/cart-service/internal/cart"
	"github.com/prakritistore/cart-service/internal/models"
)

// --- Request / Response DTOs ---

type AddItemRequest struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Image    string          `json:"image,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity,omitempty"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
}

type CartHandler struct {
	store *cart.Store
}

func NewCartHandler(store *cart.Store) *CartHandler {
	return &CartHandler{store: store}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if req.ID == "" || req.Name == "" || req.Price.IsNegative() {
		writeError(w, http.StatusBadRequest, "id, name and a non-negative price are required")
		return
	}

	item := models.CartItem{
		ID:       req.ID,
		Name:     req.Name,
		Image:    req.Image,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	if err := h.store.Add(r.Context(), item); err != nil {
		writeError(w, http.StatusInternalServerError, "failed_add_item")
		return
	}
	writeJSON(w, http.StatusCreated, h.cartResponse())
}

// UpdateItem handles PUT /cart/items/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if err := h.store.Update(r.Context(), id, req.Quantity); err != nil {
		writeError(w, http.StatusInternalServerError, "failed_update_item")
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// RemoveItem handles DELETE /cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed_remove_item")
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed_clear_cart")
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) cartResponse() CartResponse {
	return CartResponse{
		Items:     h.store.Items(),
		ItemCount: h.store.ItemCount(),
		Subtotal:  h.store.Subtotal().Round(2),
	}
}
