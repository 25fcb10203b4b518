package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phinehas2020/havis-candy/internal/cart"
)

// CartHandler exposes the cart state machine over HTTP. The cart is
// identified by a client-generated X-Cart-ID header; the server never
// mints cart IDs.
type CartHandler struct {
	carts *cart.Service
}

func NewCartHandler(carts *cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

type AddItemRequestDTO struct {
	ProductID     string  `json:"productId"`
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Price         float64 `json:"price"`
	StripePriceID string  `json:"stripePriceId"`
	ImageURL      string  `json:"imageUrl"`
	InStock       bool    `json:"inStock"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items     []cart.Item `json:"items"`
	IsOpen    bool        `json:"isOpen"`
	ItemCount int         `json:"itemCount"`
	Subtotal  float64     `json:"subtotal"`
}

func cartResponse(state cart.State) CartResponseDTO {
	items := state.Items
	if items == nil {
		items = []cart.Item{}
	}
	return CartResponseDTO{
		Items:     items,
		IsOpen:    state.IsOpen,
		ItemCount: state.ItemCount(),
		Subtotal:  state.Subtotal(),
	}
}

func cartIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	cartID := r.Header.Get("X-Cart-ID")
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart_id", "X-Cart-ID header is required")
		return "", false
	}
	return cartID, true
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromRequest(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(h.carts.Get(r.Context(), cartID)))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromRequest(w, r)
	if !ok {
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId is required")
		return
	}
	if req.StripePriceID == "" {
		respondError(w, http.StatusBadRequest, "invalid_price_id", "stripePriceId is required")
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return
	}

	state := h.carts.AddItem(r.Context(), cartID, cart.Item{
		ProductID:     req.ProductID,
		Title:         req.Title,
		Slug:          req.Slug,
		Price:         req.Price,
		StripePriceID: req.StripePriceID,
		ImageURL:      req.ImageURL,
		InStock:       req.InStock,
	})

	respondJSON(w, http.StatusCreated, cartResponse(state))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromRequest(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	state := h.carts.UpdateQuantity(r.Context(), cartID, productID, req.Quantity)
	respondJSON(w, http.StatusOK, cartResponse(state))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromRequest(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	state := h.carts.RemoveItem(r.Context(), cartID, productID)
	respondJSON(w, http.StatusOK, cartResponse(state))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromRequest(w, r)
	if !ok {
		return
	}

	state := h.carts.Clear(r.Context(), cartID)
	respondJSON(w, http.StatusOK, cartResponse(state))
}

func (h *CartHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromRequest(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(h.carts.Open(r.Context(), cartID)))
}

func (h *CartHandler) CloseCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromRequest(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(h.carts.Close(r.Context(), cartID)))
}
