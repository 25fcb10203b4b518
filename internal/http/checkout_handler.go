package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/phinehas2020/havis-candy/internal/checkout"
)

const defaultOrigin = "http://localhost:3000"

// CheckoutHandler creates payment sessions and confirms completed ones.
type CheckoutHandler struct {
	checkout *checkout.Service
	siteURL  string
}

func NewCheckoutHandler(checkoutService *checkout.Service, siteURL string) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkoutService, siteURL: siteURL}
}

type CreateSessionRequestDTO struct {
	LineItems []checkout.LineItemRequest `json:"lineItems"`
}

type CreateSessionResponseDTO struct {
	URL string `json:"url"`
}

type UnresolvedItemsResponseDTO struct {
	Error           string   `json:"error"`
	InvalidPriceIDs []string `json:"invalidPriceIds"`
}

type ConfirmResponseDTO struct {
	Paid        bool `json:"paid"`
	CartCleared bool `json:"cartCleared"`
}

func (h *CheckoutHandler) origin(r *http.Request) string {
	if origin := r.Header.Get("Origin"); origin != "" {
		return origin
	}
	if h.siteURL != "" {
		return h.siteURL
	}
	return defaultOrigin
}

func validateLineItems(items []checkout.LineItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("lineItems must not be empty")
	}
	if len(items) > checkout.MaxLineItems {
		return fmt.Errorf("at most %d line items per checkout", checkout.MaxLineItems)
	}
	for i, item := range items {
		if item.PriceID == "" {
			return fmt.Errorf("lineItems[%d]: priceId is required", i)
		}
		if item.Quantity < 1 || item.Quantity > checkout.MaxQuantity {
			return fmt.Errorf("lineItems[%d]: quantity must be between 1 and %d", i, checkout.MaxQuantity)
		}
	}
	return nil
}

func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := validateLineItems(req.LineItems); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_line_items", err.Error())
		return
	}

	if h.checkout == nil {
		respondError(w, http.StatusInternalServerError, "checkout_unavailable", "checkout is not configured")
		return
	}

	session, unresolved, err := h.checkout.CreateSession(r.Context(), h.origin(r), req.LineItems)
	if err != nil {
		log.Printf("failed to create checkout session: %v", err)
		respondError(w, http.StatusInternalServerError, "checkout_failed", "failed to create checkout session")
		return
	}
	if len(unresolved) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, UnresolvedItemsResponseDTO{
			Error:           "some items could not be resolved to an active price",
			InvalidPriceIDs: unresolved,
		})
		return
	}

	respondJSON(w, http.StatusOK, CreateSessionResponseDTO{URL: session.URL})
}

func (h *CheckoutHandler) ConfirmSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session_id", "session_id query parameter is required")
		return
	}

	if h.checkout == nil {
		respondError(w, http.StatusInternalServerError, "checkout_unavailable", "checkout is not configured")
		return
	}

	result, err := h.checkout.Confirm(r.Context(), sessionID, r.Header.Get("X-Cart-ID"))
	if err != nil {
		log.Printf("failed to confirm session %s: %v", sessionID, err)
		respondError(w, http.StatusInternalServerError, "confirm_failed", "failed to confirm checkout session")
		return
	}

	respondJSON(w, http.StatusOK, ConfirmResponseDTO{
		Paid:        result.Paid,
		CartCleared: result.CartCleared,
	})
}
