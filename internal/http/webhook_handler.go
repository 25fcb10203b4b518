package http

import (
	"crypto/subtle"
	"io"
	"log"
	"net/http"

	"github.com/phinehas2020/havis-candy/internal/catalog"
)

// SecretHeader carries the shared webhook secret on content-store
// mutation notifications.
const SecretHeader = "content-webhook-secret"

// WebhookHandler receives content-store mutation notifications and
// reconciles them into the payment processor's catalog.
type WebhookHandler struct {
	syncer *catalog.Syncer
	secret string
}

func NewWebhookHandler(syncer *catalog.Syncer, secret string) *WebhookHandler {
	return &WebhookHandler{syncer: syncer, secret: secret}
}

func (h *WebhookHandler) HandleContentWebhook(w http.ResponseWriter, r *http.Request) {
	// An unset secret rejects everything rather than accepting everything.
	if h.secret == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "webhook secret is not configured")
		return
	}
	provided := r.Header.Get(SecretHeader)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "invalid webhook secret")
		return
	}

	if h.syncer == nil {
		respondError(w, http.StatusInternalServerError, "sync_unavailable", "catalog sync is not configured")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "failed to read request body")
		return
	}

	event, err := catalog.ParseEvent(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payload", "invalid webhook payload")
		return
	}

	result, err := h.syncer.Sync(r.Context(), event)
	if err != nil {
		// Internal detail stays in the log; the caller retries on 500.
		log.Printf("failed to sync document %s: %v", event.Doc.ID, err)
		respondError(w, http.StatusInternalServerError, "sync_failed", "webhook processing failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
