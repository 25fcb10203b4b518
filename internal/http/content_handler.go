package http

import (
	"net/http"

	"github.com/phinehas2020/havis-candy/internal/content"
)

// ContentHandler serves the storefront read path. It never fails: the
// content service falls back to the static catalog on any fetch error.
type ContentHandler struct {
	content *content.Service
}

func NewContentHandler(contentService *content.Service) *ContentHandler {
	return &ContentHandler{content: contentService}
}

func (h *ContentHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.content.Products(r.Context()))
}

func (h *ContentHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.content.Locations(r.Context()))
}

func (h *ContentHandler) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.content.Testimonials(r.Context()))
}

func (h *ContentHandler) GetSiteSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.content.SiteSettings(r.Context()))
}

func (h *ContentHandler) GetAboutUs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.content.AboutUs(r.Context()))
}
