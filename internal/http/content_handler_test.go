package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phinehas2020/havis-candy/internal/content"
	"github.com/phinehas2020/havis-candy/internal/domain"
)

func newContentTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewRouter(RouterDeps{
		Content: NewContentHandler(content.NewService(nil)),
	}))
	t.Cleanup(server.Close)
	return server
}

func TestContentHandler_ProductsServeFallback(t *testing.T) {
	server := newContentTestServer(t)

	resp, err := http.Get(server.URL + "/api/products")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []domain.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	assert.Len(t, products, len(content.FallbackProducts))
	assert.Equal(t, content.FallbackProducts[0].Title, products[0].Title)
}

func TestContentHandler_SiteSettingsServeFallback(t *testing.T) {
	server := newContentTestServer(t)

	resp, err := http.Get(server.URL + "/api/site-settings")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var settings domain.SiteSettings
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&settings))
	assert.Equal(t, content.FallbackSiteSettings.BusinessName, settings.BusinessName)
}

func TestContentHandler_RequestIDHeaderIsSet(t *testing.T) {
	server := newContentTestServer(t)

	resp, err := http.Get(server.URL + "/api/locations")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
