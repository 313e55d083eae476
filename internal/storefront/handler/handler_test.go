package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	catalogProcessor "storefront-server/internal/catalog/processor"
	"storefront-server/internal/clients/platform"
	"storefront-server/internal/events"
	"storefront-server/internal/kv"
	"storefront-server/internal/observability"
	"storefront-server/internal/store"
	"storefront-server/internal/storefront/processor"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSession = "0b8f8d7e-4c84-4f3e-8d53-3c1b9a0e2f11"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestHandler(t *testing.T) *Handler {
	t.Helper()
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user-store/products/PROD-1":
			_, _ = w.Write([]byte(`{"basic":{"product_id":"PROD-1","name":"Phone"},"details":{"price":10,"points":2}}`))
		case "/admin/products":
			_, _ = w.Write([]byte(`[{"basic":{"product_id":"PROD-1","name":"Phone"},"details":{"price":10,"points":2}}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Product not found"}`))
		}
	}))
	t.Cleanup(remote.Close)

	logger := observability.NewLogger()
	st := store.New(kv.NewMemory(), logger)
	catalog := catalogProcessor.New(platform.NewClient(remote.URL, 2*time.Second, logger), logger)
	p := processor.New(&st, &catalog, events.NewPublisher(nil, logger), logger, "https://shop.example.com")
	h := New(p, logger)
	return &h
}

func newContext(method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("Session-ID", testSession)
	return c, w
}

func createStore(t *testing.T, h *Handler, name string) store.Storefront {
	t.Helper()
	c, w := newContext(http.MethodPost, "/api/store", CreateStoreRequest{Name: name})
	h.HandleCreateStore(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var st store.Storefront
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	return st
}

func TestHandler_StoreLifecycle(t *testing.T) {
	t.Parallel()
	h := setupTestHandler(t)

	created := createStore(t, h, "Acme")
	assert.Regexp(t, `^REF-[A-Z0-9]{6}$`, created.ReferralCode)

	c, w := newContext(http.MethodGet, "/api/store", nil)
	h.HandleGetStore(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodPost, "/api/store/products/PROD-1", nil)
	c.Params = gin.Params{{Key: "product_id", Value: "PROD-1"}}
	h.HandleSelectProduct(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodGet, "/api/storefronts/"+created.ReferralCode, nil)
	c.Params = gin.Params{{Key: "code", Value: created.ReferralCode}}
	h.HandleGetPublicStorefront(c)
	require.Equal(t, http.StatusOK, w.Code)

	var public processor.PublicStorefront
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &public))
	require.Len(t, public.Products, 1)
	assert.Equal(t, "PROD-1", public.Products[0].ID)
	assert.NotContains(t, w.Body.String(), "billing")
}

func TestHandler_HandleCreateStore_Twice(t *testing.T) {
	t.Parallel()
	h := setupTestHandler(t)
	createStore(t, h, "Acme")

	c, w := newContext(http.MethodPost, "/api/store", CreateStoreRequest{Name: "Again"})
	h.HandleCreateStore(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_HandleGetStore_NoStore(t *testing.T) {
	t.Parallel()
	h := setupTestHandler(t)

	c, w := newContext(http.MethodGet, "/api/store", nil)
	h.HandleGetStore(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_HandleSelectProduct_UnknownProduct(t *testing.T) {
	t.Parallel()
	h := setupTestHandler(t)
	createStore(t, h, "Acme")

	c, w := newContext(http.MethodPost, "/api/store/products/PROD-404", nil)
	c.Params = gin.Params{{Key: "product_id", Value: "PROD-404"}}
	h.HandleSelectProduct(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_HandleUpdateStore_RejectsRename(t *testing.T) {
	t.Parallel()
	h := setupTestHandler(t)
	created := createStore(t, h, "Acme")

	created.Name = "Renamed"
	c, w := newContext(http.MethodPut, "/api/store", created)
	h.HandleUpdateStore(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_HandleGetReferralLink(t *testing.T) {
	t.Parallel()
	h := setupTestHandler(t)
	created := createStore(t, h, "Acme")

	c, w := newContext(http.MethodGet, "/api/store/link", nil)
	h.HandleGetReferralLink(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp processor.ReferralLinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://shop.example.com/store/"+created.ReferralCode, resp.StoreLink)
}

func TestHandler_MissingSession(t *testing.T) {
	t.Parallel()
	h := setupTestHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/store/points", nil)

	h.HandleGetPointsSummary(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
