package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-server/internal/events"
	"storefront-server/internal/kv"
	"storefront-server/internal/observability"
	"storefront-server/internal/store"
	"storefront-server/internal/vouchers/processor"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSession = "7b1e0b2c-1111-4c2e-9d0a-0c1f5e8b3a22"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestHandler(t *testing.T, target int) (*Handler, *store.Store) {
	t.Helper()
	logger := observability.NewLogger()
	st := store.New(kv.NewMemory(), logger)
	h := New(processor.New(&st, events.NewPublisher(nil, logger), logger, target), logger)
	return &h, &st
}

func post(h func(*gin.Context), target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, target, nil)
	c.Set("Session-ID", testSession)
	h(c)
	return w
}

func TestHandler_HandleClaimWelcome(t *testing.T) {
	t.Parallel()
	h, st := setupTestHandler(t, 10)

	w := post(h.HandleClaimWelcome, "/api/offers/welcome/claim")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INCOMPLETE_PROFILE")

	claims, err := st.GetVoucherClaims(context.Background(), testSession)
	require.NoError(t, err)
	assert.False(t, claims.Welcome)

	_, err = st.UpdateProfile(context.Background(), testSession, func(p *store.Profile) error {
		p.Name = "Ann"
		p.Mobile = "0771234567"
		return nil
	})
	require.NoError(t, err)

	w = post(h.HandleClaimWelcome, "/api/offers/welcome/claim")
	require.Equal(t, http.StatusOK, w.Code)

	w = post(h.HandleClaimWelcome, "/api/offers/welcome/claim")
	require.Equal(t, http.StatusOK, w.Code)
	var result processor.ClaimResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.AlreadyClaimed)

	claims, err = st.GetVoucherClaims(context.Background(), testSession)
	require.NoError(t, err)
	assert.True(t, claims.Welcome)
	assert.False(t, claims.Referral)
}

func TestHandler_HandleClaimReferral(t *testing.T) {
	t.Parallel()
	h, st := setupTestHandler(t, 2)
	ctx := context.Background()

	_, err := st.CreateStorefront(ctx, store.CreateStorefrontParams{
		SessionID: testSession,
		Name:      "Acme",
		NewCode:   func() (string, error) { return "REF-ABC123", nil },
	})
	require.NoError(t, err)
	require.NoError(t, st.RecordOrder(ctx, store.Order{ID: "o1", ReferralCode: "REF-ABC123", Points: 1}))

	w := post(h.HandleClaimReferral, "/api/offers/referral/claim")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "TARGET_NOT_REACHED")
	assert.Contains(t, w.Body.String(), "1 more")

	require.NoError(t, st.RecordOrder(ctx, store.Order{ID: "o2", ReferralCode: "REF-ABC123", Points: 1}))

	w = post(h.HandleClaimReferral, "/api/offers/referral/claim")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_HandleGetOffers(t *testing.T) {
	t.Parallel()
	h, _ := setupTestHandler(t, 10)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/offers", nil)
	c.Set("Session-ID", testSession)
	h.HandleGetOffers(c)

	require.Equal(t, http.StatusOK, w.Code)
	var offers processor.OffersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &offers))
	assert.Equal(t, 10, offers.ReferralRemaining)
	assert.False(t, offers.Welcome.Eligible)
	assert.Equal(t, store.VoucherReferral, offers.Referral.Voucher)
}
