package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	authProcessor "storefront-server/internal/auth/processor"
	campaignProcessor "storefront-server/internal/campaign/processor"
	"storefront-server/internal/clients/platform"
	ledgerProcessor "storefront-server/internal/ledger/processor"
	"storefront-server/internal/store"
	storefrontProcessor "storefront-server/internal/storefront/processor"
	voucherProcessor "storefront-server/internal/vouchers/processor"

	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "api error passes through", err: Forbidden(CodeAdminRequired, "no"), wantStatus: http.StatusForbidden, wantCode: CodeAdminRequired},
		{name: "wrapped sentinel", err: fmt.Errorf("create: %w", storefrontProcessor.ErrStoreAlreadyExists), wantStatus: http.StatusConflict, wantCode: CodeStoreExists},
		{name: "unknown referral code", err: ledgerProcessor.ErrStoreNotFound, wantStatus: http.StatusNotFound, wantCode: CodeReferralNotFound},
		{name: "exhausted codes", err: storefrontProcessor.ErrReferralCodeExhausted, wantStatus: http.StatusServiceUnavailable, wantCode: CodeCodesExhausted},
		{name: "incomplete profile", err: voucherProcessor.ErrIncompleteProfile, wantStatus: http.StatusUnprocessableEntity, wantCode: CodeIncompleteProfile},
		{name: "bad credentials", err: authProcessor.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: CodeInvalidCredential},
		{name: "campaign transition", err: campaignProcessor.ErrInvalidTransition, wantStatus: http.StatusConflict, wantCode: CodeInvalidTransition},
		{name: "store not found", err: store.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: CodeNotFound},
		{name: "platform failure", err: &platform.Error{StatusCode: 503, Message: "down"}, wantStatus: http.StatusBadGateway, wantCode: CodePlatformUnavailable},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := MapError(tt.err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestMapError_TargetNotReachedCarriesRemaining(t *testing.T) {
	apiErr := MapError(&voucherProcessor.TargetNotReachedError{Remaining: 3, Target: 10})

	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "3 more")
}

func TestMapError_PlatformMessageShown(t *testing.T) {
	apiErr := MapError(fmt.Errorf("checkout: %w", &platform.Error{StatusCode: 400, Message: "Product out of stock"}))

	assert.Equal(t, "Product out of stock", apiErr.Message)
	assert.Nil(t, MapError(nil))
}

func TestMapError_InternalHidesDetail(t *testing.T) {
	apiErr := MapError(errors.New("pq: connection refused"))

	assert.NotContains(t, apiErr.Message, "pq")
	assert.True(t, errors.Is(apiErr, apiErr.Internal))
}
