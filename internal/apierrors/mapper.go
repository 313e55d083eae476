package apierrors

import (
	"errors"
	"fmt"
	"net/http"

	authProcessor "storefront-server/internal/auth/processor"
	campaignProcessor "storefront-server/internal/campaign/processor"
	catalogProcessor "storefront-server/internal/catalog/processor"
	"storefront-server/internal/clients/platform"
	"storefront-server/internal/i18n"
	ledgerProcessor "storefront-server/internal/ledger/processor"
	"storefront-server/internal/store"
	storefrontProcessor "storefront-server/internal/storefront/processor"
	voucherProcessor "storefront-server/internal/vouchers/processor"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is a known domain error, it maps it to an appropriate APIError.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var target *voucherProcessor.TargetNotReachedError
	if errors.As(err, &target) {
		return Unprocessable(CodeTargetNotReached,
			fmt.Sprintf("You need %d more referred orders to claim this voucher", target.Remaining))
	}

	switch {
	// Map auth processor errors
	case errors.Is(err, authProcessor.ErrInvalidCredentials):
		return newAPIError(http.StatusUnauthorized, CodeInvalidCredential, "Invalid login or password", nil)

	case errors.Is(err, authProcessor.ErrNameRequired):
		return BadRequest(CodeInvalidInput, "Name is required")

	case errors.Is(err, authProcessor.ErrNameTooLong):
		return BadRequest(CodeInvalidInput, "Name is too long")

	case errors.Is(err, authProcessor.ErrInvalidMobile):
		return BadRequest(CodeInvalidInput, "Invalid mobile number")

	case errors.Is(err, i18n.ErrUnsupportedLanguage):
		return BadRequest(CodeUnsupportedLanguage, "Language is not supported")

	// Map catalog processor errors
	case errors.Is(err, catalogProcessor.ErrProductNotFound):
		return NotFound(CodeProductNotFound, "Product not found")

	case errors.Is(err, catalogProcessor.ErrProductIDRequired):
		return BadRequest(CodeInvalidInput, "Product ID is required")

	case errors.Is(err, catalogProcessor.ErrInvalidProduct):
		return BadRequest(CodeInvalidProduct, invalidMessage(err, "Invalid product"))

	// Map storefront processor errors
	case errors.Is(err, storefrontProcessor.ErrStoreNameRequired):
		return BadRequest(CodeStoreNameRequired, "Store name is required")

	case errors.Is(err, storefrontProcessor.ErrStoreNameTooLong):
		return BadRequest(CodeInvalidInput, "Store name is too long")

	case errors.Is(err, storefrontProcessor.ErrStoreAlreadyExists):
		return Conflict(CodeStoreExists, "You already have a store")

	case errors.Is(err, storefrontProcessor.ErrNoStore),
		errors.Is(err, ledgerProcessor.ErrNoStore):
		return NotFound(CodeStoreNotFound, "You have not created a store yet")

	case errors.Is(err, storefrontProcessor.ErrStoreNotFound):
		return NotFound(CodeStoreNotFound, "Store not found")

	case errors.Is(err, storefrontProcessor.ErrStoreNameImmutable):
		return BadRequest(CodeStoreNameImmutable, "Store name cannot be changed")

	case errors.Is(err, storefrontProcessor.ErrInvalidStoreUpdate):
		return BadRequest(CodeInvalidStoreUpdate, invalidMessage(err, "Invalid store update"))

	case errors.Is(err, storefrontProcessor.ErrUnauthorized):
		return Forbidden(CodeForbidden, "This store belongs to another session")

	case errors.Is(err, storefrontProcessor.ErrReferralCodeExhausted):
		return ServiceUnavailable(CodeCodesExhausted, "Could not allocate a referral code. Please try again.", err)

	case errors.Is(err, storefrontProcessor.ErrProductNotFound),
		errors.Is(err, ledgerProcessor.ErrProductNotFound):
		return NotFound(CodeProductNotFound, "Product not found")

	// Map ledger processor errors
	case errors.Is(err, ledgerProcessor.ErrInvalidOrder):
		return BadRequest(CodeInvalidOrder, invalidMessage(err, "Invalid order"))

	case errors.Is(err, ledgerProcessor.ErrInvalidStatus):
		return BadRequest(CodeInvalidStatus, "Invalid order status")

	case errors.Is(err, ledgerProcessor.ErrDuplicateOrder):
		return Conflict(CodeDuplicateOrder, "Order already recorded")

	case errors.Is(err, ledgerProcessor.ErrOrderNotFound):
		return NotFound(CodeOrderNotFound, "Order not found")

	case errors.Is(err, ledgerProcessor.ErrStoreNotFound):
		return NotFound(CodeReferralNotFound, "No store matches that referral code")

	// Map voucher processor errors
	case errors.Is(err, voucherProcessor.ErrIncompleteProfile):
		return Unprocessable(CodeIncompleteProfile, "Add your name and mobile number to claim this voucher")

	case errors.Is(err, voucherProcessor.ErrTargetNotReached):
		return Unprocessable(CodeTargetNotReached, "Referral target not reached")

	// Map campaign processor errors
	case errors.Is(err, campaignProcessor.ErrCampaignNotFound):
		return NotFound(CodeCampaignNotFound, "Campaign not found")

	case errors.Is(err, campaignProcessor.ErrCampaignTitleRequired):
		return BadRequest(CodeInvalidCampaign, "Campaign title is required")

	case errors.Is(err, campaignProcessor.ErrCampaignNotActive):
		return Conflict(CodeCampaignNotActive, "Campaign is not active")

	case errors.Is(err, campaignProcessor.ErrCampaignAlreadyStarted):
		return Conflict(CodeCampaignStarted, "Campaign already started")

	case errors.Is(err, campaignProcessor.ErrCampaignAlreadyApproved):
		return Conflict(CodeCampaignApproved, "Campaign submission already approved")

	case errors.Is(err, campaignProcessor.ErrParticipationNotFound):
		return NotFound(CodeParticipationAbsent, "Campaign has not been started")

	case errors.Is(err, campaignProcessor.ErrProofRequired):
		return BadRequest(CodeProofRequired, "Add a proof text or link")

	case errors.Is(err, campaignProcessor.ErrInvalidProofURL):
		return BadRequest(CodeProofRequired, "Proof link must start with http:// or https://")

	case errors.Is(err, campaignProcessor.ErrInvalidTransition):
		return Conflict(CodeInvalidTransition, "Campaign is not in a state that allows this")

	// Map store errors
	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")
	}

	var perr *platform.Error
	if errors.As(err, &perr) {
		if perr.StatusCode == http.StatusNotFound {
			return NotFound(CodeNotFound, perr.Message)
		}
		return BadGateway(perr.Message, err)
	}

	return InternalError(err)
}

// invalidMessage surfaces the validation detail wrapped around a sentinel.
func invalidMessage(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
