package apierrors

import (
	"fmt"
	"net/http"
)

// Machine-readable error codes returned to clients
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInternalError       = "INTERNAL_ERROR"
	CodePlatformUnavailable = "PLATFORM_UNAVAILABLE"

	CodeSessionRequired   = "SESSION_REQUIRED"
	CodeInvalidSession    = "INVALID_SESSION"
	CodeInvalidCredential = "INVALID_CREDENTIALS"
	CodeAdminRequired     = "ADMIN_REQUIRED"

	CodeStoreNotFound       = "STORE_NOT_FOUND"
	CodeStoreExists         = "STORE_EXISTS"
	CodeStoreNameRequired   = "STORE_NAME_REQUIRED"
	CodeStoreNameImmutable  = "STORE_NAME_IMMUTABLE"
	CodeInvalidStoreUpdate  = "INVALID_STORE_UPDATE"
	CodeCodesExhausted      = "REFERRAL_CODES_EXHAUSTED"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodeInvalidProduct      = "INVALID_PRODUCT"
	CodeOrderNotFound       = "ORDER_NOT_FOUND"
	CodeDuplicateOrder      = "DUPLICATE_ORDER"
	CodeInvalidOrder        = "INVALID_ORDER"
	CodeInvalidStatus       = "INVALID_STATUS"
	CodeReferralNotFound    = "REFERRAL_CODE_NOT_FOUND"
	CodeIncompleteProfile   = "INCOMPLETE_PROFILE"
	CodeTargetNotReached    = "TARGET_NOT_REACHED"
	CodeVoucherClaimed      = "VOUCHER_ALREADY_CLAIMED"
	CodeCampaignNotFound    = "CAMPAIGN_NOT_FOUND"
	CodeCampaignNotActive   = "CAMPAIGN_NOT_ACTIVE"
	CodeCampaignStarted     = "CAMPAIGN_ALREADY_STARTED"
	CodeCampaignApproved    = "CAMPAIGN_ALREADY_APPROVED"
	CodeParticipationAbsent = "PARTICIPATION_NOT_FOUND"
	CodeProofRequired       = "PROOF_REQUIRED"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeInvalidCampaign     = "INVALID_CAMPAIGN"
	CodeUnsupportedLanguage = "UNSUPPORTED_LANGUAGE"
	CodeRateLimited         = "RATE_LIMIT_EXCEEDED"
)

// APIError is an error that already knows how it should look on the wire.
// Internal is logged but never sent to the client.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Internal   error
}

func (e *APIError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Internal
}

func newAPIError(status int, code, message string, internal error) *APIError {
	return &APIError{StatusCode: status, Code: code, Message: message, Internal: internal}
}

func BadRequest(code, message string) *APIError {
	return newAPIError(http.StatusBadRequest, code, message, nil)
}

func Unauthorized(message string) *APIError {
	return newAPIError(http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

func Forbidden(code, message string) *APIError {
	return newAPIError(http.StatusForbidden, code, message, nil)
}

func NotFound(code, message string) *APIError {
	return newAPIError(http.StatusNotFound, code, message, nil)
}

func Conflict(code, message string) *APIError {
	return newAPIError(http.StatusConflict, code, message, nil)
}

// Unprocessable is used for well-formed requests the current state cannot satisfy.
func Unprocessable(code, message string) *APIError {
	return newAPIError(http.StatusUnprocessableEntity, code, message, nil)
}

// BadGateway reports a failed call to the remote commerce platform. The
// message is shown to the user as-is.
func BadGateway(message string, internal error) *APIError {
	return newAPIError(http.StatusBadGateway, CodePlatformUnavailable, message, internal)
}

func TooManyRequests(message string) *APIError {
	return newAPIError(http.StatusTooManyRequests, CodeRateLimited, message, nil)
}

func ServiceUnavailable(code, message string, internal error) *APIError {
	return newAPIError(http.StatusServiceUnavailable, code, message, internal)
}

// InternalError hides err behind a generic message.
func InternalError(err error) *APIError {
	return newAPIError(http.StatusInternalServerError, CodeInternalError, "An internal error occurred. Please try again later.", err)
}
