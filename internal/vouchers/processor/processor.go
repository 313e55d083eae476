package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-server/internal/observability"
	"storefront-server/internal/store"
)

// VoucherStore defines the session reads and the claim flag writes required by VoucherProcessor
type VoucherStore interface {
	GetProfile(ctx context.Context, sessionID string) (store.Profile, error)
	GetCurrentStorefront(ctx context.Context, sessionID string) (store.Storefront, error)
	GetVoucherClaims(ctx context.Context, sessionID string) (store.VoucherClaims, error)
	MarkVoucherClaimed(ctx context.Context, sessionID, voucher string) (bool, error)
}

// EventPublisher announces first-time claims
type EventPublisher interface {
	VoucherClaimed(ctx context.Context, sessionID, voucher string)
}

var (
	ErrIncompleteProfile = errors.New("profile name and mobile number are required")
	ErrTargetNotReached  = errors.New("referral target not reached")
)

// DefaultReferralTarget is the number of referred orders the milestone voucher needs.
const DefaultReferralTarget = 10

// TargetNotReachedError carries how many more referred orders are needed.
type TargetNotReachedError struct {
	Remaining int
	Target    int
}

func (e *TargetNotReachedError) Error() string {
	return fmt.Sprintf("referral target not reached: %d of %d referrals still needed", e.Remaining, e.Target)
}

func (e *TargetNotReachedError) Is(target error) bool {
	return target == ErrTargetNotReached
}

// ClaimResult reports a successful claim. AlreadyClaimed is set when the
// flag was already true; the call is still a success.
type ClaimResult struct {
	Voucher        string `json:"voucher"`
	Claimed        bool   `json:"claimed"`
	AlreadyClaimed bool   `json:"already_claimed"`
}

type VoucherProcessor struct {
	store          VoucherStore
	events         EventPublisher
	logger         *observability.Logger
	referralTarget int
}

func New(store VoucherStore, events EventPublisher, logger *observability.Logger, referralTarget int) VoucherProcessor {
	if referralTarget <= 0 {
		referralTarget = DefaultReferralTarget
	}
	return VoucherProcessor{
		store:          store,
		events:         events,
		logger:         logger,
		referralTarget: referralTarget,
	}
}

// ClaimWelcomeVoucher sets the welcome flag once the profile has a name and
// a mobile number.
func (p *VoucherProcessor) ClaimWelcomeVoucher(ctx context.Context, sessionID string) (ClaimResult, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "voucher", Value: store.VoucherWelcome})

	profile, err := p.store.GetProfile(ctx, sessionID)
	if err != nil {
		p.logger.Error(ctx, "failed to get profile", err)
		return ClaimResult{}, err
	}
	if !welcomeEligible(profile) {
		return ClaimResult{}, ErrIncompleteProfile
	}

	return p.claim(ctx, sessionID, store.VoucherWelcome)
}

// ClaimReferralVoucher sets the milestone flag once the session's store has
// reached the referral target.
func (p *VoucherProcessor) ClaimReferralVoucher(ctx context.Context, sessionID string) (ClaimResult, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "voucher", Value: store.VoucherReferral})

	count, err := p.referralCount(ctx, sessionID)
	if err != nil {
		return ClaimResult{}, err
	}
	if count < p.referralTarget {
		return ClaimResult{}, &TargetNotReachedError{
			Remaining: p.referralTarget - count,
			Target:    p.referralTarget,
		}
	}

	return p.claim(ctx, sessionID, store.VoucherReferral)
}

func (p *VoucherProcessor) claim(ctx context.Context, sessionID, voucher string) (ClaimResult, error) {
	alreadyClaimed, err := p.store.MarkVoucherClaimed(ctx, sessionID, voucher)
	if err != nil {
		p.logger.Error(ctx, "failed to mark voucher claimed", err)
		return ClaimResult{}, err
	}

	if !alreadyClaimed {
		p.logger.Info(ctx, "voucher claimed")
		p.events.VoucherClaimed(ctx, sessionID, voucher)
	}
	return ClaimResult{Voucher: voucher, Claimed: true, AlreadyClaimed: alreadyClaimed}, nil
}

// referralCount is the number of orders credited to the session's store.
func (p *VoucherProcessor) referralCount(ctx context.Context, sessionID string) (int, error) {
	st, err := p.store.GetCurrentStorefront(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		p.logger.Error(ctx, "failed to get current store", err)
		return 0, err
	}
	return st.TotalOrders, nil
}

func welcomeEligible(profile store.Profile) bool {
	return strings.TrimSpace(profile.Name) != "" && strings.TrimSpace(profile.Mobile) != ""
}

// Offer describes one voucher as the offers screen shows it
type Offer struct {
	Voucher  string `json:"voucher"`
	Claimed  bool   `json:"claimed"`
	Eligible bool   `json:"eligible"`
}

// OffersResponse lists both vouchers plus referral progress
type OffersResponse struct {
	Welcome           Offer `json:"welcome"`
	Referral          Offer `json:"referral"`
	ReferralCount     int   `json:"referral_count"`
	ReferralTarget    int   `json:"referral_target"`
	ReferralRemaining int   `json:"referral_remaining"`
}

// GetOffers reports claim and eligibility state without changing anything.
func (p *VoucherProcessor) GetOffers(ctx context.Context, sessionID string) (OffersResponse, error) {
	claims, err := p.store.GetVoucherClaims(ctx, sessionID)
	if err != nil {
		p.logger.Error(ctx, "failed to get voucher claims", err)
		return OffersResponse{}, err
	}
	profile, err := p.store.GetProfile(ctx, sessionID)
	if err != nil {
		p.logger.Error(ctx, "failed to get profile", err)
		return OffersResponse{}, err
	}
	count, err := p.referralCount(ctx, sessionID)
	if err != nil {
		return OffersResponse{}, err
	}

	remaining := p.referralTarget - count
	if remaining < 0 {
		remaining = 0
	}

	return OffersResponse{
		Welcome: Offer{
			Voucher:  store.VoucherWelcome,
			Claimed:  claims.Welcome,
			Eligible: welcomeEligible(profile),
		},
		Referral: Offer{
			Voucher:  store.VoucherReferral,
			Claimed:  claims.Referral,
			Eligible: remaining == 0,
		},
		ReferralCount:     count,
		ReferralTarget:    p.referralTarget,
		ReferralRemaining: remaining,
	}, nil
}
