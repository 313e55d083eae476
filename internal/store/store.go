package store

import (
	"context"
	"errors"

	"storefront-server/internal/kv"
	"storefront-server/internal/observability"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrDuplicateOrder   = errors.New("order id already recorded")
	ErrCodesExhausted   = errors.New("could not allocate a unique referral code")
	ErrInvalidStoreData = errors.New("store totals do not match its order history")
)

// Global slots shared by every session.
const (
	KeyAllStores      = "allUserStores"
	KeyAdminOrders    = "adminOrders"
	KeyAdminCampaigns = "adminCampaigns"
)

// Per-session slots, see SessionKey.
const (
	SlotUserStore       = "userStore"
	SlotUserName        = "userName"
	SlotUserMobile      = "userMobile"
	SlotUserEmail       = "userEmail"
	SlotUserRole        = "userRole"
	SlotIsAuth          = "is_auth"
	SlotReferralCode    = "referral_code"
	SlotLanguage        = "language"
	SlotWelcomeVoucher  = "voucher_welcome_claimed"
	SlotReferralVoucher = "voucher_referral_claimed"
	SlotUserCampaigns   = "userCampaigns"
)

// SessionKey namespaces a slot under one browser session.
func SessionKey(sessionID, slot string) string {
	return "session:" + sessionID + ":" + slot
}

// Store is the typed repository over the slot store. Every read-modify-write
// goes through kv.Store.Update so concurrent sessions cannot drop each other's writes.
type Store struct {
	kv     kv.Store
	logger *observability.Logger
}

func New(kvStore kv.Store, logger *observability.Logger) Store {
	return Store{kv: kvStore, logger: logger}
}

// Close releases the underlying slot store.
func (s *Store) Close() error {
	return s.kv.Close()
}

// Ping checks the slot store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	_, _, err := s.kv.Get(ctx, KeyAllStores)
	return err
}
