package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"storefront-server/internal/kv"
)

const maxCodeAttempts = 5

// CreateStorefrontParams represents parameters for creating a storefront
type CreateStorefrontParams struct {
	SessionID string
	Name      string
	// NewCode produces a candidate referral code; it is retried on collision.
	NewCode func() (string, error)
}

// CreateStorefront registers a new store in the all-stores collection and
// points the session at it. An existing code is never overwritten.
func (s *Store) CreateStorefront(ctx context.Context, params CreateStorefrontParams) (Storefront, error) {
	pointerKey := SessionKey(params.SessionID, SlotUserStore)
	var created Storefront

	err := s.kv.Update(ctx, []string{KeyAllStores, pointerKey}, func(tx kv.Txn) error {
		stores, _, err := kv.TxGetJSON[map[string]Storefront](tx, KeyAllStores)
		if err != nil {
			return err
		}
		if stores == nil {
			stores = make(map[string]Storefront)
		}

		if raw, ok, err := tx.Get(pointerKey); err != nil {
			return err
		} else if ok {
			if code, err := decodeStorePointer(raw); err == nil {
				if _, exists := stores[code]; exists {
					return ErrAlreadyExists
				}
			}
		}

		code := ""
		for attempt := 0; attempt < maxCodeAttempts; attempt++ {
			candidate, err := params.NewCode()
			if err != nil {
				return fmt.Errorf("failed to generate referral code: %w", err)
			}
			if _, taken := stores[candidate]; !taken {
				code = candidate
				break
			}
		}
		if code == "" {
			return ErrCodesExhausted
		}

		created = Storefront{
			Name:             params.Name,
			ReferralCode:     code,
			SelectedProducts: []string{},
			Orders:           []Order{},
			OwnerSessionID:   params.SessionID,
			CreatedAt:        time.Now().UTC(),
		}
		stores[code] = created

		if err := kv.TxSetJSON(tx, KeyAllStores, stores); err != nil {
			return err
		}
		return kv.TxSetJSON(tx, pointerKey, code)
	})
	if err != nil {
		return Storefront{}, fmt.Errorf("failed to create storefront: %w", err)
	}
	return created, nil
}

// GetStorefrontByCode looks a store up in the all-stores collection.
func (s *Store) GetStorefrontByCode(ctx context.Context, code string) (Storefront, error) {
	stores, _, err := kv.GetJSON[map[string]Storefront](ctx, s.kv, KeyAllStores)
	if err != nil {
		return Storefront{}, fmt.Errorf("failed to get storefront by code: %w", err)
	}
	store, ok := stores[code]
	if !ok {
		return Storefront{}, ErrNotFound
	}
	return store, nil
}

// GetCurrentStorefront resolves the session's store through its pointer slot.
// The collection entry is returned, so the view never diverges from it.
func (s *Store) GetCurrentStorefront(ctx context.Context, sessionID string) (Storefront, error) {
	raw, ok, err := s.kv.Get(ctx, SessionKey(sessionID, SlotUserStore))
	if err != nil {
		return Storefront{}, fmt.Errorf("failed to get current storefront: %w", err)
	}
	if !ok {
		return Storefront{}, ErrNotFound
	}
	code, err := decodeStorePointer(raw)
	if err != nil {
		s.logger.Error(ctx, "unreadable store pointer", err)
		return Storefront{}, ErrNotFound
	}
	return s.GetStorefrontByCode(ctx, code)
}

// ListStorefronts returns every store, oldest first.
func (s *Store) ListStorefronts(ctx context.Context) ([]Storefront, error) {
	stores, _, err := kv.GetJSON[map[string]Storefront](ctx, s.kv, KeyAllStores)
	if err != nil {
		return nil, fmt.Errorf("failed to list storefronts: %w", err)
	}
	out := make([]Storefront, 0, len(stores))
	for _, st := range stores {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ReferralCode < out[j].ReferralCode
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStorefront applies fn to the stored record and writes it back. The
// result must still satisfy the order totals, or nothing is written.
func (s *Store) UpdateStorefront(ctx context.Context, code string, fn func(st *Storefront) error) (Storefront, error) {
	var updated Storefront
	err := s.kv.Update(ctx, []string{KeyAllStores}, func(tx kv.Txn) error {
		stores, _, err := kv.TxGetJSON[map[string]Storefront](tx, KeyAllStores)
		if err != nil {
			return err
		}
		current, ok := stores[code]
		if !ok {
			return ErrNotFound
		}
		if err := fn(&current); err != nil {
			return err
		}
		if current.ReferralCode != code {
			return fmt.Errorf("referral code cannot change: %w", ErrInvalidStoreData)
		}
		if err := current.CheckTotals(); err != nil {
			return err
		}
		stores[code] = current
		updated = current
		return kv.TxSetJSON(tx, KeyAllStores, stores)
	})
	if err != nil {
		return Storefront{}, fmt.Errorf("failed to update storefront: %w", err)
	}
	return updated, nil
}

// decodeStorePointer reads the session's userStore slot. It normally holds the
// referral code as a JSON string; older values held the whole store record.
func decodeStorePointer(raw []byte) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var legacy struct {
			ReferralCode string `json:"referralCode"`
		}
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return "", err
		}
		if legacy.ReferralCode == "" {
			return "", fmt.Errorf("store record without referral code: %w", ErrNotFound)
		}
		return legacy.ReferralCode, nil
	}
	var code string
	if err := json.Unmarshal(raw, &code); err != nil {
		return "", err
	}
	return code, nil
}
