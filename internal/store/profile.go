package store

import (
	"context"
	"fmt"

	"storefront-server/internal/kv"
)

func profileKeys(sessionID string) []string {
	return []string{
		SessionKey(sessionID, SlotUserName),
		SessionKey(sessionID, SlotUserMobile),
		SessionKey(sessionID, SlotUserEmail),
		SessionKey(sessionID, SlotUserRole),
		SessionKey(sessionID, SlotIsAuth),
		SessionKey(sessionID, SlotReferralCode),
		SessionKey(sessionID, SlotLanguage),
	}
}

func readProfile(tx kv.Txn, sessionID string) (Profile, error) {
	var p Profile
	strSlots := []struct {
		slot string
		dst  *string
	}{
		{SlotUserName, &p.Name},
		{SlotUserMobile, &p.Mobile},
		{SlotUserEmail, &p.Email},
		{SlotUserRole, &p.Role},
		{SlotReferralCode, &p.ReferralCode},
		{SlotLanguage, &p.Language},
	}
	for _, s := range strSlots {
		v, _, err := kv.TxGetJSON[string](tx, SessionKey(sessionID, s.slot))
		if err != nil {
			return Profile{}, err
		}
		*s.dst = v
	}
	auth, _, err := kv.TxGetJSON[bool](tx, SessionKey(sessionID, SlotIsAuth))
	if err != nil {
		return Profile{}, err
	}
	p.Authenticated = auth
	return p, nil
}

func writeProfile(tx kv.Txn, sessionID string, p Profile) error {
	strSlots := []struct {
		slot  string
		value string
	}{
		{SlotUserName, p.Name},
		{SlotUserMobile, p.Mobile},
		{SlotUserEmail, p.Email},
		{SlotUserRole, p.Role},
		{SlotReferralCode, p.ReferralCode},
		{SlotLanguage, p.Language},
	}
	for _, s := range strSlots {
		key := SessionKey(sessionID, s.slot)
		if s.value == "" {
			if err := tx.Delete(key); err != nil {
				return err
			}
			continue
		}
		if err := kv.TxSetJSON(tx, key, s.value); err != nil {
			return err
		}
	}
	authKey := SessionKey(sessionID, SlotIsAuth)
	if !p.Authenticated {
		return tx.Delete(authKey)
	}
	return kv.TxSetJSON(tx, authKey, true)
}

// GetProfile reads the session's identity slots. A fresh session gets an
// empty profile rather than an error.
func (s *Store) GetProfile(ctx context.Context, sessionID string) (Profile, error) {
	var p Profile
	err := s.kv.Update(ctx, profileKeys(sessionID), func(tx kv.Txn) error {
		var err error
		p, err = readProfile(tx, sessionID)
		return err
	})
	if err != nil {
		return Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// UpdateProfile applies fn to the profile and writes every slot back.
// Empty fields clear their slot.
func (s *Store) UpdateProfile(ctx context.Context, sessionID string, fn func(p *Profile) error) (Profile, error) {
	var p Profile
	err := s.kv.Update(ctx, profileKeys(sessionID), func(tx kv.Txn) error {
		var err error
		p, err = readProfile(tx, sessionID)
		if err != nil {
			return err
		}
		if err := fn(&p); err != nil {
			return err
		}
		return writeProfile(tx, sessionID, p)
	})
	if err != nil {
		return Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return p, nil
}
