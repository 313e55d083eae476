package store

import (
	"context"
	"fmt"

	"storefront-server/internal/kv"
)

// Voucher kinds
const (
	VoucherWelcome  = "welcome"
	VoucherReferral = "referral"
)

func voucherSlot(voucher string) (string, error) {
	switch voucher {
	case VoucherWelcome:
		return SlotWelcomeVoucher, nil
	case VoucherReferral:
		return SlotReferralVoucher, nil
	default:
		return "", fmt.Errorf("unknown voucher %q", voucher)
	}
}

// GetVoucherClaims reads both claim flags for the session.
func (s *Store) GetVoucherClaims(ctx context.Context, sessionID string) (VoucherClaims, error) {
	welcome, _, err := kv.GetJSON[bool](ctx, s.kv, SessionKey(sessionID, SlotWelcomeVoucher))
	if err != nil {
		return VoucherClaims{}, fmt.Errorf("failed to get welcome voucher flag: %w", err)
	}
	referral, _, err := kv.GetJSON[bool](ctx, s.kv, SessionKey(sessionID, SlotReferralVoucher))
	if err != nil {
		return VoucherClaims{}, fmt.Errorf("failed to get referral voucher flag: %w", err)
	}
	return VoucherClaims{Welcome: welcome, Referral: referral}, nil
}

// MarkVoucherClaimed sets the one-way claim flag. alreadyClaimed is true when
// the flag was set before this call; the flag is never cleared.
func (s *Store) MarkVoucherClaimed(ctx context.Context, sessionID, voucher string) (alreadyClaimed bool, err error) {
	slot, err := voucherSlot(voucher)
	if err != nil {
		return false, err
	}
	key := SessionKey(sessionID, slot)

	err = s.kv.Update(ctx, []string{key}, func(tx kv.Txn) error {
		claimed, _, err := kv.TxGetJSON[bool](tx, key)
		if err != nil {
			return err
		}
		alreadyClaimed = claimed
		if claimed {
			return nil
		}
		return kv.TxSetJSON(tx, key, true)
	})
	if err != nil {
		return false, fmt.Errorf("failed to mark voucher claimed: %w", err)
	}
	return alreadyClaimed, nil
}
