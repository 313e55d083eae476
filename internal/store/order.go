package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"storefront-server/internal/kv"
)

// RecordOrder appends the order to the flat admin ledger and, in the same
// transaction, to the store owning order.ReferralCode with its totals bumped.
// When no store has that code the ledger append is still committed and
// ErrNotFound is returned.
func (s *Store) RecordOrder(ctx context.Context, order Order) error {
	attributed := false

	err := s.kv.Update(ctx, []string{KeyAllStores, KeyAdminOrders}, func(tx kv.Txn) error {
		attributed = false

		ledger, _, err := kv.TxGetJSON[[]Order](tx, KeyAdminOrders)
		if err != nil {
			return err
		}
		for _, existing := range ledger {
			if existing.ID == order.ID {
				return ErrDuplicateOrder
			}
		}
		ledger = append(ledger, order)
		if err := kv.TxSetJSON(tx, KeyAdminOrders, ledger); err != nil {
			return err
		}

		stores, _, err := kv.TxGetJSON[map[string]Storefront](tx, KeyAllStores)
		if err != nil {
			return err
		}
		st, ok := stores[order.ReferralCode]
		if !ok {
			return nil
		}
		st.Orders = append(st.Orders, order)
		st.TotalOrders++
		st.TotalPoints += order.Points
		stores[order.ReferralCode] = st
		attributed = true
		return kv.TxSetJSON(tx, KeyAllStores, stores)
	})
	if err != nil {
		return fmt.Errorf("failed to record order: %w", err)
	}
	if !attributed {
		return ErrNotFound
	}
	return nil
}

// ListOrders returns the admin ledger, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]Order, error) {
	ledger, _, err := kv.GetJSON[[]Order](ctx, s.kv, KeyAdminOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	out := make([]Order, len(ledger))
	copy(out, ledger)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetOrder finds one ledger entry.
func (s *Store) GetOrder(ctx context.Context, orderID string) (Order, error) {
	ledger, _, err := kv.GetJSON[[]Order](ctx, s.kv, KeyAdminOrders)
	if err != nil {
		return Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	for _, o := range ledger {
		if o.ID == orderID {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

// UpdateOrderStatus changes the status on the ledger entry and on the
// attributed store's copy together.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, status string) (Order, error) {
	var updated Order

	err := s.kv.Update(ctx, []string{KeyAllStores, KeyAdminOrders}, func(tx kv.Txn) error {
		ledger, _, err := kv.TxGetJSON[[]Order](tx, KeyAdminOrders)
		if err != nil {
			return err
		}

		idx := -1
		for i := range ledger {
			if ledger[i].ID == orderID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}

		now := time.Now().UTC()
		ledger[idx].Status = status
		ledger[idx].UpdatedAt = &now
		updated = ledger[idx]
		if err := kv.TxSetJSON(tx, KeyAdminOrders, ledger); err != nil {
			return err
		}

		stores, _, err := kv.TxGetJSON[map[string]Storefront](tx, KeyAllStores)
		if err != nil {
			return err
		}
		st, ok := stores[updated.ReferralCode]
		if !ok {
			return nil
		}
		for i := range st.Orders {
			if st.Orders[i].ID == orderID {
				st.Orders[i].Status = status
				st.Orders[i].UpdatedAt = &now
				stores[updated.ReferralCode] = st
				return kv.TxSetJSON(tx, KeyAllStores, stores)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("failed to update order status: %w", err)
	}
	return updated, nil
}
