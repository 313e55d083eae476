// Package kv is the durable slot storage behind the storefront state. A slot
// is a string key holding one JSON value that is always replaced whole.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUndeclaredKey is returned when a transaction touches a key it did not declare.
	ErrUndeclaredKey = errors.New("key not declared for transaction")
	// ErrConflict is returned when an optimistic transaction keeps losing races.
	ErrConflict = errors.New("transaction conflict")
)

// Store is a string-keyed value store with all-or-nothing multi-key updates.
type Store interface {
	// Get returns the value and true, or nil and false when the slot is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Update runs fn against a consistent view of keys. Writes staged by fn are
	// committed together, or not at all when fn or the commit fails.
	Update(ctx context.Context, keys []string, fn func(tx Txn) error) error
	Close() error
}

// Txn is the view handed to an Update callback.
type Txn interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// stagedTxn buffers reads and writes for backends that commit in one step.
type stagedTxn struct {
	declared map[string]struct{}
	current  map[string][]byte
	writes   map[string][]byte
	deletes  map[string]struct{}
}

func newStagedTxn(keys []string, current map[string][]byte) *stagedTxn {
	declared := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		declared[k] = struct{}{}
	}
	return &stagedTxn{
		declared: declared,
		current:  current,
		writes:   make(map[string][]byte),
		deletes:  make(map[string]struct{}),
	}
}

func (t *stagedTxn) check(key string) error {
	if _, ok := t.declared[key]; !ok {
		return fmt.Errorf("%s: %w", key, ErrUndeclaredKey)
	}
	return nil
}

func (t *stagedTxn) Get(key string) ([]byte, bool, error) {
	if err := t.check(key); err != nil {
		return nil, false, err
	}
	if _, deleted := t.deletes[key]; deleted {
		return nil, false, nil
	}
	if v, ok := t.writes[key]; ok {
		return v, true, nil
	}
	v, ok := t.current[key]
	return v, ok, nil
}

func (t *stagedTxn) Set(key string, value []byte) error {
	if err := t.check(key); err != nil {
		return err
	}
	delete(t.deletes, key)
	t.writes[key] = append([]byte(nil), value...)
	return nil
}

func (t *stagedTxn) Delete(key string) error {
	if err := t.check(key); err != nil {
		return err
	}
	delete(t.writes, key)
	t.deletes[key] = struct{}{}
	return nil
}

// sortedKeys dedupes keys and orders them so lock acquisition is deterministic.
func sortedKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// GetJSON decodes the slot into T. The bool is false when the slot is absent.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var out T
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return out, ok, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("failed to decode slot %s: %w", key, err)
	}
	return out, true, nil
}

// SetJSON encodes v into the slot.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode slot %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// TxGetJSON is GetJSON inside an Update callback.
func TxGetJSON[T any](tx Txn, key string) (T, bool, error) {
	var out T
	raw, ok, err := tx.Get(key)
	if err != nil || !ok {
		return out, ok, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("failed to decode slot %s: %w", key, err)
	}
	return out, true, nil
}

// TxSetJSON is SetJSON inside an Update callback.
func TxSetJSON(tx Txn, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode slot %s: %w", key, err)
	}
	return tx.Set(key, raw)
}
