package kv

import (
	"context"
	"sync"
)

// Memory keeps slots in process memory. Updates hold the store lock for the
// whole callback, so they are serialized against every other write.
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) Update(ctx context.Context, keys []string, fn func(tx Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := m.items[k]; ok {
			current[k] = v
		}
	}

	tx := newStagedTxn(keys, current)
	if err := fn(tx); err != nil {
		return err
	}

	for k, v := range tx.writes {
		m.items[k] = v
	}
	for k := range tx.deletes {
		delete(m.items, k)
	}
	return nil
}

// Keys lists every slot name, for diagnostics and tests.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.items))
	for k := range m.items {
		out = append(out, k)
	}
	return sortedKeys(out)
}

func (m *Memory) Close() error { return nil }
