// Package store provides the persistent key-value layer. Values are
// JSON-serialized blobs under string keys; reads and writes are
// synchronous. Engines never subscribe to changes, they are handed
// fresh snapshots by their callers.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrNoKey is returned by Read when no value exists under the key.
var ErrNoKey = errors.New("store: key not found")

// KV is the persistence contract shared by all engines.
type KV interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// ReadJSON reads and unmarshals the value under key into out.
// A missing key is reported as ErrNoKey with out untouched.
func ReadJSON(kv KV, key string, out interface{}) error {
	data, err := kv.Read(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return nil
}

// WriteJSON marshals v and stores it under key.
func WriteJSON(kv KV, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return kv.Write(key, data)
}

// Memory is an in-process KV used by tests and ephemeral runs.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, ErrNoKey
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

func (m *Memory) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.values[key] = cp
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error { return nil }
