package store

import (
	"errors"
	"sort"
	"sync"
)

// ErrQuotaExceeded is returned by a Substrate when a write would exceed its
// capacity.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Substrate is the persistent key-value store underneath the Adapter.
// Implementations report failures as errors; the Adapter decides which of
// them reach callers.
type Substrate interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Clear() error
}

// MemorySubstrate is an in-memory Substrate with an optional byte quota
// counted over key and value lengths.
type MemorySubstrate struct {
	mu    sync.Mutex
	data  map[string]string
	quota int64
}

// NewMemorySubstrate returns an empty in-memory substrate. A quota of zero
// disables the capacity check.
func NewMemorySubstrate(quota int64) *MemorySubstrate {
	return &MemorySubstrate{data: make(map[string]string), quota: quota}
}

// Get returns the value for key.
func (m *MemorySubstrate) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores value under key, failing with ErrQuotaExceeded when the
// resulting size would be over quota.
func (m *MemorySubstrate) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quota > 0 {
		size := m.sizeLocked()
		if old, ok := m.data[key]; ok {
			size -= int64(len(key) + len(old))
		}
		if size+int64(len(key)+len(value)) > m.quota {
			return ErrQuotaExceeded
		}
	}
	m.data[key] = value
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (m *MemorySubstrate) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Clear deletes every key.
func (m *MemorySubstrate) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemorySubstrate) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *MemorySubstrate) sizeLocked() int64 {
	var n int64
	for k, v := range m.data {
		n += int64(len(k) + len(v))
	}
	return n
}
