package argmine

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memo is an insert-only string memoization table. Values are never evicted;
// a value stored for a key is treated as final.
//
// Resolve runs the compute function at most once at a time per key, so
// concurrent lookups of the same missing key share a single external call.
type Memo struct {
	mu     sync.RWMutex
	values map[string]string
	group  singleflight.Group
}

// NewMemo creates an empty Memo.
func NewMemo() *Memo {
	return &Memo{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memo) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok
}

// Resolve returns the value stored under key, computing it with fn on a miss.
// The result of fn is stored only when fn reports keep.
func (m *Memo) Resolve(key string, fn func() (value string, keep bool)) string {
	if v, ok := m.Get(key); ok {
		return v
	}

	v, _, _ := m.group.Do(key, func() (interface{}, error) {
		// Another caller may have stored the value while we waited.
		if v, ok := m.Get(key); ok {
			return v, nil
		}
		value, keep := fn()
		if keep {
			m.mu.Lock()
			m.values[key] = value
			m.mu.Unlock()
		}
		return value, nil
	})
	return v.(string)
}

// Len returns the number of stored keys.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.values)
}

// Reset drops every stored value.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[string]string)
}

// Snapshot returns a copy of the stored values.
func (m *Memo) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
