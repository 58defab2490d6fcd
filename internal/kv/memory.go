package kv

import (
	"errors"
	"sync"
)

// ErrQuotaExceeded is returned by a Memory store told to fail writes.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Memory is an in-process Store.
type Memory struct {
	mu         sync.Mutex
	values     map[string]string
	failWrites bool
	closed     bool
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// FailWrites makes subsequent Set and Delete calls return ErrQuotaExceeded
// while fail is true.
func (m *Memory) FailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = fail
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.failWrites {
		return ErrQuotaExceeded
	}
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.failWrites {
		return ErrQuotaExceeded
	}
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
