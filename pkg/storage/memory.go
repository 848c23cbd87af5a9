package storage

import (
	"context"
	"sync"
)

type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *Memory) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.values, k)
	}
	m.mu.Unlock()
	return nil
}

// MemoryProvider keeps one Memory store per scope for the lifetime of the
// process.
type MemoryProvider struct {
	mu     sync.Mutex
	scopes map[string]*Memory
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{scopes: make(map[string]*Memory)}
}

func (p *MemoryProvider) Open(scope string) Store {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.scopes[scope]
	if !ok {
		s = NewMemory()
		p.scopes[scope] = s
	}
	return s
}
