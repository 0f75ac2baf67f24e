package kvstore

import (
	"context"
	"sync"
)

// MemoryProvider keeps every installation's keys in process memory.
// It backs local development and unit tests.
type MemoryProvider struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{data: make(map[string]map[string]string)}
}

// Store returns the keyspace for installationID.
func (p *MemoryProvider) Store(installationID string) Store {
	if installationID == "" {
		return errStore{err: ErrEmptyInstallation}
	}
	return &memoryStore{provider: p, installationID: installationID}
}

// Keys returns a snapshot of an installation's stored keys and values.
func (p *MemoryProvider) Keys(installationID string) map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]string, len(p.data[installationID]))
	for k, v := range p.data[installationID] {
		out[k] = v
	}
	return out
}

// Clear removes all installations (useful for test cleanup).
func (p *MemoryProvider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = make(map[string]map[string]string)
}

type memoryStore struct {
	provider       *MemoryProvider
	installationID string
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.provider.mu.RLock()
	defer s.provider.mu.RUnlock()
	v, ok := s.provider.data[s.installationID][key]
	return v, ok, nil
}

func (s *memoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()
	keys, ok := s.provider.data[s.installationID]
	if !ok {
		keys = make(map[string]string)
		s.provider.data[s.installationID] = keys
	}
	keys[key] = value
	return nil
}

func (s *memoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()
	delete(s.provider.data[s.installationID], key)
	return nil
}

// Compile-time interface checks
var (
	_ Provider = (*MemoryProvider)(nil)
	_ Store    = (*memoryStore)(nil)
)
