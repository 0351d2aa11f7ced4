package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps every namespace in process memory.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemoryBackend constructs an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]map[string]string)}
}

// Namespace returns the store for name.
func (b *MemoryBackend) Namespace(name string) Store {
	return &memoryStore{backend: b, namespace: name}
}

type memoryStore struct {
	backend   *MemoryBackend
	namespace string
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	if s.namespace == "" {
		return "", false, ErrEmptyNamespace
	}
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()

	value, ok := s.backend.data[s.namespace][key]
	return value, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	if s.namespace == "" {
		return ErrEmptyNamespace
	}
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	ns, ok := s.backend.data[s.namespace]
	if !ok {
		ns = make(map[string]string)
		s.backend.data[s.namespace] = ns
	}
	ns[key] = value
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	if s.namespace == "" {
		return ErrEmptyNamespace
	}
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	delete(s.backend.data[s.namespace], key)
	return nil
}
