package drafts

import (
	"context"
	"maps"
	"sync"
)

type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string]string)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	return v, ok, nil
}

func (r *MemoryRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	r.data[key] = value
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) List(_ context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.data), nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	clear(r.data)
	r.mu.Unlock()
	return nil
}
