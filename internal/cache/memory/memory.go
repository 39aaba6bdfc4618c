package memory

import (
	"context"
	"sync"

	"github.com/wallpaperd/wallpaperd/internal/cache"
)

// Provider implements a simple in-memory entry cache
type Provider struct {
	entries map[string]*cache.Entry
	mutex   sync.RWMutex
}

// New returns a new Provider instance
func New() *Provider {
	return &Provider{
		entries: make(map[string]*cache.Entry),
	}
}

// Get returns an entry from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) (*cache.Entry, error) {
	p.mutex.RLock()
	entry, exists := p.entries[key]
	p.mutex.RUnlock()

	if !exists {
		return nil, cache.ErrNotFound
	}

	return entry, nil
}

// Set adds an entry to the cache, replacing any previous entry for the key
func (p *Provider) Set(ctx context.Context, key string, entry *cache.Entry) error {
	p.mutex.Lock()
	p.entries[key] = entry
	p.mutex.Unlock()

	return nil
}

// Shutdown shuts down the cache
func (p *Provider) Shutdown() {}
