// Package mock provides a mock cache backend for testing
package mock

import (
	"context"
	"sync"

	"github.com/wallpaperd/wallpaperd/internal/cache"
)

// Provider is a mock cache backend with injectable errors
type Provider struct {
	GetErr error
	SetErr error

	entries map[string]*cache.Entry
	mutex   sync.Mutex
}

// Get returns an entry from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) (*cache.Entry, error) {
	if p.GetErr != nil {
		return nil, p.GetErr
	}

	p.mutex.Lock()
	entry, exists := p.entries[key]
	p.mutex.Unlock()

	if !exists {
		return nil, cache.ErrNotFound
	}

	return entry, nil
}

// Set adds an entry to the cache
func (p *Provider) Set(ctx context.Context, key string, entry *cache.Entry) error {
	if p.SetErr != nil {
		return p.SetErr
	}

	p.mutex.Lock()
	if p.entries == nil {
		p.entries = make(map[string]*cache.Entry)
	}
	p.entries[key] = entry
	p.mutex.Unlock()

	return nil
}

// Shutdown shuts down the cache
func (p *Provider) Shutdown() {}
