// Package mock provides a mock provider adapter for testing
package mock

import (
	"context"
	"net/url"
	"sync/atomic"

	"github.com/wallpaperd/wallpaperd/internal/params"
	"github.com/wallpaperd/wallpaperd/internal/provider"
)

// Adapter is a mock provider adapter
type Adapter struct {
	ProviderName string
	Keys         []string
	FetchFunc    func(ctx context.Context, opts params.Options) (*provider.Image, error)

	fetchCount int64
}

// Name returns the provider identifier
func (a *Adapter) Name() string {
	return a.ProviderName
}

// ParseOptions extracts the configured keys from the query
func (a *Adapter) ParseOptions(query url.Values) params.Options {
	opts := params.Options{}
	for _, key := range a.Keys {
		if query.Has(key) {
			opts[key] = query.Get(key)
		}
	}

	return opts
}

// Fetch invokes FetchFunc and counts the invocation
func (a *Adapter) Fetch(ctx context.Context, opts params.Options) (*provider.Image, error) {
	atomic.AddInt64(&a.fetchCount, 1)
	return a.FetchFunc(ctx, opts)
}

// FetchCount returns how many times Fetch has been called
func (a *Adapter) FetchCount() int64 {
	return atomic.LoadInt64(&a.fetchCount)
}
