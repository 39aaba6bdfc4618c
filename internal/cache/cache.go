package cache

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/url"
	"time"

	"github.com/wallpaperd/wallpaperd/internal/logger"
	"github.com/wallpaperd/wallpaperd/internal/params"
	"github.com/wallpaperd/wallpaperd/internal/provider"
	"github.com/wallpaperd/wallpaperd/internal/tracing"

	"github.com/twmb/murmur3"
	"golang.org/x/sync/singleflight"
)

// Provider is an interface for getting and setting cached entries
type Provider interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry) error
	Shutdown()
}

// Errors
var (
	ErrNotFound = errors.New("not found in cache")
)

var (
	counterCacheHit         = expvar.NewInt("counter_cache_hit")
	counterCacheMiss        = expvar.NewInt("counter_cache_miss")
	counterCacheBypass      = expvar.NewInt("counter_cache_bypass")
	counterCacheStaleServed = expvar.NewInt("counter_cache_stale_served")
	counterUpstreamError    = expvar.NewInt("counter_upstream_fetch_error")
)

// Store serves images from the cache, fetching them from the provider on
// miss or expiry. Fetches are coordinated with singleflight so that no two
// concurrent upstream fetches for the same key are ever in flight, all
// waiters for a key share the result of the one fetch.
//
// A stale entry blocks the caller until the refresh completes. If the
// refresh fails and a previous entry exists, the previous entry is served,
// the error is only propagated when there is nothing to serve.
//
// Enabled and MaxAge are fixed at construction and must not be mutated.
type Store struct {
	Enabled  bool
	MaxAge   time.Duration
	Registry *provider.Registry
	Backend  Provider
	Tracer   *tracing.Tracer
	Log      *logger.Logger

	// Now is the clock used for freshness checks, defaults to time.Now
	Now func() time.Time

	group singleflight.Group
}

// Get returns the image for a provider and raw query parameters
func (s *Store) Get(ctx context.Context, providerName string, query url.Values) (*provider.Image, error) {
	adapter, err := s.Registry.Get(providerName)
	if err != nil {
		return nil, err
	}

	opts := adapter.ParseOptions(query)

	if !s.Enabled {
		counterCacheBypass.Add(1)
		return adapter.Fetch(ctx, opts)
	}

	ctx, span := s.Tracer.Start(ctx, "cache.Get")
	defer span.End()

	key := Key(providerName, opts)

	entry, err := s.Backend.Get(ctx, key)
	if err != nil && err != ErrNotFound {
		return nil, err
	}

	if entry != nil && s.fresh(entry) {
		counterCacheHit.Add(1)
		return entry.Image(), nil
	}

	counterCacheMiss.Add(1)

	// Absent or stale, populate via singleflight
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.populate(key, adapter, opts)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			if entry != nil {
				// Serve the last known good entry, the stale entry stays
				// in place so the next request triggers another refresh
				counterCacheStaleServed.Add(1)
				s.Log.Warnw("serving stale entry after refresh failure",
					"provider", providerName,
					"key", key,
					"error", res.Err,
				)
				return entry.Image(), nil
			}

			return nil, res.Err
		}

		return res.Val.(*Entry).Image(), nil
	case <-ctx.Done():
		// Only this caller's wait is abandoned, the in-flight fetch keeps
		// running for the other waiters
		return nil, ctx.Err()
	}
}

// populate fetches from the provider and stores the result.
// It runs detached from the requesting caller, a dropped connection must not
// cancel a fetch other waiters depend on. The adapter's own timeout bounds
// the fetch.
func (s *Store) populate(key string, adapter provider.Adapter, opts params.Options) (interface{}, error) {
	ctx, span := s.Tracer.Start(context.Background(), "cache.populate")
	defer span.End()

	// A previous flight may have populated the entry while we were queued
	if entry, err := s.Backend.Get(ctx, key); err == nil && s.fresh(entry) {
		return entry, nil
	}

	image, err := adapter.Fetch(ctx, opts)
	if err != nil {
		counterUpstreamError.Add(1)
		return nil, err
	}

	entry := &Entry{
		Data:        image.Data,
		ContentType: image.ContentType,
		FetchedAt:   s.now(),
	}

	if err := s.Backend.Set(ctx, key, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// fresh reports whether an entry is within the max age window
func (s *Store) fresh(entry *Entry) bool {
	return s.now().Sub(entry.FetchedAt) <= s.MaxAge
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}

	return time.Now()
}

// Key derives the cache key for a provider and its normalized options.
// The canonical option form is order-insensitive, so equal effective option
// sets always map to the same key.
func Key(providerName string, opts params.Options) string {
	return fmt.Sprintf("%s:%016x", providerName, murmur3.StringSum64(opts.Canonical()))
}
