package redis

import (
	"context"

	"github.com/mediocregopher/radix/v4"
	"github.com/wallpaperd/wallpaperd/internal/cache"
	"github.com/wallpaperd/wallpaperd/internal/tracing"
)

// Provider implements a redis entry cache.
// Entries are stored using their binary encoding.
type Provider struct {
	client radix.Client
	tracer *tracing.Tracer
}

// New returns a new Provider instance
func New(ctx context.Context, tracer *tracing.Tracer, address string, poolSize int) (*Provider, error) {
	cfg := radix.PoolConfig{
		Size: poolSize,
	}

	client, err := cfg.New(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}

	return &Provider{
		client: client,
		tracer: tracer,
	}, nil
}

// Get returns an entry from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) (*cache.Entry, error) {
	ctx, span := p.tracer.Start(ctx, "redis.Get")
	defer span.End()

	var data []byte
	mn := radix.Maybe{Rcv: &data}
	if err := p.client.Do(ctx, radix.Cmd(&mn, "GET", key)); err != nil {
		return nil, err
	}

	if mn.Null {
		return nil, cache.ErrNotFound
	}

	var entry cache.Entry
	if err := entry.UnmarshalBinary(data); err != nil {
		return nil, err
	}

	return &entry, nil
}

// Set adds an entry to the cache, replacing any previous entry for the key
func (p *Provider) Set(ctx context.Context, key string, entry *cache.Entry) error {
	ctx, span := p.tracer.Start(ctx, "redis.Set")
	defer span.End()

	data, err := entry.MarshalBinary()
	if err != nil {
		return err
	}

	return p.client.Do(ctx, radix.FlatCmd(nil, "SET", key, data))
}

// Shutdown shuts down the cache
func (p *Provider) Shutdown() {
	p.client.Close()
}
