package provider

import (
	"context"
	"net/url"

	"github.com/wallpaperd/wallpaperd/internal/params"
)

// Image is an image fetched from an upstream provider
type Image struct {
	Data        []byte
	ContentType string
}

// Adapter translates a normalized option set into an upstream fetch for one provider
type Adapter interface {
	// Name returns the provider identifier
	Name() string

	// ParseOptions extracts the options this provider recognizes from raw
	// query parameters, applying validation, coercion and defaults.
	// Unrecognized keys are dropped.
	ParseOptions(query url.Values) params.Options

	// Fetch performs the upstream request for the given options.
	// Implementations perform no retries and bound each request with a timeout.
	Fetch(ctx context.Context, opts params.Options) (*Image, error)
}
