// Package picsum provides an adapter for the Lorem Picsum image service
package picsum

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wallpaperd/wallpaperd/internal/params"
	"github.com/wallpaperd/wallpaperd/internal/provider"
)

// Name is the provider identifier
const Name = "lorem_picsum"

// DefaultURL is the default Lorem Picsum address
const DefaultURL = "https://picsum.photos"

// Default image dimensions
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// Blur bounds, amounts outside the range are clamped
const (
	defaultBlurAmount = 5
	minBlurAmount     = 1
	maxBlurAmount     = 10
)

// Adapter fetches images from Lorem Picsum
type Adapter struct {
	URL    string
	Client *http.Client
}

// New returns a new Adapter instance
func New(picsumURL string, timeout time.Duration) *Adapter {
	return &Adapter{
		URL: picsumURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider identifier
func (a *Adapter) Name() string {
	return Name
}

// ParseOptions extracts the options recognized by Lorem Picsum.
// w and h must be positive integers and fall back to the defaults otherwise.
// grayscale and webp are presence-flags. blur is a presence-flag with an
// optional amount, non-integer amounts fall back to the default and
// out-of-range amounts are clamped to 1-10.
func (a *Adapter) ParseOptions(query url.Values) params.Options {
	opts := params.Options{
		"w": strconv.Itoa(params.PositiveInt(query, "w", DefaultWidth)),
		"h": strconv.Itoa(params.PositiveInt(query, "h", DefaultHeight)),
	}

	if params.Flag(query, "grayscale") {
		opts["grayscale"] = ""
	}

	if params.Flag(query, "webp") {
		opts["webp"] = ""
	}

	if params.Flag(query, "blur") {
		amount := defaultBlurAmount
		if val, err := strconv.Atoi(query.Get("blur")); err == nil {
			amount = clampBlur(val)
		}

		opts["blur"] = strconv.Itoa(amount)
	}

	return opts
}

// Fetch fetches an image for the given options
func (a *Adapter) Fetch(ctx context.Context, opts params.Options) (*provider.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.buildURL(opts), nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, &provider.UpstreamError{
			Provider: Name,
			Message:  err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &provider.UpstreamError{
			Provider: Name,
			Status:   resp.StatusCode,
			Message:  "unexpected status fetching image",
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.UpstreamError{
			Provider: Name,
			Message:  err.Error(),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType(opts)
	}

	return &provider.Image{
		Data:        data,
		ContentType: contentType,
	}, nil
}

// buildURL builds the upstream url for the given options.
// Width and height go in the path, the webp flag selects the path extension,
// grayscale and blur go in the query string, grayscale as a valueless key.
func (a *Adapter) buildURL(opts params.Options) string {
	var extension string
	if opts.Has("webp") {
		extension = ".webp"
	}

	query := url.Values{}
	if opts.Has("grayscale") {
		query.Set("grayscale", "")
	}

	if amount, ok := opts["blur"]; ok {
		query.Set("blur", amount)
	}

	return fmt.Sprintf("%s/%s/%s%s%s", a.URL, opts["w"], opts["h"], extension, params.BuildQuery(query))
}

func defaultContentType(opts params.Options) string {
	if opts.Has("webp") {
		return "image/webp"
	}

	return "image/jpeg"
}

func clampBlur(amount int) int {
	if amount < minBlurAmount {
		return minBlurAmount
	}

	if amount > maxBlurAmount {
		return maxBlurAmount
	}

	return amount
}
