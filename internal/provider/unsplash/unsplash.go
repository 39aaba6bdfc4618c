// Package unsplash provides an adapter for the Unsplash random photo api
package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wallpaperd/wallpaperd/internal/params"
	"github.com/wallpaperd/wallpaperd/internal/provider"
)

// Name is the provider identifier
const Name = "unsplash"

// DefaultAPIURL is the default Unsplash api address
const DefaultAPIURL = "https://api.unsplash.com"

// Defaults for the random photo request
const (
	defaultOrientation = "landscape"
	defaultWidth       = "1920"
	defaultHeight      = "1080"
)

const defaultContentType = "image/jpeg"

// Adapter fetches random photos from Unsplash.
// Unsplash returns photo metadata as json, the photo itself is fetched in a second request.
type Adapter struct {
	AccessKey string
	APIURL    string
	Client    *http.Client
}

// New returns a new Adapter instance
func New(accessKey string, apiURL string, timeout time.Duration) *Adapter {
	return &Adapter{
		AccessKey: accessKey,
		APIURL:    apiURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider identifier
func (a *Adapter) Name() string {
	return Name
}

// ParseOptions extracts the options recognized by Unsplash.
// Only theme is recognized, all other keys are dropped.
func (a *Adapter) ParseOptions(query url.Values) params.Options {
	opts := params.Options{}

	if theme := query.Get("theme"); theme != "" {
		opts["theme"] = theme
	}

	return opts
}

// Fetch fetches a random photo matching the given options
func (a *Adapter) Fetch(ctx context.Context, opts params.Options) (*provider.Image, error) {
	if a.AccessKey == "" {
		return nil, &provider.MisconfiguredError{
			Provider: Name,
			Reason:   "missing access key",
		}
	}

	photoURL, err := a.randomPhotoURL(ctx, opts)
	if err != nil {
		return nil, err
	}

	return a.fetchPhoto(ctx, photoURL)
}

// randomPhotoURL asks the api for a random photo and returns the url of the full size image
func (a *Adapter) randomPhotoURL(ctx context.Context, opts params.Options) (string, error) {
	query := url.Values{}
	query.Set("orientation", defaultOrientation)
	query.Set("w", defaultWidth)
	query.Set("h", defaultHeight)

	if theme, ok := opts["theme"]; ok {
		query.Set("query", theme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/photos/random?%s", a.APIURL, query.Encode()), nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Client-ID %s", a.AccessKey))

	resp, err := a.Client.Do(req)
	if err != nil {
		return "", &provider.UpstreamError{
			Provider: Name,
			Message:  err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &provider.UpstreamError{
			Provider: Name,
			Status:   resp.StatusCode,
			Message:  "unexpected status getting random photo",
		}
	}

	var photo struct {
		Urls struct {
			Full string `json:"full"`
		} `json:"urls"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&photo); err != nil {
		return "", &provider.UpstreamError{
			Provider: Name,
			Message:  fmt.Sprintf("invalid response: %s", err),
		}
	}

	if photo.Urls.Full == "" {
		return "", &provider.UpstreamError{
			Provider: Name,
			Message:  "response contains no photo url",
		}
	}

	return photo.Urls.Full, nil
}

// fetchPhoto fetches the photo bytes
func (a *Adapter) fetchPhoto(ctx context.Context, photoURL string) (*provider.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
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
			Message:  "unexpected status fetching photo",
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
		contentType = defaultContentType
	}

	return &provider.Image{
		Data:        data,
		ContentType: contentType,
	}, nil
}
