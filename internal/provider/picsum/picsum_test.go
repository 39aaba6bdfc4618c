package picsum_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/wallpaperd/wallpaperd/internal/params"
	"github.com/wallpaperd/wallpaperd/internal/provider"
	"github.com/wallpaperd/wallpaperd/internal/provider/picsum"
)

func TestParseOptions(t *testing.T) {
	adapter := picsum.New(picsum.DefaultURL, time.Second)

	tests := []struct {
		Name     string
		Query    string
		Expected params.Options
	}{
		{
			Name:     "defaults",
			Query:    "",
			Expected: params.Options{"w": "1920", "h": "1080"},
		},
		{
			Name:     "width and height",
			Query:    "w=1280&h=720",
			Expected: params.Options{"w": "1280", "h": "720"},
		},
		{
			Name:     "invalid width falls back to default",
			Query:    "w=abc&h=720",
			Expected: params.Options{"w": "1920", "h": "720"},
		},
		{
			Name:     "non-positive dimensions fall back to default",
			Query:    "w=0&h=-5",
			Expected: params.Options{"w": "1920", "h": "1080"},
		},
		{
			Name:     "grayscale is a presence flag",
			Query:    "grayscale",
			Expected: params.Options{"w": "1920", "h": "1080", "grayscale": ""},
		},
		{
			Name:     "grayscale value is ignored",
			Query:    "grayscale=false",
			Expected: params.Options{"w": "1920", "h": "1080", "grayscale": ""},
		},
		{
			Name:     "blur without value uses the default amount",
			Query:    "blur",
			Expected: params.Options{"w": "1920", "h": "1080", "blur": "5"},
		},
		{
			Name:     "blur with amount",
			Query:    "blur=3",
			Expected: params.Options{"w": "1920", "h": "1080", "blur": "3"},
		},
		{
			Name:     "blur above range is clamped",
			Query:    "blur=15",
			Expected: params.Options{"w": "1920", "h": "1080", "blur": "10"},
		},
		{
			Name:     "blur below range is clamped",
			Query:    "blur=0",
			Expected: params.Options{"w": "1920", "h": "1080", "blur": "1"},
		},
		{
			Name:     "non-integer blur uses the default amount",
			Query:    "blur=abc",
			Expected: params.Options{"w": "1920", "h": "1080", "blur": "5"},
		},
		{
			Name:     "webp is a presence flag",
			Query:    "webp",
			Expected: params.Options{"w": "1920", "h": "1080", "webp": ""},
		},
		{
			Name:     "unknown options are dropped",
			Query:    "w=100&theme=nature&foo=bar",
			Expected: params.Options{"w": "100", "h": "1080"},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			query, err := url.ParseQuery(test.Query)
			if err != nil {
				t.Fatal(err)
			}

			opts := adapter.ParseOptions(query)
			if !reflect.DeepEqual(opts, test.Expected) {
				t.Fatalf("wrong options %v", opts)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	var gotPath, gotQuery string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery

		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("picsum image"))
	}))
	defer upstream.Close()

	adapter := picsum.New(upstream.URL, time.Second)

	query, _ := url.ParseQuery("w=1280&h=720&grayscale&blur=3")
	image, err := adapter.Fetch(context.Background(), adapter.ParseOptions(query))
	if err != nil {
		t.Fatal(err)
	}

	if gotPath != "/1280/720" {
		t.Fatalf("wrong path %s", gotPath)
	}

	if gotQuery != "blur=3&grayscale" {
		t.Fatalf("wrong query %s", gotQuery)
	}

	if string(image.Data) != "picsum image" {
		t.Fatal("wrong data")
	}

	if image.ContentType != "image/jpeg" {
		t.Fatalf("wrong content type %s", image.ContentType)
	}
}

func TestFetchWebp(t *testing.T) {
	var gotPath string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		// Omit the content type so the adapter falls back based on the extension
		w.Header()["Content-Type"] = nil
		w.Write([]byte("webp image"))
	}))
	defer upstream.Close()

	adapter := picsum.New(upstream.URL, time.Second)

	query, _ := url.ParseQuery("webp")
	image, err := adapter.Fetch(context.Background(), adapter.ParseOptions(query))
	if err != nil {
		t.Fatal(err)
	}

	if gotPath != "/1920/1080.webp" {
		t.Fatalf("wrong path %s", gotPath)
	}

	if image.ContentType != "image/webp" {
		t.Fatalf("wrong content type %s", image.ContentType)
	}
}

func TestFetchUpstreamStatusError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	adapter := picsum.New(upstream.URL, time.Second)

	_, err := adapter.Fetch(context.Background(), adapter.ParseOptions(nil))

	var upstreamErr *provider.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("wrong error %v", err)
	}

	if upstreamErr.Status != http.StatusServiceUnavailable {
		t.Fatalf("wrong status %d", upstreamErr.Status)
	}
}

func TestFetchTransportError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	adapter := picsum.New(upstream.URL, time.Second)

	_, err := adapter.Fetch(context.Background(), adapter.ParseOptions(nil))

	var upstreamErr *provider.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("wrong error %v", err)
	}

	if upstreamErr.Status != 0 {
		t.Fatalf("wrong status %d", upstreamErr.Status)
	}
}
