package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/wallpaperd/wallpaperd/internal/cache"
	"github.com/wallpaperd/wallpaperd/internal/cache/memory"
)

func TestMemory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := memory.New()

	entry := &cache.Entry{
		Data:        []byte("bar"),
		ContentType: "image/jpeg",
		FetchedAt:   time.Now(),
	}

	t.Run("get entry", func(t *testing.T) {
		// Add entry to the cache
		provider.Set(ctx, "foo", entry)

		// Get entry from the cache
		got, err := provider.Get(ctx, "foo")
		if err != nil {
			t.Fatal(err)
		}

		if string(got.Data) != "bar" {
			t.Fatal("wrong data")
		}
	})

	t.Run("replace entry", func(t *testing.T) {
		replacement := &cache.Entry{
			Data:        []byte("baz"),
			ContentType: "image/jpeg",
			FetchedAt:   time.Now(),
		}
		provider.Set(ctx, "foo", replacement)

		got, err := provider.Get(ctx, "foo")
		if err != nil {
			t.Fatal(err)
		}

		if string(got.Data) != "baz" {
			t.Fatal("wrong data")
		}
	})

	t.Run("get nonexistant entry", func(t *testing.T) {
		_, err := provider.Get(ctx, "notfound")
		if err == nil {
			t.Fatal("no error")
		}

		if err != cache.ErrNotFound {
			t.Fatalf("wrong error %s", err)
		}
	})
}
