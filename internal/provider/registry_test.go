package provider_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wallpaperd/wallpaperd/internal/provider"
	"github.com/wallpaperd/wallpaperd/internal/provider/mock"
)

func TestRegistry(t *testing.T) {
	unsplash := &mock.Adapter{ProviderName: "unsplash"}
	picsum := &mock.Adapter{ProviderName: "lorem_picsum"}

	registry := provider.NewRegistry(unsplash, picsum)

	t.Run("resolves a registered provider", func(t *testing.T) {
		adapter, err := registry.Get("unsplash")
		if err != nil {
			t.Fatal(err)
		}

		if adapter != provider.Adapter(unsplash) {
			t.Fatal("wrong adapter")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := registry.Get("flickr")
		if !errors.Is(err, provider.ErrUnknownProvider) {
			t.Fatalf("wrong error %v", err)
		}
	})

	t.Run("names are sorted", func(t *testing.T) {
		if !reflect.DeepEqual(registry.Names(), []string{"lorem_picsum", "unsplash"}) {
			t.Fatalf("wrong names %v", registry.Names())
		}
	})
}
