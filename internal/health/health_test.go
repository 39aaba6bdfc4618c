package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/wallpaperd/wallpaperd/internal/cache/mock"
	"github.com/wallpaperd/wallpaperd/internal/health"
	"github.com/wallpaperd/wallpaperd/internal/logger"
	"go.uber.org/zap"
)

func newChecker(t *testing.T, cache *mock.Provider) *health.Checker {
	t.Helper()

	log := logger.New(zap.FatalLevel)
	t.Cleanup(func() {
		log.Sync()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &health.Checker{
		Ctx:   ctx,
		Cache: cache,
		Log:   log,
	}
}

func TestHealthy(t *testing.T) {
	checker := newChecker(t, &mock.Provider{})
	checker.Run()

	status := checker.Status()
	if !status.Healthy {
		t.Fatal("not healthy")
	}

	if status.Cache != "healthy" {
		t.Fatalf("wrong cache status %s", status.Cache)
	}
}

func TestUnhealthyCache(t *testing.T) {
	checker := newChecker(t, &mock.Provider{
		GetErr: errors.New("connection refused"),
	})
	checker.Run()

	status := checker.Status()
	if status.Healthy {
		t.Fatal("healthy")
	}

	if status.Cache != "unhealthy" {
		t.Fatalf("wrong cache status %s", status.Cache)
	}
}

func TestNoCache(t *testing.T) {
	log := logger.New(zap.FatalLevel)
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checker := &health.Checker{
		Ctx: ctx,
		Log: log,
	}
	checker.Run()

	status := checker.Status()
	if !status.Healthy {
		t.Fatal("not healthy")
	}

	if status.Cache != "" {
		t.Fatalf("wrong cache status %s", status.Cache)
	}
}
