// Package health monitors the storage backend with periodic probes.
package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/icalorie/icalorie-server/internal/kv"
)

// Pinger is implemented by backends that can verify connectivity directly.
type Pinger interface {
	HealthPing(ctx context.Context) error
}

// StorageChecker caches backend health, refreshed on an interval.
type StorageChecker struct {
	backend      kv.KV
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

// NewStorageChecker creates a checker. It reports unhealthy until the
// first successful probe.
func NewStorageChecker(backend kv.KV, log zerolog.Logger, probeTimeout time.Duration) *StorageChecker {
	hc := &StorageChecker{
		backend:      backend,
		log:          log,
		probeTimeout: probeTimeout,
	}
	hc.healthy.Store(0)
	return hc
}

// IsHealthy returns the cached health status (non-blocking).
func (hc *StorageChecker) IsHealthy() bool {
	return hc.healthy.Load() == 1
}

// Start begins periodic health checking and blocks until ctx is done.
func (hc *StorageChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		to := hc.probeTimeout
		if to <= 0 {
			to = 2 * time.Second
		}
		checkCtx, cancel := context.WithTimeout(ctx, to)
		defer cancel()

		if hc.probe(checkCtx) {
			hc.healthy.Store(1)
		} else {
			hc.healthy.Store(0)
		}
	}

	check()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// probe prefers a backend-native ping and falls back to a read of a key
// that is allowed not to exist.
func (hc *StorageChecker) probe(ctx context.Context) bool {
	if p, ok := hc.backend.(Pinger); ok {
		if err := p.HealthPing(ctx); err != nil {
			hc.log.Error().Stack().Err(err).Msg("storage health check failed")
			return false
		}
		return true
	}

	if _, _, err := hc.backend.Get(ctx, "__health_check__"); err != nil {
		hc.log.Error().Stack().Err(err).Msg("storage health check failed")
		return false
	}
	return true
}
