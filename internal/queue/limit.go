package queue

import (
	"context"
	"sync"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"tekqueue/internal/store"
	"tekqueue/pkg/logging"
)

// LimitReader reads the global concurrency ceiling from the GlobalLimit
// resource at the start of every evaluation and sweep.
//
// A missing or invalid resource never stops the loop: the reader falls back
// to the last value it read successfully, or to the configured default when
// no read has ever succeeded.
type LimitReader struct {
	store *store.Store

	mu        sync.Mutex
	lastKnown int
}

// NewLimitReader creates a limit reader with the given fallback default.
func NewLimitReader(s *store.Store, defaultLimit int) *LimitReader {
	return &LimitReader{
		store:     s,
		lastKnown: defaultLimit,
	}
}

// Current returns the effective concurrency limit for this pass.
func (r *LimitReader) Current(ctx context.Context) int {
	limit, err := r.store.GetGlobalLimit(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		if apierrors.IsNotFound(err) {
			logging.Debug("LimitReader", "GlobalLimit not found, keeping limit %d", r.lastKnown)
		} else {
			logging.Warn("LimitReader", "Failed to read GlobalLimit, keeping limit %d: %v", r.lastKnown, err)
		}
		return r.lastKnown
	}

	if limit.Spec.MaxPipelines < 1 {
		logging.Warn("LimitReader", "GlobalLimit has invalid maxPipelines %d, keeping limit %d",
			limit.Spec.MaxPipelines, r.lastKnown)
		return r.lastKnown
	}

	if limit.Spec.MaxPipelines != r.lastKnown {
		logging.Info("LimitReader", "Global limit changed: %d -> %d", r.lastKnown, limit.Spec.MaxPipelines)
	}
	r.lastKnown = limit.Spec.MaxPipelines
	return r.lastKnown
}
