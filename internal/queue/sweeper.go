package queue

import (
	"context"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"tekqueue/internal/pipelinerun"
	"tekqueue/internal/store"
	"tekqueue/pkg/logging"
)

// Sweeper is the periodic reconciler. On a fixed interval it re-derives the
// queue from live cluster state, tags runs whose create event never arrived,
// corrects runs the platform started despite a queue decision, and promotes
// the oldest queued runs into freed slots.
type Sweeper struct {
	store    *store.Store
	tagger   *Tagger
	limits   *LimitReader
	patterns *PatternSet
	interval time.Duration
}

// NewSweeper creates a sweeper.
func NewSweeper(s *store.Store, tagger *Tagger, limits *LimitReader, patterns *PatternSet, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:    s,
		tagger:   tagger,
		limits:   limits,
		patterns: patterns,
		interval: interval,
	}
}

// Run executes sweeps on the configured interval until the context is
// cancelled. Sweep failures are logged and retried on the next tick, never
// escalated.
func (s *Sweeper) Run(ctx context.Context) error {
	logging.Info("Sweeper", "Started with interval %v", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("Sweeper", "Stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				logging.Error("Sweeper", err, "Sweep failed, will retry on next tick")
			}
		}
	}
}

// SweepOnce performs a single reconciliation pass.
//
// Per-unit failures are isolated: an error acting on one run never aborts the
// remaining corrections or promotions of the same pass.
func (s *Sweeper) SweepOnce(ctx context.Context) error {
	limit := s.limits.Current(ctx)

	names, err := s.store.ListNamespaceNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list namespaces: %w", err)
	}
	patterns := s.patterns.Get()
	matched := MatchNamespaces(names, patterns)
	if len(matched) == 0 {
		logging.Debug("Sweeper", "No namespaces match %v, nothing to do", patterns)
		return nil
	}

	items, err := s.store.ListPipelineRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	// Watch events are delivered at most best-effort: the channel may drop
	// them and tagging may fail transiently. The full listing is the
	// backstop, so any run that should be managed but is not gets tagged
	// and evaluated here.
	if s.tagMissed(ctx, items, matched) > 0 {
		items, err = s.store.ListPipelineRuns(ctx)
		if err != nil {
			return fmt.Errorf("failed to relist runs: %w", err)
		}
	}

	snap := BuildSnapshot(items, matched)

	s.correctRaceVictims(ctx, snap)
	s.releaseStalled(ctx, snap)
	s.promote(ctx, snap, limit)

	return nil
}

// tagMissed brings unmanaged runs in matched namespaces under management.
// Templates (already Pending at first sight) and finished runs are left
// alone. Returns the number of runs handed to the tagger.
func (s *Sweeper) tagMissed(ctx context.Context, items []unstructured.Unstructured, matched map[string]bool) int {
	tagged := 0
	for i := range items {
		run := &items[i]
		if !matched[run.GetNamespace()] {
			continue
		}
		if pipelinerun.IsManaged(run) {
			continue
		}
		if pipelinerun.SpecStatus(run) == pipelinerun.SpecStatusPending {
			continue
		}
		if pipelinerun.Observed(run).Terminal() {
			continue
		}

		namespace, name := run.GetNamespace(), run.GetName()
		logging.Info("Sweeper", "Run %s/%s missed its create event, tagging now", namespace, name)

		if err := s.tagger.Process(ctx, RunEvent{Namespace: namespace, Name: name}); err != nil {
			logging.Error("Sweeper", err, "Failed to tag %s/%s, will retry on next sweep", namespace, name)
			continue
		}
		tagged++
	}
	return tagged
}

// correctRaceVictims deletes and recreates every run the platform started
// despite a queue decision. The successor is a fresh, unmanaged object that
// re-enters at the watcher stage and joins the back of the FIFO order.
func (s *Sweeper) correctRaceVictims(ctx context.Context, snap Snapshot) {
	for i := range snap.RaceVictims {
		victim := &snap.RaceVictims[i]
		namespace, name := victim.GetNamespace(), victim.GetName()

		logging.Info("Sweeper", "Run %s/%s started despite queue decision, re-queueing", namespace, name)

		successor := pipelinerun.Successor(victim)

		if err := s.store.DeletePipelineRun(ctx, victim); err != nil {
			logging.Error("Sweeper", err, "Failed to delete %s/%s", namespace, name)
			continue
		}
		if err := s.store.CreatePipelineRun(ctx, successor); err != nil {
			logging.Error("Sweeper", err, "Failed to recreate %s/%s as %s", namespace, name, successor.GetName())
			continue
		}
		logging.Info("Sweeper", "Re-queued %s/%s as %s/%s", namespace, name, namespace, successor.GetName())
	}
}

// releaseStalled re-issues the release for runs that hold a slot but whose
// earlier release patch never landed. Releasing again is idempotent.
func (s *Sweeper) releaseStalled(ctx context.Context, snap Snapshot) {
	for i := range snap.StalledRunnable {
		run := &snap.StalledRunnable[i]
		if err := s.store.ClearPending(ctx, run); err != nil {
			logging.Error("Sweeper", err, "Failed to release %s/%s", run.GetNamespace(), run.GetName())
		}
	}
}

// promote fills freed slots with the oldest queued runs.
func (s *Sweeper) promote(ctx context.Context, snap Snapshot, limit int) {
	freeSlots := limit - snap.UsedSlots()
	if freeSlots <= 0 || len(snap.PendingQueue) == 0 {
		return
	}

	candidates := snap.PendingQueue
	if len(candidates) > freeSlots {
		candidates = candidates[:freeSlots]
	}

	promoted := 0
	for i := range candidates {
		run := &candidates[i]
		namespace, name := run.GetNamespace(), run.GetName()

		logging.Info("Sweeper", "Promoting %s/%s (%d/%d slots in use)", namespace, name, snap.UsedSlots()+promoted, limit)

		if err := s.store.ApplyLabels(ctx, namespace, name, map[string]string{
			pipelinerun.DesiredStateLabelKey: string(pipelinerun.DesiredRunnable),
		}); err != nil {
			logging.Error("Sweeper", err, "Failed to record promotion of %s/%s", namespace, name)
			continue
		}
		promoted++
		if err := s.store.ClearPending(ctx, run); err != nil {
			logging.Error("Sweeper", err, "Failed to release %s/%s", namespace, name)
		}
	}
}
