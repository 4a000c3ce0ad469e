package queue

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"tekqueue/internal/pipelinerun"
	"tekqueue/internal/store"
	"tekqueue/pkg/logging"
)

// Evaluator makes the first admission decision for a run entering the queue.
//
// It is stateless between invocations: every call recounts running units from
// a live listing, so no drift can accumulate across decisions.
type Evaluator struct {
	store    *store.Store
	limits   *LimitReader
	patterns *PatternSet
}

// NewEvaluator creates an admission evaluator.
func NewEvaluator(s *store.Store, limits *LimitReader, patterns *PatternSet) *Evaluator {
	return &Evaluator{
		store:    s,
		limits:   limits,
		patterns: patterns,
	}
}

// Evaluate decides admit-vs-queue for a freshly tagged run.
//
// Admit records the Runnable decision and takes no corrective action: the
// platform is already running the unit. Queue records the Pending decision
// and forces the run out of the running path; if that force loses the race
// against the platform having started the run, the next sweep corrects it.
func (e *Evaluator) Evaluate(ctx context.Context, run *unstructured.Unstructured) error {
	limit := e.limits.Current(ctx)

	occupied, err := e.countOthersRunning(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to count running units: %w", err)
	}

	namespace, name := run.GetNamespace(), run.GetName()

	if occupied < limit {
		logging.Info("Evaluator", "Admitting %s/%s (%d/%d slots in use)", namespace, name, occupied, limit)
		return e.store.ApplyLabels(ctx, namespace, name, map[string]string{
			pipelinerun.DesiredStateLabelKey: string(pipelinerun.DesiredRunnable),
		})
	}

	logging.Info("Evaluator", "Queueing %s/%s (limit %d reached)", namespace, name, limit)
	if err := e.store.ApplyLabels(ctx, namespace, name, map[string]string{
		pipelinerun.DesiredStateLabelKey: string(pipelinerun.DesiredPending),
	}); err != nil {
		return fmt.Errorf("failed to record queue decision for %s/%s: %w", namespace, name, err)
	}

	if err := e.store.SetPending(ctx, run); err != nil {
		// The platform may have started the run already. The sweep detects
		// the (Pending-desired, Running-observed) pair and corrects it.
		logging.Warn("Evaluator", "Could not force %s/%s to pending, sweep will correct: %v", namespace, name, err)
	}
	return nil
}

// countOthersRunning counts the slots occupied by managed runs other than the
// one under evaluation. The unit itself is excluded so a freshly started run
// does not count against its own admission.
func (e *Evaluator) countOthersRunning(ctx context.Context, run *unstructured.Unstructured) (int, error) {
	names, err := e.store.ListNamespaceNames(ctx)
	if err != nil {
		return 0, err
	}
	matched := MatchNamespaces(names, e.patterns.Get())

	items, err := e.store.ListPipelineRuns(ctx)
	if err != nil {
		return 0, err
	}

	filtered := items[:0:0]
	for _, item := range items {
		if item.GetNamespace() == run.GetNamespace() && item.GetName() == run.GetName() {
			continue
		}
		filtered = append(filtered, item)
	}

	return BuildSnapshot(filtered, matched).UsedSlots(), nil
}
