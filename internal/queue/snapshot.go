package queue

import (
	"sort"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"tekqueue/internal/pipelinerun"
)

// Snapshot is the derived queue view over live PipelineRun state at one
// instant. It is rebuilt from a fresh list on every evaluation and sweep and
// never persisted.
type Snapshot struct {
	// Running is the number of managed runs the platform reports as running
	// and whose slot grant is still valid (desired Runnable).
	Running int

	// PendingQueue holds the managed runs waiting for a slot (desired
	// Pending, observed Pending), in FIFO promotion order: creation
	// timestamp ascending, ties broken by namespace/name.
	PendingQueue []unstructured.Unstructured

	// StalledRunnable holds managed runs that were granted a slot but are
	// still held back (desired Runnable, observed Pending): the release
	// patch never landed. They keep their slot and get the release re-issued.
	StalledRunnable []unstructured.Unstructured

	// RaceVictims holds managed runs the platform started despite a queue
	// decision (desired Pending, observed Running). They are corrected by
	// delete and recreate.
	RaceVictims []unstructured.Unstructured
}

// UsedSlots is the number of concurrency slots currently granted: runs
// observed running plus runs granted a slot whose release has not landed yet.
func (s Snapshot) UsedSlots() int {
	return s.Running + len(s.StalledRunnable)
}

// BuildSnapshot partitions a live PipelineRun listing into the queue view.
// Runs outside the matched namespaces, unmanaged runs, finished runs, and
// runs in an unparseable state are all ignored.
func BuildSnapshot(items []unstructured.Unstructured, namespaces map[string]bool) Snapshot {
	var snap Snapshot

	for i := range items {
		run := &items[i]
		if !namespaces[run.GetNamespace()] {
			continue
		}
		if !pipelinerun.IsManaged(run) {
			continue
		}

		observed := pipelinerun.Observed(run)
		if observed.Terminal() || observed == pipelinerun.ObservedUnknown {
			continue
		}

		desired := pipelinerun.Desired(run)
		switch {
		case desired == pipelinerun.DesiredPending && observed == pipelinerun.ObservedRunning:
			snap.RaceVictims = append(snap.RaceVictims, *run)
		case desired == pipelinerun.DesiredPending:
			snap.PendingQueue = append(snap.PendingQueue, *run)
		case observed == pipelinerun.ObservedPending:
			snap.StalledRunnable = append(snap.StalledRunnable, *run)
		default:
			snap.Running++
		}
	}

	sort.SliceStable(snap.PendingQueue, func(i, j int) bool {
		a, b := &snap.PendingQueue[i], &snap.PendingQueue[j]
		at, bt := a.GetCreationTimestamp(), b.GetCreationTimestamp()
		if !at.Equal(&bt) {
			return at.Before(&bt)
		}
		if a.GetName() != b.GetName() {
			return a.GetName() < b.GetName()
		}
		return a.GetNamespace() < b.GetNamespace()
	})

	return snap
}
