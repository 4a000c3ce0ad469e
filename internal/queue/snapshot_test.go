package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"tekqueue/internal/pipelinerun"
)

func runsOf(objs ...*unstructured.Unstructured) []unstructured.Unstructured {
	items := make([]unstructured.Unstructured, 0, len(objs))
	for _, obj := range objs {
		items = append(items, *obj)
	}
	return items
}

func namesOf(items []unstructured.Unstructured) []string {
	names := make([]string, 0, len(items))
	for i := range items {
		names = append(names, items[i].GetName())
	}
	return names
}

func TestBuildSnapshotPartitioning(t *testing.T) {
	matched := map[string]bool{"team-a-cicd": true}

	items := runsOf(
		newRun("running", "team-a-cicd", 0, managed(), desired(pipelinerun.DesiredRunnable)),
		newRun("implicit-running", "team-a-cicd", time.Minute, managed()),
		newRun("queued", "team-a-cicd", 2*time.Minute, managed(), desired(pipelinerun.DesiredPending), specPending()),
		newRun("stalled", "team-a-cicd", 3*time.Minute, managed(), desired(pipelinerun.DesiredRunnable), specPending()),
		newRun("victim", "team-a-cicd", 4*time.Minute, managed(), desired(pipelinerun.DesiredPending)),
	)

	snap := BuildSnapshot(items, matched)

	assert.Equal(t, 2, snap.Running)
	assert.Equal(t, []string{"queued"}, namesOf(snap.PendingQueue))
	assert.Equal(t, []string{"stalled"}, namesOf(snap.StalledRunnable))
	assert.Equal(t, []string{"victim"}, namesOf(snap.RaceVictims))
	assert.Equal(t, 3, snap.UsedSlots())
}

func TestBuildSnapshotIgnoresOutOfScopeRuns(t *testing.T) {
	matched := map[string]bool{"team-a-cicd": true}

	items := runsOf(
		newRun("unmanaged", "team-a-cicd", 0),
		newRun("wrong-namespace", "team-a-prod", 0, managed()),
		newRun("done", "team-a-cicd", 0, managed(), succeeded()),
		newRun("broken", "team-a-cicd", 0, managed(), failed()),
	)

	snap := BuildSnapshot(items, matched)

	assert.Zero(t, snap.Running)
	assert.Empty(t, snap.PendingQueue)
	assert.Empty(t, snap.StalledRunnable)
	assert.Empty(t, snap.RaceVictims)
}

func TestBuildSnapshotPendingQueueIsFIFO(t *testing.T) {
	matched := map[string]bool{"team-a-cicd": true, "team-b-cicd": true}

	items := runsOf(
		newRun("newest", "team-a-cicd", 2*time.Minute, managed(), desired(pipelinerun.DesiredPending), specPending()),
		newRun("oldest", "team-b-cicd", 0, managed(), desired(pipelinerun.DesiredPending), specPending()),
		newRun("middle", "team-a-cicd", time.Minute, managed(), desired(pipelinerun.DesiredPending), specPending()),
	)

	snap := BuildSnapshot(items, matched)

	assert.Equal(t, []string{"oldest", "middle", "newest"}, namesOf(snap.PendingQueue))
}

func TestBuildSnapshotTiesBreakOnName(t *testing.T) {
	matched := map[string]bool{"team-a-cicd": true}

	items := runsOf(
		newRun("build-b", "team-a-cicd", 0, managed(), desired(pipelinerun.DesiredPending), specPending()),
		newRun("build-a", "team-a-cicd", 0, managed(), desired(pipelinerun.DesiredPending), specPending()),
	)

	snap := BuildSnapshot(items, matched)

	assert.Equal(t, []string{"build-a", "build-b"}, namesOf(snap.PendingQueue))
}

func TestBuildSnapshotEmptyInput(t *testing.T) {
	snap := BuildSnapshot(nil, map[string]bool{"team-a-cicd": true})

	assert.Zero(t, snap.UsedSlots())
	assert.Empty(t, snap.PendingQueue)
}
