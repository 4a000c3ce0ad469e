package queue

import (
	"context"
	"fmt"
	"sync"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/rest"
	toolscache "k8s.io/client-go/tools/cache"
	"sigs.k8s.io/controller-runtime/pkg/cache"

	"tekqueue/internal/pipelinerun"
	"tekqueue/internal/store"
	"tekqueue/pkg/logging"
)

// RunEvent identifies a PipelineRun that needs tagging and admission
// evaluation.
type RunEvent struct {
	Namespace string
	Name      string
}

// Watcher subscribes to PipelineRun create events via controller-runtime
// informers and emits events for runs that enter queue management.
//
// The informer re-lists and re-watches on its own after connection drops;
// anything missed in between is covered by the sweeper's next full listing.
type Watcher struct {
	mu sync.RWMutex

	restConfig *rest.Config
	scheme     *runtime.Scheme
	patterns   *PatternSet

	cache     cache.Cache
	eventChan chan<- RunEvent

	ctx        context.Context
	cancelFunc context.CancelFunc
	running    bool
}

// NewWatcher creates a watcher for PipelineRun create events.
func NewWatcher(restConfig *rest.Config, scheme *runtime.Scheme, patterns *PatternSet) *Watcher {
	return &Watcher{
		restConfig: restConfig,
		scheme:     scheme,
		patterns:   patterns,
	}
}

// Start begins watching for PipelineRun create events and sends candidates to
// the given channel. It returns once the informer cache has synced.
func (w *Watcher) Start(ctx context.Context, events chan<- RunEvent) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.ctx, w.cancelFunc = context.WithCancel(ctx)
	w.eventChan = events
	w.running = true
	w.mu.Unlock()

	c, err := cache.New(w.restConfig, cache.Options{Scheme: w.scheme})
	if err != nil {
		w.markStopped()
		return fmt.Errorf("failed to create cache: %w", err)
	}

	w.mu.Lock()
	w.cache = c
	w.mu.Unlock()

	informer, err := c.GetInformer(w.ctx, pipelinerun.New())
	if err != nil {
		w.markStopped()
		return fmt.Errorf("failed to get PipelineRun informer: %w", err)
	}

	if _, err := informer.AddEventHandler(toolscache.ResourceEventHandlerFuncs{
		AddFunc: w.handleAdd,
	}); err != nil {
		w.markStopped()
		return fmt.Errorf("failed to add event handler: %w", err)
	}

	go func() {
		if err := c.Start(w.ctx); err != nil {
			logging.Error("Watcher", err, "Cache stopped with error")
		}
	}()

	if !c.WaitForCacheSync(w.ctx) {
		w.markStopped()
		return fmt.Errorf("failed to sync cache")
	}

	logging.Info("Watcher", "Started watching PipelineRuns for namespace patterns %v", w.patterns.Get())
	return nil
}

// handleAdd filters a create event down to runs entering queue management.
// The heavy lifting (tagging, admission) happens on the consumer side so the
// informer handler never blocks on API calls.
func (w *Watcher) handleAdd(obj interface{}) {
	run, ok := obj.(*unstructured.Unstructured)
	if !ok {
		logging.Warn("Watcher", "Unexpected object type in add event: %T", obj)
		return
	}

	if !MatchesNamespace(run.GetNamespace(), w.patterns.Get()) {
		return
	}
	if pipelinerun.IsManaged(run) {
		return
	}
	// A run already Pending at first sight is a template or pre-existing
	// object; it is never brought under management.
	if pipelinerun.SpecStatus(run) == pipelinerun.SpecStatusPending {
		logging.Debug("Watcher", "Ignoring template run %s/%s", run.GetNamespace(), run.GetName())
		return
	}

	event := RunEvent{Namespace: run.GetNamespace(), Name: run.GetName()}

	w.mu.RLock()
	events := w.eventChan
	running := w.running
	w.mu.RUnlock()

	if !running || events == nil {
		return
	}

	select {
	case events <- event:
		logging.Debug("Watcher", "Observed new run %s/%s", event.Namespace, event.Name)
	default:
		// The sweeper's next full list covers anything dropped here.
		logging.Warn("Watcher", "Event channel full, dropping %s/%s", event.Namespace, event.Name)
	}
}

func (w *Watcher) markStopped() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

// Stop gracefully stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	logging.Info("Watcher", "Stopped")
}

// Tagger applies the managed marker to runs the watcher observed and hands
// them to the admission evaluator.
type Tagger struct {
	store     *store.Store
	evaluator *Evaluator
}

// NewTagger creates a tagger backed by the given store and evaluator.
func NewTagger(s *store.Store, evaluator *Evaluator) *Tagger {
	return &Tagger{store: s, evaluator: evaluator}
}

// Process tags one observed run and runs the admission decision for it.
// Runs that vanished, became managed concurrently, or turned out to be
// templates are skipped silently.
func (t *Tagger) Process(ctx context.Context, event RunEvent) error {
	run, err := t.store.GetPipelineRun(ctx, event.Namespace, event.Name)
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to fetch run %s/%s: %w", event.Namespace, event.Name, err)
	}

	if pipelinerun.IsManaged(run) {
		return nil
	}
	if pipelinerun.SpecStatus(run) == pipelinerun.SpecStatusPending {
		return nil
	}

	if err := t.store.ApplyLabels(ctx, event.Namespace, event.Name, map[string]string{
		pipelinerun.ManagedLabelKey: pipelinerun.ManagedLabelValue,
	}); err != nil {
		return fmt.Errorf("failed to tag run %s/%s: %w", event.Namespace, event.Name, err)
	}
	logging.Info("Tagger", "Tagged %s/%s as managed", event.Namespace, event.Name)

	return t.evaluator.Evaluate(ctx, run)
}
