package store

import (
	"context"
	"fmt"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/util/retry"
	"sigs.k8s.io/controller-runtime/pkg/client"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"tekqueue/internal/pipelinerun"
	queuev1alpha1 "tekqueue/pkg/apis/queue/v1alpha1"
)

// Store provides the controller's access to the shared object state.
//
// The Kubernetes API is the sole source of truth and the sole synchronization
// point: the store keeps no state of its own beyond the client handle and the
// per-call timeout.
type Store struct {
	client  client.Client
	timeout time.Duration
}

// New creates a store around an existing controller-runtime client.
func New(c client.Client, requestTimeout time.Duration) *Store {
	return &Store{
		client:  c,
		timeout: requestTimeout,
	}
}

// NewScheme builds the runtime scheme the controller operates with: core
// Kubernetes types, the GlobalLimit CRD, and the unstructured PipelineRun
// kinds.
func NewScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(queuev1alpha1.AddToScheme(scheme))
	scheme.AddKnownTypeWithName(pipelinerun.GVK, &unstructured.Unstructured{})
	scheme.AddKnownTypeWithName(pipelinerun.ListGVK, &unstructured.UnstructuredList{})
	return scheme
}

// bounded derives a per-call context so no single API call can stall a sweep.
func (s *Store) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// ListPipelineRuns lists PipelineRuns across all namespaces.
func (s *Store) ListPipelineRuns(ctx context.Context) ([]unstructured.Unstructured, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	list := pipelinerun.NewList()
	if err := s.client.List(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to list PipelineRuns: %w", err)
	}
	return list.Items, nil
}

// GetPipelineRun fetches a single PipelineRun.
func (s *Store) GetPipelineRun(ctx context.Context, namespace, name string) (*unstructured.Unstructured, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	obj := pipelinerun.New()
	key := types.NamespacedName{Namespace: namespace, Name: name}
	if err := s.client.Get(ctx, key, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// ListNamespaceNames returns the names of all namespaces in the cluster.
func (s *Store) ListNamespaceNames(ctx context.Context) ([]string, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	list := &corev1.NamespaceList{}
	if err := s.client.List(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		names = append(names, ns.Name)
	}
	return names, nil
}

// GetGlobalLimit reads the singleton GlobalLimit resource.
func (s *Store) GetGlobalLimit(ctx context.Context) (*queuev1alpha1.GlobalLimit, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	limit := &queuev1alpha1.GlobalLimit{}
	key := types.NamespacedName{Name: queuev1alpha1.GlobalLimitName}
	if err := s.client.Get(ctx, key, limit); err != nil {
		return nil, err
	}
	return limit, nil
}

// ApplyLabels sets the given labels on a PipelineRun, preserving all others.
// Conflicts are retried with a re-fetch; a vanished object is a no-op.
func (s *Store) ApplyLabels(ctx context.Context, namespace, name string, set map[string]string) error {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	err := retry.RetryOnConflict(retry.DefaultRetry, func() error {
		obj := pipelinerun.New()
		key := types.NamespacedName{Namespace: namespace, Name: name}
		if err := s.client.Get(ctx, key, obj); err != nil {
			return err
		}

		labels := obj.GetLabels()
		if labels == nil {
			labels = make(map[string]string, len(set))
		}
		changed := false
		for k, v := range set {
			if labels[k] != v {
				labels[k] = v
				changed = true
			}
		}
		if !changed {
			return nil
		}
		obj.SetLabels(labels)
		return s.client.Update(ctx, obj)
	})
	if apierrors.IsNotFound(err) {
		return nil
	}
	return err
}

// SetPending forces a PipelineRun out of the running path by setting
// spec.status. The platform may reject this when the run has already started;
// that failure is surfaced to the caller and resolved by the next sweep.
func (s *Store) SetPending(ctx context.Context, run *unstructured.Unstructured) error {
	return s.patchSpecStatus(ctx, run, []byte(fmt.Sprintf(`{"spec":{"status":%q}}`, pipelinerun.SpecStatusPending)))
}

// ClearPending releases a queued PipelineRun so the platform can start it.
// Clearing an already-clear status is a no-op.
func (s *Store) ClearPending(ctx context.Context, run *unstructured.Unstructured) error {
	return s.patchSpecStatus(ctx, run, []byte(`{"spec":{"status":null}}`))
}

func (s *Store) patchSpecStatus(ctx context.Context, run *unstructured.Unstructured, body []byte) error {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	obj := pipelinerun.New()
	obj.SetNamespace(run.GetNamespace())
	obj.SetName(run.GetName())

	err := s.client.Patch(ctx, obj, client.RawPatch(types.MergePatchType, body))
	if apierrors.IsNotFound(err) {
		return nil
	}
	return err
}

// DeletePipelineRun removes a run with background propagation so its child
// resources are cleaned up too. Deleting an already-deleted run is a no-op.
func (s *Store) DeletePipelineRun(ctx context.Context, run *unstructured.Unstructured) error {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	obj := pipelinerun.New()
	obj.SetNamespace(run.GetNamespace())
	obj.SetName(run.GetName())

	err := s.client.Delete(ctx, obj, client.PropagationPolicy(metav1.DeletePropagationBackground))
	if apierrors.IsNotFound(err) {
		return nil
	}
	return err
}

// CreatePipelineRun creates a run. An already-existing object with the same
// identity is tolerated, since a previous attempt may have partially landed.
func (s *Store) CreatePipelineRun(ctx context.Context, run *unstructured.Unstructured) error {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	err := s.client.Create(ctx, run)
	if apierrors.IsAlreadyExists(err) {
		return nil
	}
	return err
}
