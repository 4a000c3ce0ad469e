package queue

import (
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	"tekqueue/internal/pipelinerun"
	"tekqueue/internal/store"
	queuev1alpha1 "tekqueue/pkg/apis/queue/v1alpha1"
)

// baseTime anchors creation timestamps so FIFO ordering in tests is explicit.
var baseTime = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

type runOption func(*unstructured.Unstructured)

// newRun builds an unstructured PipelineRun for tests.
func newRun(name, namespace string, createdOffset time.Duration, opts ...runOption) *unstructured.Unstructured {
	obj := pipelinerun.New()
	obj.SetName(name)
	obj.SetNamespace(namespace)
	obj.SetCreationTimestamp(metav1.NewTime(baseTime.Add(createdOffset)))
	_ = unstructured.SetNestedField(obj.Object, "build-and-push", "spec", "pipelineRef", "name")
	for _, opt := range opts {
		opt(obj)
	}
	return obj
}

func managed() runOption {
	return withLabel(pipelinerun.ManagedLabelKey, pipelinerun.ManagedLabelValue)
}

func desired(state pipelinerun.DesiredState) runOption {
	return withLabel(pipelinerun.DesiredStateLabelKey, string(state))
}

func withLabel(key, value string) runOption {
	return func(obj *unstructured.Unstructured) {
		labels := obj.GetLabels()
		if labels == nil {
			labels = map[string]string{}
		}
		labels[key] = value
		obj.SetLabels(labels)
	}
}

func specPending() runOption {
	return func(obj *unstructured.Unstructured) {
		_ = unstructured.SetNestedField(obj.Object, pipelinerun.SpecStatusPending, "spec", "status")
	}
}

func succeeded() runOption {
	return withConditionStatus("True")
}

func failed() runOption {
	return withConditionStatus("False")
}

func withConditionStatus(status string) runOption {
	return func(obj *unstructured.Unstructured) {
		conditions := []interface{}{
			map[string]interface{}{"type": "Succeeded", "status": status},
		}
		_ = unstructured.SetNestedSlice(obj.Object, conditions, "status", "conditions")
	}
}

func namespace(name string) *corev1.Namespace {
	return &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name}}
}

func globalLimit(max int) *queuev1alpha1.GlobalLimit {
	return &queuev1alpha1.GlobalLimit{
		ObjectMeta: metav1.ObjectMeta{Name: queuev1alpha1.GlobalLimitName},
		Spec:       queuev1alpha1.GlobalLimitSpec{MaxPipelines: max},
	}
}

func clientKey(name string) client.ObjectKey {
	return client.ObjectKey{Name: name}
}

// newFakeStore builds a store over a fake client seeded with the given
// objects.
func newFakeStore(objs ...client.Object) (*store.Store, client.Client) {
	return newFakeStoreWithInterceptors(interceptor.Funcs{}, objs...)
}

// newFakeStoreWithInterceptors allows tests to inject API failures.
func newFakeStoreWithInterceptors(funcs interceptor.Funcs, objs ...client.Object) (*store.Store, client.Client) {
	c := fake.NewClientBuilder().
		WithScheme(store.NewScheme()).
		WithObjects(objs...).
		WithInterceptorFuncs(funcs).
		Build()
	return store.New(c, 5*time.Second), c
}
