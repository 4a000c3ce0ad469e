package pipelinerun

import (
	"fmt"

	"github.com/google/uuid"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// maxBaseNameLength keeps the successor name inside the 63-character object
// name budget once the "-q" suffix and unique token are appended.
const maxBaseNameLength = 50

// Successor builds the replacement object for a run that was started by the
// platform despite a queue decision. The spec is carried over verbatim except
// for spec.status; all system-assigned metadata, the previous execution
// status, and the queue labels are stripped so the successor re-enters at the
// watcher stage as a brand-new, unmanaged run with a fresh creation
// timestamp, which places it at the back of the FIFO order.
func Successor(original *unstructured.Unstructured) *unstructured.Unstructured {
	obj := original.DeepCopy()

	unstructured.RemoveNestedField(obj.Object, "metadata", "resourceVersion")
	unstructured.RemoveNestedField(obj.Object, "metadata", "uid")
	unstructured.RemoveNestedField(obj.Object, "metadata", "creationTimestamp")
	unstructured.RemoveNestedField(obj.Object, "metadata", "generation")
	unstructured.RemoveNestedField(obj.Object, "metadata", "managedFields")
	unstructured.RemoveNestedField(obj.Object, "metadata", "ownerReferences")
	unstructured.RemoveNestedField(obj.Object, "status")
	unstructured.RemoveNestedField(obj.Object, "spec", "status")

	labels := obj.GetLabels()
	if labels != nil {
		delete(labels, ManagedLabelKey)
		delete(labels, DesiredStateLabelKey)
		obj.SetLabels(labels)
	}

	obj.SetName(SuccessorName(original.GetName()))
	return obj
}

// SuccessorName derives a fresh, unique name from the original run's name.
func SuccessorName(name string) string {
	base := name
	if len(base) > maxBaseNameLength {
		base = base[:maxBaseNameLength]
	}
	return fmt.Sprintf("%s-q%s", base, uuid.NewString()[:8])
}
