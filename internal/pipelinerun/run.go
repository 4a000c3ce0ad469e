package pipelinerun

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// GVK identifies the Tekton PipelineRun resource the controller manages.
var GVK = schema.GroupVersionKind{
	Group:   "tekton.dev",
	Version: "v1",
	Kind:    "PipelineRun",
}

// ListGVK is the list kind matching GVK.
var ListGVK = schema.GroupVersionKind{
	Group:   "tekton.dev",
	Version: "v1",
	Kind:    "PipelineRunList",
}

const (
	// ManagedLabelKey marks a run as being under the queue's limit policy.
	// The marker is applied exactly once and never removed.
	ManagedLabelKey = "queue.tekton.dev/managed"

	// ManagedLabelValue is the only value ever written for ManagedLabelKey.
	ManagedLabelValue = "yes"

	// DesiredStateLabelKey records the controller's admission decision for a
	// managed run. It is the intent record the sweep compares against the
	// observed state to detect runs the platform started despite a queue
	// decision.
	DesiredStateLabelKey = "queue.tekton.dev/desired-state"

	// SpecStatusPending is the spec.status value that keeps a PipelineRun
	// from being scheduled by the pipeline platform.
	SpecStatusPending = "PipelineRunPending"
)

// DesiredState is the state the controller wants a run to end up in.
type DesiredState string

const (
	// DesiredPending means the run is queued and must not start.
	DesiredPending DesiredState = "Pending"

	// DesiredRunnable means the run holds a slot and the platform may run it.
	DesiredRunnable DesiredState = "Runnable"
)

// ObservedState is the state the pipeline platform reports for a run.
type ObservedState string

const (
	ObservedPending   ObservedState = "Pending"
	ObservedRunning   ObservedState = "Running"
	ObservedSucceeded ObservedState = "Succeeded"
	ObservedFailed    ObservedState = "Failed"
	ObservedUnknown   ObservedState = "Unknown"
)

// Terminal reports whether the state means the run has finished and can never
// occupy a slot again.
func (s ObservedState) Terminal() bool {
	return s == ObservedSucceeded || s == ObservedFailed
}

// IsManaged reports whether the run carries the managed marker.
func IsManaged(obj *unstructured.Unstructured) bool {
	return obj.GetLabels()[ManagedLabelKey] == ManagedLabelValue
}

// Desired returns the controller's recorded admission decision for a run.
// A managed run without a recorded decision is treated as Runnable: that is
// what the platform will do with it absent any intervention.
func Desired(obj *unstructured.Unstructured) DesiredState {
	if obj.GetLabels()[DesiredStateLabelKey] == string(DesiredPending) {
		return DesiredPending
	}
	return DesiredRunnable
}

// SpecStatus returns the run's spec.status field, empty when unset.
func SpecStatus(obj *unstructured.Unstructured) string {
	status, _, _ := unstructured.NestedString(obj.Object, "spec", "status")
	return status
}

// Observed derives the platform-reported state of a run.
//
// Tekton reports completion through status.conditions: the first condition's
// status is "True" for success and "False" for failure. Anything still
// in flight has an inconclusive ("Unknown") or absent condition; those runs
// are Pending when held back via spec.status, Running otherwise.
func Observed(obj *unstructured.Unstructured) ObservedState {
	if obj == nil || obj.Object == nil {
		return ObservedUnknown
	}

	conditions, found, err := unstructured.NestedSlice(obj.Object, "status", "conditions")
	if err != nil {
		return ObservedUnknown
	}
	if found && len(conditions) > 0 {
		cond, ok := conditions[0].(map[string]interface{})
		if !ok {
			return ObservedUnknown
		}
		switch cond["status"] {
		case "True":
			return ObservedSucceeded
		case "False":
			return ObservedFailed
		}
	}

	if SpecStatus(obj) == SpecStatusPending {
		return ObservedPending
	}
	return ObservedRunning
}

// New returns an empty PipelineRun object with its GVK set, ready for use
// with a controller-runtime client.
func New() *unstructured.Unstructured {
	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(GVK)
	return obj
}

// NewList returns an empty PipelineRun list with its GVK set.
func NewList() *unstructured.UnstructuredList {
	list := &unstructured.UnstructuredList{}
	list.SetGroupVersionKind(ListGVK)
	return list
}
