// Package pipelinerun provides the controller's view of Tekton PipelineRun
// objects.
//
// The controller deliberately does not depend on Tekton's typed API: every
// PipelineRun is handled as an unstructured object so its spec stays an
// opaque blob that can be copied verbatim when a run is recreated. This
// package owns the GroupVersionKind constants, the queue labels, and the
// accessors that derive the controller's state model (managed marker, desired
// state, observed state) from object metadata.
package pipelinerun
