// Package v1alpha1 contains API Schema definitions for the queue v1alpha1 API group.
//
// This package defines the GlobalLimit Custom Resource Definition, the
// singleton configuration object that sets the cluster-wide ceiling on
// concurrently running pipeline runs. The controller reads it at the start of
// every admission decision and sweep; operators mutate it to tune throughput
// at runtime without restarting the controller.
//
// # API Group: queue.tekton.dev/v1alpha1
//
// ## GlobalLimit
//
// GlobalLimit is cluster-scoped. The controller only ever looks at the
// well-known instance named "tekton-queue-limit".
//
// Example:
//
//	apiVersion: queue.tekton.dev/v1alpha1
//	kind: GlobalLimit
//	metadata:
//	  name: tekton-queue-limit
//	spec:
//	  maxPipelines: 10
//
// +kubebuilder:object:generate=true
// +groupName=queue.tekton.dev
package v1alpha1
