package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// GlobalLimitName is the well-known name of the singleton GlobalLimit
// instance the controller reads.
const GlobalLimitName = "tekton-queue-limit"

// GlobalLimitSpec defines the desired state of GlobalLimit
type GlobalLimitSpec struct {
	// MaxPipelines is the maximum number of pipeline runs allowed to run
	// concurrently across all matched namespaces.
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:default=10
	MaxPipelines int `json:"maxPipelines"`
}

// GlobalLimitStatus defines the observed state of GlobalLimit
type GlobalLimitStatus struct {
	// ObservedMaxPipelines is the limit value the controller last acted on.
	ObservedMaxPipelines int `json:"observedMaxPipelines,omitempty"`

	// Conditions represent the latest available observations of the limit's state.
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Cluster,shortName=gl
// +kubebuilder:printcolumn:name="MaxPipelines",type="integer",JSONPath=".spec.maxPipelines"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// GlobalLimit is the Schema for the globallimits API
type GlobalLimit struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   GlobalLimitSpec   `json:"spec,omitempty"`
	Status GlobalLimitStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// GlobalLimitList contains a list of GlobalLimit
type GlobalLimitList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []GlobalLimit `json:"items"`
}

func init() {
	SchemeBuilder.Register(&GlobalLimit{}, &GlobalLimitList{})
}
