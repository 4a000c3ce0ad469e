// Package store is the data-access layer between the queue controller and the
// Kubernetes API.
//
// It wraps a controller-runtime client with the handful of operations the
// controller needs: cluster-wide PipelineRun listing, namespace enumeration,
// GlobalLimit reads, queue-label updates, spec.status enforcement, and the
// delete/create pair used for race correction. Every mutation is idempotent
// and tolerant of "not found" and "already exists" outcomes, because the
// watcher, the sweeper, and the platform itself all race on the same objects.
// Label updates go through optimistic-concurrency retries with a re-fetch on
// conflict; each call is bounded by the store's request timeout.
package store
