// Package queue implements the global concurrency queue for pipeline runs.
//
// Three cooperating pieces operate over the same shared cluster state:
//
//   - The Watcher observes PipelineRun create events in namespaces matching
//     the configured glob patterns and tags new, not-yet-managed runs with the
//     managed marker. Runs that are already Pending when first seen are
//     templates and are permanently ignored.
//   - The Evaluator makes the first admission decision for a freshly tagged
//     run: admit it (leave it runnable) when the running count is below the
//     global limit, or force it to Pending when the limit is reached.
//   - The Sweeper re-derives the whole queue from live state on a fixed
//     interval, deletes and recreates runs the platform started despite a
//     queue decision, and promotes the oldest queued runs into freed slots.
//
// There is no queue data structure: the backlog is recomputed from object
// metadata on every pass, which makes the controller indifferent to restarts
// and missed watch events. The next sweep's full list is the durability
// backstop for every decision.
package queue
