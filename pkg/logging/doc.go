// Package logging provides the structured logging layer used throughout
// tekqueue.
//
// It wraps log/slog with a subsystem-tagged, printf-style call surface:
//
//	logging.Info("Sweeper", "Promoted %s/%s", namespace, name)
//	logging.Error("Watcher", err, "Failed to tag %s/%s", namespace, name)
//
// The subsystem string identifies the component emitting the entry (Watcher,
// Evaluator, Sweeper, Store, Bootstrap) and is attached as a structured
// attribute, so log output stays filterable without each component carrying
// its own logger handle.
//
// Init must be called once during bootstrap with the desired minimum level
// and output writer. Until then a stderr logger at Info level is active.
package logging
