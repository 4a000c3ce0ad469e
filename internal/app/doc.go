// Package app bootstraps the tekqueue daemon.
//
// It owns the wiring between flags, the file-backed configuration, the
// cluster connection, and the queue controller. The only errors this package
// treats as fatal are startup errors: bad configuration and an unreachable
// cluster API. Everything after bootstrap is retried inside the control
// loops.
package app
