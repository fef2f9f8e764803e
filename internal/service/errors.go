// Package service implements Otokogi's application operations: recording
// round outcomes, recomputing statistics, migrating legacy snapshots, and
// owner-scoped CRUD for events and participants.
//
// Every operation takes an already-authenticated owner id and validated
// transport-level input, and returns plain data structures or one of the
// typed failures below. The HTTP layer maps the failures to status codes.
package service

import "errors"

var (
	// ErrNotFound means a referenced event or participant does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the caller does not own the resource.
	ErrForbidden = errors.New("caller does not own this resource")

	// ErrInvalidArgument means the input was malformed: negative amounts,
	// an empty outcome batch, an unparseable date.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTransactionFailed means a multi-write operation aborted and was
	// fully rolled back; no partial effect is observable.
	ErrTransactionFailed = errors.New("transaction failed")
)
