// Sentinel errors shared across repositories.  They let handlers
// distinguish failure scenarios without string matching: ErrForbidden
// maps to HTTP 403, ErrConflict to 409, ErrNoChange to a no-op
// update.  Absence of a single row is always signalled with
// sql.ErrNoRows from the query itself.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on
// a resource owned by someone else.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because
// of existing state, such as reserving a listing that is no longer
// available or reviewing the same listing twice.
var ErrConflict = errors.New("conflict")

// ErrNoChange indicates a partial update carried no fields.
var ErrNoChange = errors.New("no change")
