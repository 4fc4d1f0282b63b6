// Package apperr defines sentinel errors shared across service boundaries.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")

	// ErrStaleRevision marks an annotation or suggestion result that was
	// computed against a document revision that has since moved on. Callers
	// discard the result; it is never surfaced to the user.
	ErrStaleRevision = errors.New("stale revision")

	// ErrExportEncoding marks an export that could not be encoded. Distinct
	// from other failures so the caller can notify the user instead of
	// delivering a corrupt artifact.
	ErrExportEncoding = errors.New("export encoding failed")
)
