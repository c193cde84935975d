// Package tzerr collects the sentinel error kinds shared across the
// rules-engine packages, so callers can use errors.Is regardless of which
// package produced the wrapped error.
package tzerr

import "errors"

// Sentinel error kinds. Each is emitted at the boundary names;
// packages wrap these with fmt.Errorf("...: %w", ...) to attach context.
var (
	// ErrZoneNotFound is returned when a collaborator reports NotFound, or
	// a zone id is otherwise unknown.
	ErrZoneNotFound = errors.New("tzrules: zone not found")

	// ErrInvalidZone is returned when decoded bytes or fields do not
	// satisfy the rule model's format invariants.
	ErrInvalidZone = errors.New("tzrules: invalid zone")

	// ErrSecurityError is returned when a collaborator reports a
	// permission failure.
	ErrSecurityError = errors.New("tzrules: security error")

	// ErrInvalidTime is returned when Convert is asked to convert a wall
	// time that falls in a DST invalid window without
	// NoThrowOnInvalidTime set.
	ErrInvalidTime = errors.New("tzrules: invalid time")

	// ErrNotAmbiguous is returned by GetAmbiguousOffsets when the input
	// time is not ambiguous.
	ErrNotAmbiguous = errors.New("tzrules: time is not ambiguous")

	// ErrSerialization is returned when the textual codec cannot
	// round-trip a value.
	ErrSerialization = errors.New("tzrules: serialization error")

	// ErrTagMismatch is returned when Convert receives a tagged time
	// whose tag disagrees with the source zone's designation.
	ErrTagMismatch = errors.New("tzrules: tag mismatch")
)
