package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// ConflictColumn names the uniquely constrained event column that rejected an insert.
type ConflictColumn string

const (
	ConflictNone  ConflictColumn = "none"
	ConflictTitle ConflictColumn = "title"
	ConflictSlug  ConflictColumn = "slug"
)

// ConflictError is returned by EventRepository.Insert on a unique violation.
// Columns lists every column the store reported; it is empty when the store
// did not say which constraint failed.
type ConflictError struct {
	Columns []ConflictColumn
}

func (e *ConflictError) Error() string {
	if len(e.Columns) == 0 {
		return "unique constraint violation"
	}
	names := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		names[i] = string(c)
	}
	return "unique constraint violation on " + strings.Join(names, ", ")
}

// Has reports whether col is among the conflicting columns.
func (e *ConflictError) Has(col ConflictColumn) bool {
	for _, c := range e.Columns {
		if c == col {
			return true
		}
	}
	return false
}
