package model

import "fmt"

// MissingRequiredTableError aborts an import when a required table's
// file is absent from the feed source and was not excluded.
type MissingRequiredTableError struct {
	Table string
}

func (e *MissingRequiredTableError) Error() string {
	return fmt.Sprintf("required table %s missing from feed", e.Table)
}

// DuplicateKeyError aborts an import when two rows of one table share
// a primary key.
type DuplicateKeyError struct {
	Table string
	Key   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q in %s", e.Key, e.Table)
}

// MalformedRowError is a warning: the row failed type coercion and
// was dropped. It never aborts an import.
type MalformedRowError struct {
	Table  string
	Line   int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s line %d: %s", e.Table, e.Line, e.Reason)
}

// UnknownFieldError rejects a query referencing a field not in the
// table's schema.
type UnknownFieldError struct {
	Table string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q in %s", e.Field, e.Table)
}

// ExportError wraps a failed agency export.
type ExportError struct {
	AgencyKey string
	Err       error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("exporting agency %q: %v", e.AgencyKey, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
