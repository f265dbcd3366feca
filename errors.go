package gtfsdb

import "errors"

var (
	// ErrAlreadyOpen is returned by OpenDefault while the default
	// store is open. Reopening is never silently ignored.
	ErrAlreadyOpen = errors.New("store already open")

	// ErrNotOpen is returned by operations on a closed store.
	ErrNotOpen = errors.New("store not open")
)
