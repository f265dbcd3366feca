// Package storage provides the relational store GTFS feeds are
// loaded into: table creation from the schema registry, transactional
// bulk writes scoped to one agency, and dynamic filtered reads.
package storage

import (
	"github.com/urbanatlas/gtfsdb/model"
)

type Storage interface {
	// Creates every table in the schema registry, plus indexes.
	// Idempotent.
	CreateTables() error

	// Begins a write transaction. An import runs entirely inside
	// one transaction: either all of an agency's rows become
	// visible, or none do.
	Begin() (Tx, error)

	// Retrieves rows from a table. An empty agency key spans all
	// agencies. See Spec for filter semantics.
	Query(table string, spec Spec) ([]model.Row, error)

	// Per-table row counts for one agency. Tables with zero rows
	// are omitted.
	RowCounts(agencyKey string) (map[string]int, error)

	// Reports whether the engine requires writes to be serialized
	// across agencies (single-writer engines like SQLite).
	SerializeWrites() bool

	Close() error
}

// Tx is a write transaction. Uncommitted transactions must be rolled
// back; Rollback after Commit is a no-op.
type Tx interface {
	// Deletes all rows tagged with the agency key, in every table.
	DeleteAgency(agencyKey string) error

	// Appends rows to a table, tagged with the agency key.
	BulkInsert(table string, agencyKey string, rows []model.Row) error

	Commit() error
	Rollback() error
}

// Spec describes one read: which agency's rows, an equality/IN/IS
// NULL filter, a field projection (empty means all columns) and a
// sort order (ties broken by insertion order).
type Spec struct {
	AgencyKey string
	Where     model.Where
	Fields    []string
	OrderBy   model.OrderBy
}
