package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/urbanatlas/gtfsdb/model"
	"github.com/urbanatlas/gtfsdb/schema"
)

type PSQLStorage struct {
	db *sql.DB
}

// Creates a new Postgres Storage using the provided connection string.
//
// If clearDB is true, all GTFS tables are dropped on startup. You
// probably only want this for testing.
func NewPSQLStorage(connStr string, clearDB bool) (*PSQLStorage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if clearDB {
		for _, name := range schema.AllTables() {
			_, err = db.Exec("DROP TABLE IF EXISTS " + name)
			if err != nil {
				return nil, fmt.Errorf("clearing db: %w", err)
			}
		}
	}

	return &PSQLStorage{db: db}, nil
}

func (s *PSQLStorage) CreateTables() error {
	return createAllTables(s.db, dialectPostgres)
}

func (s *PSQLStorage) Begin() (Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &sqlTx{tx: tx, d: dialectPostgres}, nil
}

func (s *PSQLStorage) Query(table string, spec Spec) ([]model.Row, error) {
	return queryTable(s.db, dialectPostgres, table, spec)
}

func (s *PSQLStorage) RowCounts(agencyKey string) (map[string]int, error) {
	return rowCounts(s.db, dialectPostgres, agencyKey)
}

// Postgres handles concurrent writers; imports for disjoint agencies
// can run in parallel.
func (s *PSQLStorage) SerializeWrites() bool {
	return false
}

func (s *PSQLStorage) Close() error {
	return s.db.Close()
}
