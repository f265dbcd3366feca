package storage

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"

	"github.com/urbanatlas/gtfsdb/model"
)

type SQLiteConfig struct {
	// Path of the database file. Blank means in-memory.
	Path string
}

type SQLiteStorage struct {
	db *sql.DB
}

// Counter naming in-memory databases, so separate stores don't share
// one shared-cache database.
var memdbSeq int64

func NewSQLiteStorage(cfg ...SQLiteConfig) (*SQLiteStorage, error) {
	path := ""
	if len(cfg) > 0 {
		path = cfg[0].Path
	}

	sourceName := path
	if sourceName == "" {
		// database/sql pools connections, and a plain :memory:
		// database exists per connection. Shared cache keeps
		// the pool on one database.
		n := atomic.AddInt64(&memdbSeq, 1)
		sourceName = fmt.Sprintf("file:gtfsdb_mem_%d?mode=memory&cache=shared", n)
	}

	db, err := sql.Open("sqlite3", sourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) CreateTables() error {
	return createAllTables(s.db, dialectSQLite)
}

func (s *SQLiteStorage) Begin() (Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &sqlTx{tx: tx, d: dialectSQLite}, nil
}

func (s *SQLiteStorage) Query(table string, spec Spec) ([]model.Row, error) {
	return queryTable(s.db, dialectSQLite, table, spec)
}

func (s *SQLiteStorage) RowCounts(agencyKey string) (map[string]int, error) {
	return rowCounts(s.db, dialectSQLite, agencyKey)
}

// SQLite allows a single writer per database, so imports for
// different agencies are serialized by the caller.
func (s *SQLiteStorage) SerializeWrites() bool {
	return true
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
