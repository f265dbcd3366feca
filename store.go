// Package gtfsdb loads GTFS feeds into a relational store and serves
// structured queries against them. Multiple agency datasets coexist
// in one store, each tagged with its agency key.
package gtfsdb

import (
	"fmt"
	"sync"

	"github.com/urbanatlas/gtfsdb/export"
	"github.com/urbanatlas/gtfsdb/parse"
	"github.com/urbanatlas/gtfsdb/storage"
)

type Config struct {
	// Backend selects the storage engine: "sqlite" (the default)
	// or "postgres".
	Backend string

	// Path of the SQLite database file. Blank means in-memory.
	Path string

	// ConnStr is the Postgres connection string.
	ConnStr string
}

// AgencyConfig describes one feed to import: the key its rows are
// tagged with, the directory holding its CSV files, and tables to
// skip.
type AgencyConfig struct {
	AgencyKey string
	Path      string
	Exclude   []string
}

// Store is a handle to one open store. Queries are safe to issue
// concurrently; imports and exports for the same agency key are
// mutually exclusive.
type Store struct {
	mu      sync.Mutex
	storage storage.Storage
	closed  bool

	// Serializes all writes on single-writer engines.
	writeMu sync.Mutex

	agencyMu map[string]*sync.Mutex
}

func Open(cfg Config) (*Store, error) {
	var s storage.Storage
	var err error
	switch cfg.Backend {
	case "", "sqlite":
		s, err = storage.NewSQLiteStorage(storage.SQLiteConfig{Path: cfg.Path})
	case "postgres":
		s, err = storage.NewPSQLStorage(cfg.ConnStr, false)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	if err := s.CreateTables(); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{
		storage:  s,
		agencyMu: map[string]*sync.Mutex{},
	}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrNotOpen
	}
	s.closed = true
	return s.storage.Close()
}

func (s *Store) backend() (storage.Storage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrNotOpen
	}
	return s.storage, nil
}

func (s *Store) agencyLock(agencyKey string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.agencyMu[agencyKey]
	if !ok {
		mu = &sync.Mutex{}
		s.agencyMu[agencyKey] = mu
	}
	return mu
}

// Import loads one agency's feed, replacing any previous import under
// the same key. Imports for different agencies run concurrently when
// the storage engine supports it; otherwise they are serialized.
func (s *Store) Import(agency AgencyConfig) (*parse.Summary, error) {
	st, err := s.backend()
	if err != nil {
		return nil, err
	}

	mu := s.agencyLock(agency.AgencyKey)
	mu.Lock()
	defer mu.Unlock()

	if st.SerializeWrites() {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
	}

	return parse.ImportFeed(st, agency.Path, agency.Exclude, agency.AgencyKey)
}

// Export writes the agency's dataset as GTFS CSV files under destDir.
func (s *Store) Export(agencyKey string, destDir string) error {
	st, err := s.backend()
	if err != nil {
		return err
	}

	mu := s.agencyLock(agencyKey)
	mu.Lock()
	defer mu.Unlock()

	return export.ExportAgency(st, agencyKey, destDir)
}

var (
	defaultMu    sync.Mutex
	defaultStore *Store
)

// OpenDefault opens the process-wide default store. Opening while one
// is already open fails with ErrAlreadyOpen; independent handles from
// Open are unrestricted.
func OpenDefault(cfg Config) (*Store, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultStore != nil {
		return nil, ErrAlreadyOpen
	}
	s, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	defaultStore = s
	return s, nil
}

// CloseDefault closes the default store. Fails with ErrNotOpen when
// none is open.
func CloseDefault() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultStore == nil {
		return ErrNotOpen
	}
	err := defaultStore.Close()
	defaultStore = nil
	return err
}

// Default returns the default store, or nil when none is open.
func Default() *Store {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultStore
}
