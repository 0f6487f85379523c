package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lexmesh/wordloom/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "wordloom.db"

// Store is the SQLite-backed label store. All batch jobs read and write
// through it; one writer at a time is assumed.
type Store struct {
	db      *sql.DB
	dataDir string
}

// Open creates DataDir if needed, opens the database file, and initializes
// the schema. The schema DDL is idempotent, so opening an existing store
// leaves its contents untouched.
func Open(config types.Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(config.DataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create tables: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create indexes: %w", err)
		}
	}

	return &Store{db: db, dataDir: config.DataDir}, nil
}

// Close releases the database connection. Idempotent.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// DataDir returns the directory holding the database file.
func (s *Store) DataDir() string {
	return s.dataDir
}

// RowCounts returns the row count of every standard table.
func (s *Store) RowCounts() (map[string]int, error) {
	counts := make(map[string]int, len(types.StandardTableNames))
	for _, table := range types.StandardTableNames {
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s rows: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// timestamp formats t the way every table stores time columns.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
