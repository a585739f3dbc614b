// ABOUTME: SQLite RecordStore backend with object-store semantics.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the structured-store backend: one table per named store,
// each row keyed by the record's id.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// OpenSQLite opens or creates the record database at the given path.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath}

	if err := s.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

// configurePragmas sets up SQLite for safe concurrent access.
func (s *SQLiteStore) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// initSchema creates one table per named store. Store names are the fixed
// AllStores set, never caller input.
func (s *SQLiteStore) initSchema() error {
	for _, name := range AllStores {
		ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %q (
			id TEXT PRIMARY KEY,
			data BLOB NOT NULL
		);`, "records_"+name)
		if _, err := s.db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

func tableName(storeName string) string {
	return fmt.Sprintf("%q", "records_"+storeName)
}

// Put stores a record, replacing any previous value under the same key.
func (s *SQLiteStore) Put(ctx context.Context, storeName, key string, record []byte) error {
	if err := validStore(storeName); err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`, tableName(storeName))
	if _, err := s.db.ExecContext(ctx, query, key, record); err != nil {
		return fmt.Errorf("put %s/%s: %w: %v", storeName, key, ErrPersistence, err)
	}
	return nil
}

// Delete removes a record. Absent keys are ignored.
func (s *SQLiteStore) Delete(ctx context.Context, storeName, key string) error {
	if err := validStore(storeName); err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", tableName(storeName))
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete %s/%s: %w: %v", storeName, key, ErrPersistence, err)
	}
	return nil
}

// GetAll returns every record body in the store in id order.
func (s *SQLiteStore) GetAll(ctx context.Context, storeName string) ([][]byte, error) {
	if err := validStore(storeName); err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT data FROM %s ORDER BY id", tableName(storeName))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w: %v", storeName, ErrPersistence, err)
	}
	defer rows.Close()

	var records [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w: %v", storeName, ErrPersistence, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get all %s: %w: %v", storeName, ErrPersistence, err)
	}
	return records, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
