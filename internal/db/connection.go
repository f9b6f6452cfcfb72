package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Connection holds the SQLite handle used by the export sink
type Connection struct {
	DB   *sql.DB
	Path string
}

// NewConnection opens a fresh SQLite database at path, removing any
// previous file first. The sink is an output artifact: recreated from
// empty on every run, never read back.
func NewConnection(path string) (*Connection, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove previous database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Connection{DB: db, Path: path}, nil
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.DB.Close()
}
