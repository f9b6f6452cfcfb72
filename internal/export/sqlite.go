package export

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/denuncias-dw/internal/db"
)

// WriteSQLite recreates the database file at path and loads every table
// into it. Any failure here is fatal to the run.
func WriteSQLite(path string, tables []Table) error {
	conn, err := db.NewConnection(path)
	if err != nil {
		return err
	}
	defer conn.Close()

	for _, t := range tables {
		if err := writeTable(conn.DB, t); err != nil {
			return fmt.Errorf("failed to export table %s: %w", t.Name, err)
		}
	}

	return nil
}

func writeTable(database *sql.DB, t Table) error {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = fmt.Sprintf("%q %s", c, t.Types[i])
	}
	create := fmt.Sprintf("CREATE TABLE %q (%s)", t.Name, strings.Join(cols, ", "))
	if _, err := database.Exec(create); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(t.Columns)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %q VALUES (%s)", t.Name, placeholders))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		args := make([]any, len(row))
		for i, v := range row {
			// Empty cells in numeric columns are nulls, not zeroes
			if v == "" && t.Types[i] == "INTEGER" {
				args[i] = nil
				continue
			}
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("failed to insert row: %w", err)
		}
	}

	for _, col := range t.Indexes {
		name := fmt.Sprintf("idx_%s_%s", strings.ToLower(t.Name), col)
		index := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %q ON %q (%q)", name, t.Name, col)
		if _, err := tx.Exec(index); err != nil {
			return fmt.Errorf("failed to create index %s: %w", name, err)
		}
	}

	return tx.Commit()
}
