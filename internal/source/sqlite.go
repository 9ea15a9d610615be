package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLiteTable is the table holding trip rows inside a SQLite dataset.
const SQLiteTable = "trips"

// ReadSQLite loads every row of the trips table. Column names match the CSV header names.
func ReadSQLite(ctx context.Context, path string) (Table, error) {
	// sql.Open would create a missing file.
	if _, err := os.Stat(path); err != nil {
		return Table{}, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Table{}, err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close for read-only dataset.
			_ = cerr
		}
	}()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %s ORDER BY rowid`, SQLiteTable))
	if err != nil {
		return Table{}, fmt.Errorf("failed to query %s: %w", SQLiteTable, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	cols, err := rows.Columns()
	if err != nil {
		return Table{}, err
	}
	table := Table{Columns: cols}
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return Table{}, err
		}
		row := make([]string, len(cols))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return Table{}, err
	}
	return table, nil
}
