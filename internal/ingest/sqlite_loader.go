package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/maxw3st/spotlight/internal/walk"
)

// decodeSQLite reads the `results(id, record)` table of a record database.
// Each row becomes a property of the returned object, keyed by id in row
// order, holding the parsed JSON record.
func decodeSQLite(ctx context.Context, name string, content []byte) (any, error) {
	// The driver needs a real file; the loader may be reading from memory.
	tmp, err := os.CreateTemp("", "spotlight-*.db")
	if err != nil {
		return nil, fmt.Errorf("stage sqlite %s: %w", name, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }() // safe to ignore

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("stage sqlite %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("stage sqlite %s: %w", name, err)
	}

	root := walk.NewOrderedObject()
	err = StreamSQLite(ctx, tmp.Name(), func(id string, record any) error {
		root.Set(id, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

// StreamSQLite iterates over all records in a SQLite database, calling fn for each one.
// Only one parsed record is alive at a time, keeping memory usage constant.
func StreamSQLite(ctx context.Context, dbPath string, fn func(recordID string, record any) error) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.QueryContext(ctx, "SELECT id, record FROM results ORDER BY rowid")
	if err != nil {
		return fmt.Errorf("query results: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		parsed, err := parseOrdered([]byte(raw))
		if err != nil {
			return fmt.Errorf("parse record %s: %w", id, err)
		}
		if err := fn(id, parsed); err != nil {
			return err
		}
	}
	return rows.Err()
}
