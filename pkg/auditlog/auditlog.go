// CLAUDE:SUMMARY SQLite journal of dropped rows: line number, repaired text, drop reason.
package auditlog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Drop is one row from the dropped_rows table.
type Drop struct {
	ID        int64
	Line      int
	Raw       string
	Reason    string
	DroppedAt int64
}

// DB journals dropped rows. It lives outside the data contract: the output
// stream never mentions drops, this table does.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the
// dropped_rows table exists.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS dropped_rows (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		line        INTEGER NOT NULL,
		raw         TEXT NOT NULL,
		reason      TEXT NOT NULL,
		dropped_at  INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create dropped_rows table: %w", err)
	}

	return &DB{db: db}, nil
}

// Close releases the SQLite connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// RecordDrop journals one dropped row. raw is the repaired (valid UTF-8)
// form of the line, so the table stays readable whatever the input did.
func (d *DB) RecordDrop(line int, raw, reason string) error {
	_, err := d.db.Exec(
		`INSERT INTO dropped_rows (line, raw, reason, dropped_at) VALUES (?, ?, ?, ?)`,
		line, raw, reason, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("record drop at line %d: %w", line, err)
	}
	return nil
}

// ListDrops returns all journaled drops ordered by insertion.
func (d *DB) ListDrops() ([]Drop, error) {
	rows, err := d.db.Query(`SELECT id, line, raw, reason, dropped_at FROM dropped_rows ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list drops: %w", err)
	}
	defer rows.Close()

	var drops []Drop
	for rows.Next() {
		var dr Drop
		if err := rows.Scan(&dr.ID, &dr.Line, &dr.Raw, &dr.Reason, &dr.DroppedAt); err != nil {
			return nil, fmt.Errorf("scan drop: %w", err)
		}
		drops = append(drops, dr)
	}
	return drops, rows.Err()
}

// Count returns the number of journaled drops.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM dropped_rows`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count drops: %w", err)
	}
	return n, nil
}
