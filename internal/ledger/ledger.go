// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records clipping conversions in a SQLite database so batch
// and watch runs can skip unchanged clippings, and so the image manifests of
// past conversions can be exported for download.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/clipnote/pkg/types"
)

// DefaultFile is the ledger file name batch and watch use inside the
// output directory.
const DefaultFile = ".clipnote.db"

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one recorded conversion.
type Entry struct {
	ID           string    `json:"id" yaml:"id"`
	Input        string    `json:"input" yaml:"input"`
	Output       string    `json:"output" yaml:"output"`
	Title        string    `json:"title" yaml:"title"`
	ImageCount   int       `json:"image_count" yaml:"image_count"`
	InputModTime time.Time `json:"input_mod_time" yaml:"input_mod_time"`
	ConvertedAt  time.Time `json:"converted_at" yaml:"converted_at"`
}

// Ledger manages the conversion ledger database.
type Ledger struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the ledger at path, creating its directory and
// schema when they do not exist.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db, path: path, now: time.Now}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Path returns the database file path.
func (l *Ledger) Path() string {
	return l.path
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			input_path TEXT NOT NULL UNIQUE,
			output_path TEXT NOT NULL,
			title TEXT,
			image_count INTEGER NOT NULL DEFAULT 0,
			input_mod_time TEXT NOT NULL,
			converted_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS images (
			conversion_id TEXT NOT NULL REFERENCES conversions(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			source_url TEXT NOT NULL,
			local_filename TEXT NOT NULL,
			caption TEXT,
			PRIMARY KEY (conversion_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_converted_at ON conversions(converted_at)`,
	}

	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NeedsConversion reports whether input is unknown or its modification time
// differs from the recorded one.
func (l *Ledger) NeedsConversion(ctx context.Context, input string, modTime time.Time) (bool, error) {
	var stored string
	err := l.db.QueryRowContext(ctx,
		`SELECT input_mod_time FROM conversions WHERE input_path = ?`, input,
	).Scan(&stored)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("looking up %s: %w", input, err)
	}
	return stored != formatTime(modTime), nil
}

// Record stores a successful conversion, replacing any earlier record of
// the same input together with its image rows.
func (l *Ledger) Record(ctx context.Context, res types.ConversionResult, modTime time.Time) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM conversions WHERE input_path = ?`, res.Input); err != nil {
		return fmt.Errorf("deleting old record: %w", err)
	}

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO conversions (id, input_path, output_path, title, image_count, input_mod_time, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, res.Input, res.Output, res.Title, len(res.Images),
		formatTime(modTime), formatTime(l.now()),
	)
	if err != nil {
		return fmt.Errorf("inserting conversion: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO images (conversion_id, seq, source_url, local_filename, caption)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, img := range res.Images {
		if _, err := stmt.ExecContext(ctx, id, i+1, img.SourceURL, img.LocalFilename, img.Caption); err != nil {
			return fmt.Errorf("inserting image %s: %w", img.LocalFilename, err)
		}
	}

	return tx.Commit()
}

// List returns every recorded conversion, newest first.
func (l *Ledger) List(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, input_path, output_path, COALESCE(title, ''), image_count, input_mod_time, converted_at
		 FROM conversions ORDER BY converted_at DESC, input_path`)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var modTime, convertedAt string
		if err := rows.Scan(&e.ID, &e.Input, &e.Output, &e.Title, &e.ImageCount, &modTime, &convertedAt); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		e.InputModTime = parseTime(modTime)
		e.ConvertedAt = parseTime(convertedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
