package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"cmdhandler/internal/library"

	_ "modernc.org/sqlite"
)

// Store is the durable, deduplicated set of command texts.
// One Store (and one SQLite connection) is opened per session.
type Store struct {
	path string
	db   *sql.DB
}

// Open opens or creates the SQLite file at path and ensures the schema exists.
// Opening an existing store is idempotent.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, &PersistenceError{Op: "open", Err: errors.New("empty store path")}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}
	// data_version is per connection; keep exactly one.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, &PersistenceError{Op: "open", Err: err}
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, &PersistenceError{Op: "migrate", Err: err}
	}
	return &Store{path: path, db: db}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func migrate(ctx context.Context, db *sql.DB) error {
	// Databases written by the first version of the tool named the column "item".
	cols, err := tableColumns(ctx, db, "items")
	if err != nil {
		return err
	}
	if cols["item"] && !cols["text"] {
		if _, err := db.ExecContext(ctx, `ALTER TABLE items RENAME COLUMN item TO text`); err != nil {
			return err
		}
	}

	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY,
		text TEXT NOT NULL,
		UNIQUE(text) ON CONFLICT REPLACE
	);`)
	return err
}

func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// normalize trims text and rejects blanks.
func normalize(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", &ValidationError{Reason: "empty command"}
	}
	return t, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insert drops any row holding text before inserting it, so a repeated text
// always ends up with the newest id.
func insert(ctx context.Context, x execer, text string) error {
	if _, err := x.ExecContext(ctx, `DELETE FROM items WHERE text = ?`, text); err != nil {
		return err
	}
	_, err := x.ExecContext(ctx, `INSERT INTO items(text) VALUES(?)`, text)
	return err
}

// Add inserts text. An existing row with the same text is replaced and the
// text moves to the top of the listing.
func (s *Store) Add(ctx context.Context, text string) error {
	t, err := normalize(text)
	if err != nil {
		return err
	}
	return s.inTx(ctx, "add", func(tx *sql.Tx) error {
		return insert(ctx, tx, t)
	})
}

// Delete removes the item whose text matches exactly. Absent text is a no-op.
func (s *Store) Delete(ctx context.Context, text string) error {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE text = ?`, t); err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	return nil
}

// Replace deletes oldText and inserts newText as one unit.
func (s *Store) Replace(ctx context.Context, oldText, newText string) error {
	n, err := normalize(newText)
	if err != nil {
		return err
	}
	return s.inTx(ctx, "replace", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE text = ?`, strings.TrimSpace(oldText)); err != nil {
			return err
		}
		return insert(ctx, tx, n)
	})
}

// List returns every text, newest (highest id) first.
func (s *Store) List(ctx context.Context) (library.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT text FROM items ORDER BY id DESC`)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	defer rows.Close()

	out := library.Snapshot{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, &PersistenceError{Op: "list", Err: err}
		}
		out = append(out, text)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	return out, nil
}

// Filter lists the store and applies library.Filter.
func (s *Store) Filter(ctx context.Context, query string) (library.Snapshot, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return library.Filter(all, query), nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, &PersistenceError{Op: "count", Err: err}
	}
	return n, nil
}

// SeedIfEmpty inserts defaults, in order, when the store has no items.
// It reports whether anything was seeded.
func (s *Store) SeedIfEmpty(ctx context.Context, defaults []string) (bool, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	seeded := false
	err = s.inTx(ctx, "seed", func(tx *sql.Tx) error {
		for _, d := range defaults {
			t, err := normalize(d)
			if err != nil {
				continue
			}
			if err := insert(ctx, tx, t); err != nil {
				return err
			}
			seeded = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}

// ReplaceAllFrom clears the store and inserts lines in order. Blank lines are
// skipped; when a text repeats, the last occurrence wins the newest id.
func (s *Store) ReplaceAllFrom(ctx context.Context, lines []string) error {
	return s.inTx(ctx, "replace all", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
			return err
		}
		for _, l := range lines {
			t, err := normalize(l)
			if err != nil {
				continue
			}
			if err := insert(ctx, tx, t); err != nil {
				return err
			}
		}
		return nil
	})
}

// DataVersion changes whenever another connection commits to the database.
// Commits made through this Store leave it unchanged.
func (s *Store) DataVersion(ctx context.Context) (int64, error) {
	var v int64
	if err := s.db.QueryRowContext(ctx, `PRAGMA data_version`).Scan(&v); err != nil {
		return 0, &PersistenceError{Op: "data version", Err: err}
	}
	return v, nil
}

func (s *Store) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return err
		}
		return &PersistenceError{Op: op, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}
