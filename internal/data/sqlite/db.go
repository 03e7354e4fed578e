package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/transfigurr/transfigurr/internal/data"
	initerr "github.com/transfigurr/transfigurr/internal/errors"

	_ "modernc.org/sqlite"
)

// Connection parameters: wait up to 5s for a competing writer, enforce foreign
// keys, and take the write lock when a transaction begins so two initializers
// cannot both observe a table as missing.
const dsnParams = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate"

// DB is a single exclusively owned connection to the application database.
type DB struct {
	conn *sql.DB
	path string
}

// TableStatus is the row count of one table.
type TableStatus struct {
	Name string `json:"name"`
	Rows int64  `json:"rows"`
}

// Status summarizes the database file and its tables.
type Status struct {
	Path   string        `json:"path"`
	Size   int64         `json:"size"`
	Tables []TableStatus `json:"tables"`
}

// Open opens the SQLite database at path, creating the parent directory and the
// file if they do not exist.
func Open(ctx context.Context, path string) (*DB, error) {
	db, _, err := open(ctx, path)
	return db, err
}

func open(ctx context.Context, path string) (*DB, bool, error) {
	if strings.TrimSpace(path) == "" {
		return nil, false, initerr.New(initerr.StageConnect, "", errors.New("storage path is required"))
	}
	cleanPath := filepath.Clean(path)
	created, err := ensureDir(filepath.Dir(cleanPath))
	if err != nil {
		return nil, false, initerr.New(initerr.StageDirectory, filepath.Dir(cleanPath), err)
	}
	conn, err := sql.Open("sqlite", cleanPath+"?"+dsnParams)
	if err != nil {
		return nil, created, initerr.New(initerr.StageConnect, cleanPath, err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)
	// sql.Open is lazy; Ping creates the file.
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, created, initerr.New(initerr.StageConnect, cleanPath, err)
	}
	return &DB{conn: conn, path: cleanPath}, created, nil
}

// ensureDir creates dir and any missing parents. It reports whether it had to
// create anything; a directory created concurrently by someone else is not an error.
func ensureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s is not a directory", dir)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	return true, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// DB returns the underlying *sql.DB.
func (db *DB) DB() *sql.DB {
	return db.conn
}

// Path returns the cleaned database file path.
func (db *DB) Path() string {
	return db.path
}

// TableNames returns user tables sorted by name. SQLite internal tables are excluded.
func (db *DB) TableNames(ctx context.Context) ([]string, error) {
	return listTables(ctx, db.conn)
}

// CountRows returns the number of rows in table.
func (db *DB) CountRows(ctx context.Context, table string) (int64, error) {
	return countRows(ctx, db.conn, table)
}

// Status returns the file size and the row count of every table.
func (db *DB) Status(ctx context.Context) (*Status, error) {
	st := &Status{Path: db.path}
	if info, err := os.Stat(db.path); err == nil {
		st.Size = info.Size()
	}
	names, err := db.TableNames(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		n, err := db.CountRows(ctx, name)
		if err != nil {
			return nil, err
		}
		st.Tables = append(st.Tables, TableStatus{Name: name, Rows: n})
	}
	return st, nil
}

func listTables(ctx context.Context, q data.Execer) ([]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite\_%' ESCAPE '\' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func countRows(ctx context.Context, q data.Execer, table string) (int64, error) {
	var n int64
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
