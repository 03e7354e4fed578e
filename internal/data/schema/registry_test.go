package schema

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		out = append(out, name)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestDefault_Order(t *testing.T) {
	r := Default()
	require.Equal(t, []string{"system", "history", "episode", "season", "series", "settings", "profiles"}, r.Names())
	require.Equal(t, 7, r.Len())
}

func TestDefault_DDLIsIdempotent(t *testing.T) {
	r := Default()
	for _, name := range r.Names() {
		tbl, ok := r.Lookup(name)
		require.True(t, ok)
		require.Contains(t, tbl.DDL, "CREATE TABLE IF NOT EXISTS "+name+" ")
	}
}

func TestRegister_SameNameDoesNotDuplicate(t *testing.T) {
	r := New(
		Table{Name: "a", DDL: "CREATE TABLE IF NOT EXISTS a (id INTEGER)"},
		Table{Name: "b", DDL: "CREATE TABLE IF NOT EXISTS b (id INTEGER)"},
	)
	r.Register(Table{Name: "a", DDL: "CREATE TABLE IF NOT EXISTS a (id INTEGER, v TEXT)"})

	require.Equal(t, []string{"a", "b"}, r.Names())
	tbl, ok := r.Lookup("a")
	require.True(t, ok)
	require.Contains(t, tbl.DDL, "v TEXT")
}

func TestRegister_ZeroValueRegistry(t *testing.T) {
	var r Registry
	r.Register(Table{Name: "x", DDL: "CREATE TABLE IF NOT EXISTS x (id INTEGER)"})
	require.Equal(t, []string{"x"}, r.Names())
}

func TestLookup_Missing(t *testing.T) {
	_, ok := Default().Lookup("movies")
	require.False(t, ok)
}

func TestCreateAll_CreatesEveryTable(t *testing.T) {
	db := openInMemoryDB(t)
	require.NoError(t, Default().CreateAll(context.Background(), db))
	require.ElementsMatch(t,
		[]string{"profiles", "settings", "system", "history", "episode", "season", "series"},
		tableNames(t, db))
}

func TestCreateAll_Twice(t *testing.T) {
	db := openInMemoryDB(t)
	ctx := context.Background()
	r := Default()
	require.NoError(t, r.CreateAll(ctx, db))
	_, err := db.Exec("INSERT INTO settings (id, value) VALUES ('theme', 'dark')")
	require.NoError(t, err)

	require.NoError(t, r.CreateAll(ctx, db))

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&n))
	require.Equal(t, 1, n, "existing rows survive a second CreateAll")
}

func TestCreateAll_ToleratesAlreadyExists(t *testing.T) {
	db := openInMemoryDB(t)
	_, err := db.Exec("CREATE TABLE items (id INTEGER)")
	require.NoError(t, err)

	r := New(Table{Name: "items", DDL: "CREATE TABLE items (id INTEGER)"})
	require.NoError(t, r.CreateAll(context.Background(), db))
}

func TestCreateAll_BadDDL(t *testing.T) {
	db := openInMemoryDB(t)
	r := New(Table{Name: "things", DDL: "CREAT TABLE things (id INTEGER)"})
	err := r.CreateAll(context.Background(), db)
	require.Error(t, err)
	require.Contains(t, err.Error(), "create table things")
}

func TestCreateAll_CanceledContext(t *testing.T) {
	db := openInMemoryDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Default().CreateAll(ctx, db)
	require.True(t, errors.Is(err, context.Canceled))
	require.Empty(t, tableNames(t, db))
}

func TestLoad_FromMapFS(t *testing.T) {
	fsys := fstest.MapFS{
		"defs/a.sql": &fstest.MapFile{Data: []byte("CREATE TABLE IF NOT EXISTS a (id INTEGER);\n")},
		"defs/b.sql": &fstest.MapFile{Data: []byte("CREATE TABLE IF NOT EXISTS b (id INTEGER);")},
	}
	r, err := Load(fsys, "defs", "b", "a")
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, r.Names())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "", "nope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "read table nope")
}

func TestLoad_EmptyDefinition(t *testing.T) {
	fsys := fstest.MapFS{"blank.sql": &fstest.MapFile{Data: []byte("  \n")}}
	_, err := Load(fsys, "", "blank")
	require.EqualError(t, err, "table blank: empty definition")
}

func TestIsAlreadyExistsError(t *testing.T) {
	require.True(t, IsAlreadyExistsError(errors.New("SQL logic error: table items already exists (1)")))
	require.True(t, IsAlreadyExistsError(errors.New("duplicate column name: v")))
	require.False(t, IsAlreadyExistsError(errors.New("no such table: x")))
}
