// Package schema holds the ordered set of table definitions the application
// database is built from.
package schema

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/transfigurr/transfigurr/internal/data"
)

//go:embed tables/*.sql
var tablesFS embed.FS

// Application tables in creation order.
var defaultTables = []string{
	data.TableSystem,
	"history",
	"episode",
	"season",
	"series",
	data.TableSettings,
	data.TableProfiles,
}

// Table is one table definition. DDL must be safe to run against a database
// where the table already exists.
type Table struct {
	Name string
	DDL  string
}

// Registry is an ordered collection of table definitions keyed by name.
type Registry struct {
	tables []Table
	index  map[string]int
}

// New returns a registry holding tables in the given order.
func New(tables ...Table) *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, t := range tables {
		r.Register(t)
	}
	return r
}

// Default returns the registry of application tables backed by the embedded DDL.
func Default() *Registry {
	r, err := Load(tablesFS, "tables", defaultTables...)
	if err != nil {
		// embedded files are fixed at build time
		panic(err)
	}
	return r
}

// Load builds a registry from one <name>.sql file per table under root.
func Load(fsys fs.FS, root string, names ...string) (*Registry, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	r := New()
	for _, name := range names {
		b, err := fs.ReadFile(fsys, path.Join(root, name+".sql"))
		if err != nil {
			return nil, fmt.Errorf("read table %s: %w", name, err)
		}
		ddl := strings.TrimSpace(string(b))
		if ddl == "" {
			return nil, fmt.Errorf("table %s: empty definition", name)
		}
		r.Register(Table{Name: name, DDL: ddl})
	}
	return r, nil
}

// Register adds t. A table registered under an existing name replaces the
// earlier definition in place and keeps its position.
func (r *Registry) Register(t Table) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[t.Name]; ok {
		r.tables[i] = t
		return
	}
	r.index[t.Name] = len(r.tables)
	r.tables = append(r.tables, t)
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Table, bool) {
	i, ok := r.index[name]
	if !ok {
		return Table{}, false
	}
	return r.tables[i], true
}

// Names returns table names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.tables))
	for i, t := range r.tables {
		out[i] = t.Name
	}
	return out
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	return len(r.tables)
}

// CreateAll runs every definition in registration order. Tables that already
// exist are left unchanged.
func (r *Registry) CreateAll(ctx context.Context, db data.Execer) error {
	for _, t := range r.tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, t.DDL); err != nil {
			if IsAlreadyExistsError(err) {
				continue
			}
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
	}
	return nil
}

// IsAlreadyExistsError reports whether err indicates idempotent DDL success.
func IsAlreadyExistsError(err error) bool {
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") || strings.Contains(value, "duplicate column name")
}
