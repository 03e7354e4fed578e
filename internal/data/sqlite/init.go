package sqlite

import (
	"context"
	"log/slog"

	"github.com/transfigurr/transfigurr/internal/data/schema"
	"github.com/transfigurr/transfigurr/internal/data/seed"
	initerr "github.com/transfigurr/transfigurr/internal/errors"
)

// DefaultPath is where the application keeps its database, relative to the
// working directory.
const DefaultPath = "config/db/database.db"

// Initializer brings a database file up to the application schema and seeds
// the tracked tables the first time they are created.
type Initializer struct {
	Path     string
	Registry *schema.Registry
	Seeders  []seed.Seeder
	Logger   *slog.Logger
}

// Option configures an Initializer.
type Option func(*Initializer)

// WithRegistry replaces the default table registry.
func WithRegistry(r *schema.Registry) Option {
	return func(in *Initializer) { in.Registry = r }
}

// WithSeeders replaces the default seeders. Calling it with no seeders disables seeding.
func WithSeeders(s ...seed.Seeder) Option {
	return func(in *Initializer) { in.Seeders = append([]seed.Seeder{}, s...) }
}

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option {
	return func(in *Initializer) { in.Logger = l }
}

// New returns an Initializer for path using the application registry and seeders
// unless overridden.
func New(path string, opts ...Option) *Initializer {
	in := &Initializer{Path: path}
	for _, opt := range opts {
		opt(in)
	}
	if in.Registry == nil {
		in.Registry = schema.Default()
	}
	if in.Seeders == nil {
		in.Seeders = seed.Defaults()
	}
	if in.Logger == nil {
		in.Logger = slog.Default()
	}
	return in
}

// Report describes what one Init run changed.
type Report struct {
	Path       string
	DirCreated bool
	// Absent holds, for every seeded table, whether it was missing before the run.
	Absent  map[string]bool
	Created []string
	Seeded  []SeedResult
}

// SeedResult is the row count of a table right after it was seeded.
type SeedResult struct {
	Table string
	Rows  int64
}

// Init creates the application database at path with the default schema and
// seed data. It is safe to call multiple times.
func Init(path string) error {
	_, err := New(path).Init(context.Background())
	return err
}

// InitSchema creates the application tables at path without seeding anything.
func InitSchema(path string) error {
	_, err := New(path, WithSeeders()).Init(context.Background())
	return err
}

// Init ensures the database directory and file exist, creates every registered
// table that is missing and seeds each tracked table that did not exist before
// this call. Table creation and seeding commit together: a failing seeder leaves
// the schema as it was found.
func (in *Initializer) Init(ctx context.Context) (rep *Report, err error) {
	logger := in.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := in.Registry
	if registry == nil {
		registry = schema.New()
	}

	db, dirCreated, err := open(ctx, in.Path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			rep, err = nil, initerr.New(initerr.StageConnect, db.path, cerr)
		}
	}()
	if dirCreated {
		logger.Info("created database directory", "path", db.path)
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, initerr.New(initerr.StageConnect, db.path, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	existing, err := listTables(ctx, tx)
	if err != nil {
		return nil, initerr.New(initerr.StageInspect, db.path, err)
	}
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}
	logger.Debug("inspected schema", "path", db.path, "tables", existing)

	rep = &Report{Path: db.path, DirCreated: dirCreated, Absent: make(map[string]bool, len(in.Seeders))}
	for _, s := range in.Seeders {
		rep.Absent[s.Table()] = !present[s.Table()]
	}
	for _, name := range registry.Names() {
		if !present[name] {
			rep.Created = append(rep.Created, name)
		}
	}

	if err := registry.CreateAll(ctx, tx); err != nil {
		return nil, initerr.New(initerr.StageSchema, db.path, err)
	}

	for _, s := range in.Seeders {
		table := s.Table()
		if !rep.Absent[table] {
			continue
		}
		if err := s.Seed(ctx, tx); err != nil {
			return nil, initerr.New(initerr.StageSeed, table, err)
		}
		n, err := countRows(ctx, tx, table)
		if err != nil {
			return nil, initerr.New(initerr.StageSeed, table, err)
		}
		rep.Seeded = append(rep.Seeded, SeedResult{Table: table, Rows: n})
	}

	if err := tx.Commit(); err != nil {
		return nil, initerr.New(initerr.StageCommit, db.path, err)
	}
	committed = true

	if len(rep.Created) > 0 {
		logger.Info("created tables", "path", db.path, "tables", rep.Created)
	}
	for _, r := range rep.Seeded {
		logger.Info("seeded table", "table", r.Table, "rows", r.Rows)
	}
	return rep, nil
}

