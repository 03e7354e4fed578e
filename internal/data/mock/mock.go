package mock

import (
	"context"

	"github.com/transfigurr/transfigurr/internal/data"
)

// Seeder is a configurable seed routine (for initializer tests without real seed data).
type Seeder struct {
	TableName string
	SeedFunc  func(ctx context.Context, db data.Execer) error

	Calls int
}

// Table returns TableName.
func (m *Seeder) Table() string {
	return m.TableName
}

// Seed records the call and runs SeedFunc if set, else does nothing.
func (m *Seeder) Seed(ctx context.Context, db data.Execer) error {
	m.Calls++
	if m.SeedFunc != nil {
		return m.SeedFunc(ctx, db)
	}
	return nil
}
