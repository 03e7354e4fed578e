// Package seed inserts the default rows of the tracked tables.
package seed

import (
	"context"
	"embed"
	"fmt"

	"github.com/transfigurr/transfigurr/internal/data"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Seeder populates one freshly created table with its default rows.
// Implementations assume the table exists and is empty.
type Seeder interface {
	Table() string
	Seed(ctx context.Context, db data.Execer) error
}

// Defaults returns the seeders of the tracked tables in the order they run.
func Defaults() []Seeder {
	return []Seeder{&Profiles{}, &Settings{}, &System{}}
}

// DefaultProfiles returns the embedded default profiles.
func DefaultProfiles() ([]data.Profile, error) {
	return load[data.Profile]("profiles.yaml")
}

// DefaultSettings returns the embedded default settings.
func DefaultSettings() ([]data.Setting, error) {
	return load[data.Setting]("settings.yaml")
}

// DefaultSystem returns the embedded default system rows. The generated
// instance_id row is not included.
func DefaultSystem() ([]data.SystemEntry, error) {
	return load[data.SystemEntry]("system.yaml")
}

func load[T any](name string) ([]T, error) {
	b, err := defaultsFS.ReadFile("defaults/" + name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var rows []T
	if err := yaml.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return rows, nil
}
