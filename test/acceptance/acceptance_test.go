package acceptance

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/transfigurr/transfigurr/internal/data/seed"
	"github.com/transfigurr/transfigurr/internal/data/sqlite"
	"github.com/transfigurr/transfigurr/test/fixtures"
)

func TestE2E_EmptyEnvironment(t *testing.T) {
	path := fixtures.DBPath(t)
	require.NoError(t, sqlite.Init(path))

	db, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	names, err := db.TableNames(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"profiles", "settings", "system", "history", "episode", "season", "series"}, names)

	profiles, err := seed.DefaultProfiles()
	require.NoError(t, err)
	settings, err := seed.DefaultSettings()
	require.NoError(t, err)
	system, err := seed.DefaultSystem()
	require.NoError(t, err)

	ctx := context.Background()
	for table, want := range map[string]int{
		"profiles": len(profiles),
		"settings": len(settings),
		"system":   len(system) + 1, // instance_id
	} {
		n, err := db.CountRows(ctx, table)
		require.NoError(t, err)
		require.Equal(t, int64(want), n, table)
	}
}

func TestE2E_RelativeDefaultLocation(t *testing.T) {
	dir := t.TempDir()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, sqlite.Init(sqlite.DefaultPath))

	_, err := os.Stat(filepath.Join(dir, "config", "db", "database.db"))
	require.NoError(t, err)
}
