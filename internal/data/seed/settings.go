package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/transfigurr/transfigurr/internal/data"
)

// Settings seeds the settings table. A nil Rows uses the embedded defaults.
type Settings struct {
	Rows []data.Setting
}

func (s *Settings) Table() string { return data.TableSettings }

func (s *Settings) Seed(ctx context.Context, db data.Execer) error {
	rows := s.Rows
	if rows == nil {
		var err error
		if rows, err = DefaultSettings(); err != nil {
			return err
		}
	}
	for _, r := range rows {
		if err := insertKeyValue(ctx, db, data.TableSettings, r.Key, r.Value); err != nil {
			return err
		}
	}
	return nil
}

// insertKeyValue writes one row of a key/value table. Table names come from
// package constants, never from input.
func insertKeyValue(ctx context.Context, db data.Execer, table, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%s: key is required", table)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO "+table+" (id, value) VALUES (?, ?)", key, value); err != nil {
		return fmt.Errorf("insert %s %q: %w", table, key, err)
	}
	return nil
}
