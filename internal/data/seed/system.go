package seed

import (
	"context"

	"github.com/google/uuid"
	"github.com/transfigurr/transfigurr/internal/data"
)

// InstanceIDKey is the system row identifying this installation.
const InstanceIDKey = "instance_id"

// System seeds the system table. A nil Rows uses the embedded defaults.
// An instance_id row is always added; NewID overrides the UUID generator.
type System struct {
	Rows  []data.SystemEntry
	NewID func() string
}

func (s *System) Table() string { return data.TableSystem }

func (s *System) Seed(ctx context.Context, db data.Execer) error {
	rows := s.Rows
	if rows == nil {
		var err error
		if rows, err = DefaultSystem(); err != nil {
			return err
		}
	}
	newID := s.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	if err := insertKeyValue(ctx, db, data.TableSystem, InstanceIDKey, newID()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := insertKeyValue(ctx, db, data.TableSystem, r.Key, r.Value); err != nil {
			return err
		}
	}
	return nil
}
