package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/transfigurr/transfigurr/internal/data"
)

// Profiles seeds the profiles table. A nil Rows uses the embedded defaults.
type Profiles struct {
	Rows []data.Profile
}

func (s *Profiles) Table() string { return data.TableProfiles }

// Seed inserts one row per profile, list fields stored as JSON arrays.
func (s *Profiles) Seed(ctx context.Context, db data.Execer) error {
	rows := s.Rows
	if rows == nil {
		var err error
		if rows, err = DefaultProfiles(); err != nil {
			return err
		}
	}
	for i, p := range rows {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("profile %d: name is required", i)
		}
		var id any
		if p.ID > 0 {
			id = p.ID
		}
		_, err := db.ExecContext(ctx,
			`INSERT INTO profiles (
			   id, name, container, extension, codec, encoder, speed,
			   flags, codecs, audio_languages, subtitle_languages,
			   all_audio_tracks, all_subtitle_tracks,
			   map_untagged_audio_tracks, map_untagged_subtitle_tracks
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, p.Name, p.Container, p.Extension, p.Codec, p.Encoder, p.Speed,
			jsonList(p.Flags), jsonList(p.Codecs), jsonList(p.AudioLanguages), jsonList(p.SubtitleLanguages),
			boolInt(p.AllAudioTracks), boolInt(p.AllSubtitleTracks),
			boolInt(p.MapUntaggedAudioTracks), boolInt(p.MapUntaggedSubtitleTracks),
		)
		if err != nil {
			return fmt.Errorf("insert profile %q: %w", p.Name, err)
		}
	}
	return nil
}

func jsonList(v []string) string {
	if len(v) == 0 {
		return "[]"
	}
	// []string always marshals
	b, _ := json.Marshal(v)
	return string(b)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
