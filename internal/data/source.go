package data

import (
	"context"
	"database/sql"
)

// Execer is the subset of *sql.DB and *sql.Tx used by schema creation and seeding,
// so the same code runs inside or outside a transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tracked table names. These are the tables that receive default rows the first
// time they are created.
const (
	TableProfiles = "profiles"
	TableSettings = "settings"
	TableSystem   = "system"
)

// Profile is an encoding profile: the target container/codec and the source
// codecs it applies to.
type Profile struct {
	ID                        int      `yaml:"id" json:"id"`
	Name                      string   `yaml:"name" json:"name"`
	Container                 string   `yaml:"container" json:"container"`
	Extension                 string   `yaml:"extension" json:"extension"`
	Codec                     string   `yaml:"codec" json:"codec"`
	Encoder                   string   `yaml:"encoder" json:"encoder"`
	Speed                     string   `yaml:"speed" json:"speed"`
	Flags                     []string `yaml:"flags" json:"flags"`
	Codecs                    []string `yaml:"codecs" json:"codecs"`
	AudioLanguages            []string `yaml:"audio_languages" json:"audio_languages"`
	SubtitleLanguages         []string `yaml:"subtitle_languages" json:"subtitle_languages"`
	AllAudioTracks            bool     `yaml:"all_audio_tracks" json:"all_audio_tracks"`
	AllSubtitleTracks         bool     `yaml:"all_subtitle_tracks" json:"all_subtitle_tracks"`
	MapUntaggedAudioTracks    bool     `yaml:"map_untagged_audio_tracks" json:"map_untagged_audio_tracks"`
	MapUntaggedSubtitleTracks bool     `yaml:"map_untagged_subtitle_tracks" json:"map_untagged_subtitle_tracks"`
}

// Setting is one user-facing key/value setting.
type Setting struct {
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}

// SystemEntry is one key/value row of runtime system state.
type SystemEntry struct {
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}
