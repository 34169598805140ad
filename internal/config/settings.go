package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/handiism/tracklist/internal/audio"
	"github.com/handiism/tracklist/internal/playlist"
	"github.com/handiism/tracklist/internal/store"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TRACKLIST_"

// Settings holds all configuration options.
type Settings struct {
	// Persistence
	PlaylistFile       string `json:"playlist_file" yaml:"playlist_file" env:"PLAYLIST_FILE"`
	Storage            string `json:"storage" yaml:"storage" env:"STORAGE"` // local, gcs
	DataDir            string `json:"data_dir" yaml:"data_dir" env:"DATA_DIR"`
	GCSBucket          string `json:"gcs_bucket" yaml:"gcs_bucket" env:"GCS_BUCKET"`
	GCSPrefix          string `json:"gcs_prefix" yaml:"gcs_prefix" env:"GCS_PREFIX"`
	GCSCredentialsFile string `json:"gcs_credentials_file" yaml:"gcs_credentials_file" env:"GCS_CREDENTIALS_FILE"`

	// Export
	ExportFormat string `json:"export_format" yaml:"export_format" env:"EXPORT_FORMAT"` // m3u, pls, wpl, zpl, csv
	M3UExtended  bool   `json:"m3u_extended" yaml:"m3u_extended" env:"M3U_EXTENDED"`

	// List behavior
	ShuffleSeed     uint64 `json:"shuffle_seed" yaml:"shuffle_seed" env:"SHUFFLE_SEED"`
	StrictPositions bool   `json:"strict_positions" yaml:"strict_positions" env:"STRICT_POSITIONS"`

	// Import
	MaxConcurrentImports int     `json:"max_concurrent_imports" yaml:"max_concurrent_imports" env:"MAX_CONCURRENT_IMPORTS"`
	ImportDiscography    bool    `json:"import_discography" yaml:"import_discography" env:"IMPORT_DISCOGRAPHY"`
	FetchMaxRetries      int     `json:"fetch_max_retries" yaml:"fetch_max_retries" env:"FETCH_MAX_RETRIES"`
	FetchRetryCooldown   float64 `json:"fetch_retry_cooldown" yaml:"fetch_retry_cooldown" env:"FETCH_RETRY_COOLDOWN"`
	FetchRetryExponent   float64 `json:"fetch_retry_exponent" yaml:"fetch_retry_exponent" env:"FETCH_RETRY_EXPONENT"`

	// Logging
	LogLevel  string `json:"log_level" yaml:"log_level" env:"LOG_LEVEL"`    // debug, info, warn, error
	LogFormat string `json:"log_format" yaml:"log_format" env:"LOG_FORMAT"` // text, json
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		PlaylistFile: "playlist.txt",
		Storage:      store.BackendLocal,
		DataDir:      ".",

		ExportFormat: "m3u",
		M3UExtended:  true,

		MaxConcurrentImports: 8,
		ImportDiscography:    false,
		FetchMaxRetries:      3,
		FetchRetryCooldown:   0.2,
		FetchRetryExponent:   4.0,

		LogLevel:  "info",
		LogFormat: "text",
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tracklist.yaml"
	}
	return filepath.Join(dir, "tracklist", "config.yaml")
}

// Load reads settings from a YAML (.yaml, .yml) or JSON file, then applies
// TRACKLIST_* environment overrides and validates the result.
// A missing file, or an empty path, yields the defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := settings.decode(path, data); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(settings, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *Settings) decode(path string, data []byte) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, s)
	}
	return json.Unmarshal(data, s)
}

// Save writes settings to path, as YAML or JSON depending on its extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Validate rejects values no component can act on.
func (s *Settings) Validate() error {
	var errs []error

	if s.PlaylistFile == "" {
		errs = append(errs, errors.New("playlist_file must not be empty"))
	}
	switch s.Storage {
	case store.BackendLocal:
	case store.BackendGCS:
		if s.GCSBucket == "" {
			errs = append(errs, errors.New("gcs_bucket is required for gcs storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q", s.Storage))
	}
	if _, err := audio.ParseFormat(s.ExportFormat); err != nil {
		errs = append(errs, err)
	}
	if s.MaxConcurrentImports < 1 {
		errs = append(errs, fmt.Errorf("max_concurrent_imports must be at least 1, got %d", s.MaxConcurrentImports))
	}
	if s.FetchMaxRetries < 1 {
		errs = append(errs, fmt.Errorf("fetch_max_retries must be at least 1, got %d", s.FetchMaxRetries))
	}
	if s.FetchRetryCooldown < 0 || s.FetchRetryExponent < 1 {
		errs = append(errs, errors.New("fetch_retry_cooldown must be >= 0 and fetch_retry_exponent >= 1"))
	}
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", s.LogLevel))
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log_format %q", s.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid settings: %w", errors.Join(errs...))
	}
	return nil
}

// ToStoreConfig converts settings to a store.Config.
func (s *Settings) ToStoreConfig() store.Config {
	return store.Config{
		Backend:         s.Storage,
		Dir:             s.DataDir,
		Bucket:          s.GCSBucket,
		Prefix:          s.GCSPrefix,
		CredentialsFile: s.GCSCredentialsFile,
	}
}

// ToListOptions converts settings to playlist options.
func (s *Settings) ToListOptions() []playlist.Option {
	opts := []playlist.Option{playlist.WithSeed(s.ShuffleSeed)}
	if s.StrictPositions {
		opts = append(opts, playlist.WithStrictPositions())
	}
	return opts
}

// ToPlaylistCreator builds the exporter for the configured format.
func (s *Settings) ToPlaylistCreator() *audio.PlaylistCreator {
	format, err := audio.ParseFormat(s.ExportFormat)
	if err != nil {
		format = audio.FormatM3U
	}
	return audio.NewPlaylistCreator(format, s.M3UExtended)
}
