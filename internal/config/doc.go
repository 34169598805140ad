// Package config provides configuration management for tracklist.
//
// This package handles:
//   - Loading and saving settings from YAML or JSON files
//   - TRACKLIST_* environment overrides
//   - Default configuration values
//   - Conversion to store, playlist and exporter settings
//
// # Loading
//
//	settings, err := config.Load(config.DefaultPath())
//	// Missing file: defaults plus environment overrides
//
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
// Environment variables win over the file:
//
//	TRACKLIST_STORAGE=gcs TRACKLIST_GCS_BUCKET=my-playlists tracklist show
//
// # Saving Settings
//
//	settings.ExportFormat = "pls"
//	err := settings.Save("/path/to/config.yaml")
package config
