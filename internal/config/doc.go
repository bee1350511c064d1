// Package config loads, normalizes, and validates audiocut configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AUDIOCUT_FFMPEG_DIR. The Config type centralizes every knob the CLI needs:
// the segment work directory, toolkit binary resolution, output template
// defaults, and the persistent timecode table cache.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
