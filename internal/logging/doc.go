// Package logging constructs the slog loggers used across audiocut.
//
// Two output formats are supported: a compact single-line console format for
// interactive use and a JSON format for machine consumption. Attribute
// helpers (String, Int, Error, ...) keep call sites terse and consistent.
package logging
