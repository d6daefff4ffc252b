// Package logger builds the structured slog logger used for diagnostics by
// the htmllog command and, optionally, by htmllog.Logger itself. Diagnostics
// go to a caller-chosen writer (stderr for the CLI) so they never mix with
// command output.
package logger
