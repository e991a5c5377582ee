// Package logging wraps log/slog with the two output formats the CLI
// supports: a human console handler (colorized on TTYs) and machine JSON.
package logging
