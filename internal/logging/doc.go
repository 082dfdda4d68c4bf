// Package logging constructs the slog loggers used across menuforge.
//
// Console output goes to stdout; when a log directory is configured the same
// records are teed into menuforge.log. Attribute helpers keep field names
// uniform so generation attempts, snapshot writes, and CLI actions can be
// correlated in one stream.
package logging
