package logging

import "log/slog"

// Shared field names so log records stay correlatable across packages.
const (
	FieldComponent = "component"
	FieldSessionID = "session_id"
	FieldItemID    = "item_id"
	FieldLanguage  = "language"
	FieldModel     = "model"
	FieldSource    = "source"
	FieldSnapshot  = "snapshot"
)

// WithComponent returns a child logger stamped with a component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// Error wraps an error value as a slog attribute, tolerating nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}
