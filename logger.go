package stepflow

import "log/slog"

// logger is the package-wide logger used by an App unless WithLogger is
// given.
var logger = slog.Default()

// SetLogger overrides the package logger.
//
// If not set, slog.Default() is used.
func SetLogger(l *slog.Logger) {
	logger = l
}
