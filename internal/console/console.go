// Package console provides severity-colored lifecycle logging for the
// monitor binary: detector start and finish, confirmed QRS beats (debug
// level), feed client connections and event-log, feed and DNS-SD errors.
// It never sits on the per-sample hot
// path — core.Detector.Process stays allocation-free and log-free.
//
// This generalizes the teacher's textcolor.go (a raw ANSI-escape,
// severity-to-color table driving dw_printf) into a structured logger:
// same "one call per severity level" shape, backed by a real logging
// library instead of hand-rolled escape codes.
package console

import (
	"os"

	"github.com/charmbracelet/log"
)

// Severity mirrors the teacher's dw_color_e enum (DW_COLOR_INFO,
// DW_COLOR_ERROR, DW_COLOR_DEBUG, ...), narrowed to the levels this monitor
// actually emits.
type Severity int

const (
	Info Severity = iota
	Warn
	Error
	Debug
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

// SetLevel controls which severities are emitted, analogous to the
// teacher's text_color_init(level).
func SetLevel(debug bool) {
	if debug {
		logger.SetLevel(log.DebugLevel)
		return
	}
	logger.SetLevel(log.InfoLevel)
}

// Log emits msg at the given severity with structured key/value pairs.
func Log(sev Severity, msg string, kv ...any) {
	switch sev {
	case Error:
		logger.Error(msg, kv...)
	case Warn:
		logger.Warn(msg, kv...)
	case Debug:
		logger.Debug(msg, kv...)
	default:
		logger.Info(msg, kv...)
	}
}
