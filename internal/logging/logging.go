// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"strings"

	clog "github.com/charmbracelet/log"

	"github.com/rskvault/rskvault/internal/security"
)

// Init applies the configured level and routes the transport layer's
// diagnostics through this logger. Called once from the command root.
func Init(level string) {
	L.SetLevel(ParseLevel(level))
	security.SetLogHooks(Debugf, Warnf, Errorf)
}

// SetDebug switches between debug and info level at runtime, for the
// --debug flag.
func SetDebug(enabled bool) {
	if enabled {
		L.SetLevel(clog.DebugLevel)
	} else {
		L.SetLevel(clog.InfoLevel)
	}
}

// ParseLevel maps a configured level name to a log level. Unknown names
// fall back to info.
func ParseLevel(level string) clog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}
