// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"fmt"
	"os"

	clog "github.com/charmbracelet/log"

	"github.com/rskvault/rskvault/internal/security"
)

// L is the package-level logger. Callers should use the helper functions
// below; every message they emit passes through the sanitizer before it
// reaches the sink.
var L = clog.New(os.Stderr)

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(security.Sanitize(fmt.Sprintf(format, v...)))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Info(security.Sanitize(fmt.Sprintf(format, v...)))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(security.Sanitize(fmt.Sprintf(format, v...)))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Error(security.Sanitize(fmt.Sprintf(format, v...)))
}
