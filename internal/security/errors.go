// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import "errors"

// Sentinel error kinds for the security core. Fallible operations wrap these
// with %w so callers can classify failures via errors.Is while the message
// text stays free of secret content.
var (
	// ErrDecode is returned when stored secret bytes are not valid UTF-8 on
	// expose.
	ErrDecode = errors.New("secret is not valid UTF-8")

	// ErrTransport is returned for a rejected insecure URL or a failed
	// network exchange. Its message is always sanitized before wrapping.
	ErrTransport = errors.New("transport error")
)
