// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"fmt"
	"io"
)

// APIKey is a Secret holding a remote-service credential. It adds the
// Authorization header form and a partial-reveal display so keys remain
// human-auditable in logs without ever appearing whole.
type APIKey struct {
	Secret
}

// NewAPIKey takes ownership of a plaintext API key.
func NewAPIKey(in string) APIKey { return APIKey{FromString(in)} }

// APIKeyFromSecret wraps an existing Secret without copying.
func APIKeyFromSecret(s Secret) APIKey { return APIKey{s} }

// AuthHeader returns the "Bearer" Authorization header value. The result is
// the raw credential; it must only travel over a validated TLS connection.
func (k APIKey) AuthHeader() (string, error) {
	v, err := k.Expose()
	if err != nil {
		return "", err
	}
	return "Bearer " + v, nil
}

// Masked returns a partial reveal showing the first and last three
// characters. Keys of six characters or fewer redact fully; content that is
// no longer valid text reports as cleared.
func (k APIKey) Masked() string {
	v, err := k.Expose()
	if err != nil {
		return "[CLEARED]"
	}
	if len(v) <= 6 {
		return "[REDACTED]"
	}
	return v[:3] + "..." + v[len(v)-3:]
}

// WriteRedacted implements Redactor with the masked key and its length.
func (k APIKey) WriteRedacted(w io.Writer) {
	fmt.Fprintf(w, "APIKey{key: %s, len: %d}", k.Masked(), k.Len())
}

// String shows the masked form, never the content.
func (k APIKey) String() string { return k.Masked() }

// Format implements fmt.Formatter: plain verbs print the masked form, the
// detail verbs print the full redacted debug shape.
func (k APIKey) Format(f fmt.State, verb rune) {
	switch {
	case verb == 'v' && (f.Flag('#') || f.Flag('+')):
		k.WriteRedacted(f)
	case verb == 'v' || verb == 's' || verb == 'q':
		_, _ = io.WriteString(f, k.Masked())
	default:
		_, _ = io.WriteString(f, "[REDACTED]")
	}
}
