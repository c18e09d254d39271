// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"
)

// Secret is a thin wrapper around a byte slice intended to hold sensitive
// material (private keys, passphrases, API keys). It implements redaction
// helpers so accidental formatting, JSON marshaling, or SQL drivers do not
// reveal data, and it guarantees the backing bytes can be zeroed in place.
//
// A Secret has a single logical owner; it provides no internal locking and
// must not be shared across goroutines without external synchronization.
type Secret []byte

// FromString creates a Secret from a string input (callers should zero any
// intermediate []byte they create from user input).
func FromString(in string) Secret { return Secret([]byte(in)) }

// FromBytes creates a Secret from bytes (it makes a copy).
func FromBytes(in []byte) Secret {
	out := make([]byte, len(in))
	copy(out, in)
	return Secret(out)
}

// Expose returns the secret content as a string. It fails with an ErrDecode
// kind when the stored bytes are not valid UTF-8. A cleared Secret exposes
// the empty string, not an error. The returned string is an immutable copy;
// prefer Use or Consume when the content must stay zeroable.
func (s Secret) Expose() (string, error) {
	if !utf8.Valid(s) {
		return "", fmt.Errorf("%w (%d bytes)", ErrDecode, len(s))
	}
	return string(s), nil
}

// Len reports the current logical length in bytes.
func (s Secret) Len() int { return len(s) }

// IsEmpty reports whether the Secret currently holds no bytes.
func (s Secret) IsEmpty() bool { return len(s) == 0 }

// Bytes returns a copy of the underlying bytes. Callers are responsible for
// zeroing sensitive copies when done.
func (s Secret) Bytes() []byte {
	out := make([]byte, len(s))
	copy(out, s)
	return out
}

// Clear overwrites the underlying bytes with zeros and truncates the logical
// length to zero. Idempotent; safe on nil.
func (s *Secret) Clear() {
	if s == nil || *s == nil {
		return
	}
	for i := range *s {
		(*s)[i] = 0
	}
	*s = (*s)[:0]
}

// Use executes fn with the underlying bytes (not a copy). Prefer this when
// callers need to avoid copies; responsibility for zeroing belongs to the
// caller if they retain the slice.
func (s Secret) Use(fn func([]byte) error) error {
	return fn([]byte(s))
}

// Consume executes fn with the underlying bytes and clears the Secret when
// fn returns, on success, error, and panic alike. This is the scope-guard
// form of Use: decrypted material handed to Consume cannot outlive the call.
func (s *Secret) Consume(fn func([]byte) error) error {
	defer s.Clear()
	return fn([]byte(*s))
}

// String redacts the secret for fmt.Print* convenience.
func (s Secret) String() string { return "[REDACTED]" }

// Format implements fmt.Formatter to ensure every verb stays redacted. The
// Go-syntax verb reports only the byte count.
func (s Secret) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		fmt.Fprintf(f, "Secret([REDACTED %d bytes])", len(s))
		return
	}
	_, _ = io.WriteString(f, "[REDACTED]")
}

// MarshalJSON redacts secrets in JSON marshaling.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal("[REDACTED]") }

// MarshalText redacts secrets for text encoding.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value implements database/sql/driver.Valuer to store raw bytes as-is.
func (s Secret) Value() (driver.Value, error) { return []byte(s), nil }

// Scan implements sql.Scanner to read bytes from DB into a Secret.
func (s *Secret) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		tmp := make([]byte, len(v))
		copy(tmp, v)
		*s = Secret(tmp)
		return nil
	case string:
		*s = Secret([]byte(v))
		return nil
	default:
		return fmt.Errorf("unsupported scan type %T", src)
	}
}
