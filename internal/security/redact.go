// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"fmt"
	"io"
	"strings"
)

// Redactor is implemented by aggregates that can describe themselves for
// diagnostic output with their sensitive fields masked. It is the only
// sanctioned way such aggregates reach a print sink.
type Redactor interface {
	WriteRedacted(w io.Writer)
}

// Redacted adapts any Redactor to the ambient fmt machinery: every verb
// delegates to WriteRedacted, so a wrapped value has no leaky default
// representation left to hit.
type Redacted[T Redactor] struct {
	value T
}

// Redact wraps v for safe formatting.
func Redact[T Redactor](v T) Redacted[T] { return Redacted[T]{value: v} }

// Value returns the wrapped value.
func (r Redacted[T]) Value() T { return r.value }

// String implements fmt.Stringer through the value's redacted form.
func (r Redacted[T]) String() string {
	var sb strings.Builder
	r.value.WriteRedacted(&sb)
	return sb.String()
}

// Format implements fmt.Formatter; all verbs produce the redacted form.
func (r Redacted[T]) Format(f fmt.State, verb rune) {
	r.value.WriteRedacted(f)
}

// RedactString masks a string field for diagnostic output, optionally
// keeping its length visible.
func RedactString(value string, showLength bool) string {
	if showLength {
		return fmt.Sprintf("[REDACTED %d chars]", len(value))
	}
	return "[REDACTED]"
}

// RedactBytes masks a byte field for diagnostic output, optionally keeping
// its length visible.
func RedactBytes(value []byte, showLength bool) string {
	if showLength {
		return fmt.Sprintf("[REDACTED %d bytes]", len(value))
	}
	return "[REDACTED]"
}

// RedactPartial shows the first and last show characters of value. Inputs
// that a partial reveal would mostly uncover redact fully.
func RedactPartial(value string, show int) string {
	if show < 1 || len(value) <= show*2 {
		return "[REDACTED]"
	}
	return value[:show] + "..." + value[len(value)-show:]
}
