// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.
package security

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

// credentials is a test aggregate mixing public and secret fields.
type credentials struct {
	endpoint string
	token    string
}

func (c credentials) WriteRedacted(w io.Writer) {
	fmt.Fprintf(w, "credentials{endpoint: %s, token: %s}", c.endpoint, RedactString(c.token, true))
}

// TestRedactedWrapper tests that the generic wrapper exposes only the
// redacted form through every fmt path.
func TestRedactedWrapper(t *testing.T) {
	c := credentials{endpoint: "https://node.example", token: "tok_abcdef"}
	w := Redact(c)

	for _, out := range []string{
		fmt.Sprintf("%v", w),
		fmt.Sprintf("%+v", w),
		fmt.Sprintf("%s", w),
		w.String(),
	} {
		if strings.Contains(out, "tok_abcdef") {
			t.Fatalf("wrapper leaked the token: %q", out)
		}
		if !strings.Contains(out, "https://node.example") {
			t.Fatalf("wrapper lost the public field: %q", out)
		}
		if !strings.Contains(out, "[REDACTED 10 chars]") {
			t.Fatalf("wrapper missing redaction marker: %q", out)
		}
	}

	if w.Value().token != "tok_abcdef" {
		t.Fatalf("Value() must return the wrapped aggregate unchanged")
	}
}

// TestRedactString tests the full and length-annotated forms.
func TestRedactString(t *testing.T) {
	if got := RedactString("secret", false); got != "[REDACTED]" {
		t.Fatalf("unexpected output: %q", got)
	}
	if got := RedactString("secret", true); got != "[REDACTED 6 chars]" {
		t.Fatalf("unexpected output: %q", got)
	}
}

// TestRedactBytes tests the byte-count form.
func TestRedactBytes(t *testing.T) {
	if got := RedactBytes([]byte("secret_bytes"), false); got != "[REDACTED]" {
		t.Fatalf("unexpected output: %q", got)
	}
	if got := RedactBytes([]byte("secret_bytes"), true); got != "[REDACTED 12 bytes]" {
		t.Fatalf("unexpected output: %q", got)
	}
}

// TestRedactPartial tests the first/last reveal and its full-redaction
// threshold.
func TestRedactPartial(t *testing.T) {
	tests := []struct {
		value string
		show  int
		want  string
	}{
		{"short", 2, "sh...rt"},
		{"very_long_secret_key", 3, "ver...key"},
		{"abcd", 2, "[REDACTED]"},
		{"abcde", 3, "[REDACTED]"},
		{"abc", 0, "[REDACTED]"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%d", tt.value, tt.show), func(t *testing.T) {
			if got := RedactPartial(tt.value, tt.show); got != tt.want {
				t.Fatalf("RedactPartial(%q, %d) = %q, want %q", tt.value, tt.show, got, tt.want)
			}
		})
	}
}
