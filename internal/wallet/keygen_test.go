// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package wallet

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer key.Zero()

	if addr := key.Address(); !IsHexAddress(addr) {
		t.Errorf("Address() = %q, not address shaped", addr)
	}
	if pub := key.PublicKeyHex(); len(pub) != 128 {
		t.Errorf("PublicKeyHex() length = %d, want 128", len(pub))
	}
	raw := key.PrivateKeyBytes()
	defer zero(raw)
	if len(raw) != 32 {
		t.Errorf("PrivateKeyBytes() length = %d, want 32", len(raw))
	}

	other, err := Generate()
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	defer other.Zero()
	if key.Address() == other.Address() {
		t.Errorf("two generated keys share an address")
	}
}

func TestFromPrivateKeyHex(t *testing.T) {
	const raw = "0000000000000000000000000000000000000000000000000000000000000001"

	t.Run("accepts prefixed and bare", func(t *testing.T) {
		bare, err := FromPrivateKeyHex(raw)
		if err != nil {
			t.Fatalf("bare: %v", err)
		}
		prefixed, err := FromPrivateKeyHex("0x" + raw)
		if err != nil {
			t.Fatalf("prefixed: %v", err)
		}
		if bare.Address() != prefixed.Address() {
			t.Errorf("prefix changed the derived address")
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		bad := []struct {
			name string
			in   string
		}{
			{"empty", ""},
			{"too short", raw[:62]},
			{"too long", raw + "00"},
			{"non hex", strings.Repeat("zz", 32)},
			{"zero scalar", strings.Repeat("00", 32)},
			{"above curve order", strings.Repeat("ff", 32)},
		}
		for _, tc := range bad {
			if _, err := FromPrivateKeyHex(tc.in); !errors.Is(err, ErrInvalidPrivateKey) {
				t.Errorf("%s: err = %v, want ErrInvalidPrivateKey", tc.name, err)
			}
		}
	})
}

func TestKeyExportImportRoundTrip(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer key.Zero()

	raw := key.PrivateKeyBytes()
	defer zero(raw)

	again, err := FromPrivateKeyHex(hex.EncodeToString(raw))
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	defer again.Zero()

	if key.Address() != again.Address() {
		t.Errorf("round trip changed the address")
	}
}

func TestKeyNeverPrintsMaterial(t *testing.T) {
	key, err := FromPrivateKeyHex("0000000000000000000000000000000000000000000000000000000000000001")
	if err != nil {
		t.Fatalf("FromPrivateKeyHex: %v", err)
	}
	defer key.Zero()

	for _, rendered := range []string{
		fmt.Sprintf("%v", key),
		fmt.Sprintf("%s", key),
		fmt.Sprint(key),
	} {
		if rendered != "[REDACTED]" {
			t.Errorf("key rendered as %q, want [REDACTED]", rendered)
		}
	}
}

func TestKeyZero(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	key.Zero()

	for _, b := range key.PrivateKeyBytes() {
		if b != 0 {
			t.Fatalf("scalar bytes survive Zero")
		}
	}
}
