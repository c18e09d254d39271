// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package provider

import (
	"errors"
	"math/big"
	"strings"
	"testing"
)

func TestEncodeQuantity(t *testing.T) {
	cases := []struct {
		in   *big.Int
		want string
	}{
		{nil, "0x0"},
		{big.NewInt(0), "0x0"},
		{big.NewInt(1), "0x1"},
		{big.NewInt(30), "0x1e"},
		{big.NewInt(65536), "0x10000"},
		{new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil), "0xde0b6b3a7640000"},
	}
	for _, tc := range cases {
		if got := EncodeQuantity(tc.in); got != tc.want {
			t.Errorf("EncodeQuantity(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}

	if got := EncodeUint64(21000); got != "0x5208" {
		t.Errorf("EncodeUint64(21000) = %s, want 0x5208", got)
	}
}

func TestDecodeQuantity(t *testing.T) {
	good := []struct {
		in   string
		want int64
	}{
		{"0x0", 0},
		{"0x1e", 30},
		{"0x5208", 21000},
		// Leading zeros are tolerated; some nodes emit them.
		{"0x01", 1},
	}
	for _, tc := range good {
		v, err := DecodeQuantity(tc.in)
		if err != nil {
			t.Fatalf("DecodeQuantity(%q): %v", tc.in, err)
		}
		if v.Int64() != tc.want {
			t.Errorf("DecodeQuantity(%q) = %v, want %d", tc.in, v, tc.want)
		}
	}

	bad := []string{"", "0x", "1e", "0xzz", "30"}
	for _, in := range bad {
		if _, err := DecodeQuantity(in); !errors.Is(err, ErrRPC) {
			t.Errorf("DecodeQuantity(%q) err = %v, want ErrRPC", in, err)
		}
	}
}

func TestDecodeUint64(t *testing.T) {
	v, err := DecodeUint64("0x1e")
	if err != nil || v != 30 {
		t.Fatalf("DecodeUint64(0x1e) = %d, %v", v, err)
	}
	// 2^64 does not fit.
	if _, err := DecodeUint64("0x10000000000000000"); !errors.Is(err, ErrRPC) {
		t.Errorf("overflow err = %v, want ErrRPC", err)
	}
}

func TestRPCErrorSanitizesMessage(t *testing.T) {
	e := &RPCError{
		Code:    -32000,
		Message: "bad key 4646464646464646464646464646464646464646464646464646464646464646",
	}
	msg := e.Error()
	if !strings.Contains(msg, "[PRIVATE_KEY_REDACTED]") {
		t.Errorf("message %q does not mask the key", msg)
	}
	if strings.Contains(msg, "4646464646") {
		t.Errorf("message %q leaks key material", msg)
	}
	if !errors.Is(e, ErrRPC) {
		t.Errorf("RPCError does not unwrap to ErrRPC")
	}
}
