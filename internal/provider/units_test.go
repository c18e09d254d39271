// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package provider

import (
	"math/big"
	"testing"
)

func wei(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad wei literal " + s)
	}
	return v
}

func TestFormatRBTC(t *testing.T) {
	cases := []struct {
		name string
		in   *big.Int
		want string
	}{
		{"nil", nil, "0"},
		{"zero", big.NewInt(0), "0"},
		{"one wei", big.NewInt(1), "0.000000000000000001"},
		{"one rbtc", wei("1000000000000000000"), "1"},
		{"one and a half", wei("1500000000000000000"), "1.5"},
		{"trailing zeros trimmed", wei("1230000000000000000"), "1.23"},
		{"sub unit", wei("500000000000000"), "0.0005"},
		{"large", wei("21000000000000000000000000"), "21000000"},
		{"negative", wei("-2500000000000000000"), "-2.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatRBTC(tc.in); got != tc.want {
				t.Errorf("FormatRBTC = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseRBTC(t *testing.T) {
	good := []struct {
		in   string
		want *big.Int
	}{
		{"0", big.NewInt(0)},
		{"1", wei("1000000000000000000")},
		{"1.5", wei("1500000000000000000")},
		{"0.0005", wei("500000000000000")},
		{".5", wei("500000000000000000")},
		{"2.", wei("2000000000000000000")},
		{"0.000000000000000001", big.NewInt(1)},
		{" 3 ", wei("3000000000000000000")},
	}
	for _, tc := range good {
		got, err := ParseRBTC(tc.in)
		if err != nil {
			t.Fatalf("ParseRBTC(%q): %v", tc.in, err)
		}
		if got.Cmp(tc.want) != 0 {
			t.Errorf("ParseRBTC(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	bad := []string{"", ".", "-1", "1..5", "1,5", "abc", "1e18",
		"0.0000000000000000001"}
	for _, in := range bad {
		if _, err := ParseRBTC(in); err == nil {
			t.Errorf("ParseRBTC(%q) accepted malformed input", in)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "1.5", "0.000000000000000001", "123456.789"} {
		v, err := ParseRBTC(s)
		if err != nil {
			t.Fatalf("ParseRBTC(%q): %v", s, err)
		}
		if got := FormatRBTC(v); got != s {
			t.Errorf("round trip %q came back as %q", s, got)
		}
	}
}
