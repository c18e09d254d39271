// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package provider

import (
	"fmt"
	"math/big"
	"strings"
)

// Decimals is the RBTC subdivision: 1 RBTC = 10^18 wei, like ether.
const Decimals = 18

var weiPerRBTC = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// FormatRBTC renders a wei amount as a decimal RBTC string with trailing
// zeros trimmed: 1500000000000000000 wei is "1.5", zero is "0".
func FormatRBTC(wei *big.Int) string {
	if wei == nil || wei.Sign() == 0 {
		return "0"
	}

	v := new(big.Int).Abs(wei)
	quo, rem := new(big.Int).QuoRem(v, weiPerRBTC, new(big.Int))

	out := quo.String()
	if rem.Sign() != 0 {
		frac := strings.TrimRight(fmt.Sprintf("%018s", rem.String()), "0")
		out += "." + frac
	}
	if wei.Sign() < 0 {
		out = "-" + out
	}
	return out
}

// ParseRBTC parses a non-negative decimal RBTC amount into wei. At most 18
// fractional digits are allowed; anything finer has no wei representation
// and is rejected rather than rounded.
func ParseRBTC(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("negative amount %q", s)
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("malformed amount %q", s)
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > Decimals {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", s, Decimals)
	}
	if !isDigits(intPart) || (fracPart != "" && !isDigits(fracPart)) {
		return nil, fmt.Errorf("malformed amount %q", s)
	}

	whole, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return nil, fmt.Errorf("malformed amount %q", s)
	}
	wei := new(big.Int).Mul(whole, weiPerRBTC)

	if fracPart != "" {
		frac, ok := new(big.Int).SetString(fracPart+strings.Repeat("0", Decimals-len(fracPart)), 10)
		if !ok {
			return nil, fmt.Errorf("malformed amount %q", s)
		}
		wei.Add(wei, frac)
	}
	return wei, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
