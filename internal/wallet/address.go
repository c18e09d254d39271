// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package wallet

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// keccak256 hashes data with the pre-standard Keccak-256 used by EVM chains.
func keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// pubkeyToAddress derives the 20-byte account address: Keccak-256 over the
// 64-byte uncompressed public key (prefix byte stripped), last 20 bytes,
// rendered lowercase with the 0x prefix.
func pubkeyToAddress(uncompressed []byte) string {
	hash := keccak256(uncompressed[1:])
	return "0x" + hex.EncodeToString(hash[12:])
}

// IsHexAddress reports whether s has the 0x + 40 hex digit shape of an
// account address. It does not verify the checksum.
func IsHexAddress(s string) bool {
	if len(s) != 42 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return false
	}
	for _, c := range s[2:] {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

// NormalizeAddress lowercases an address for use as a storage key. Wallet
// file entries and contact records are always keyed by the normalized form.
func NormalizeAddress(s string) string {
	return strings.ToLower(s)
}

// ChecksumAddress renders an address with EIP-55 mixed-case checksumming for
// display. Input that is not address-shaped is returned unchanged.
func ChecksumAddress(s string) string {
	if !IsHexAddress(s) {
		return s
	}
	body := strings.ToLower(s[2:])
	hash := keccak256([]byte(body))
	out := make([]byte, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c >= 'a' && c <= 'f' {
			nibble := hash[i/2]
			if i%2 == 0 {
				nibble >>= 4
			}
			if nibble&0x0f >= 8 {
				c = c - 'a' + 'A'
			}
		}
		out[i] = c
	}
	return "0x" + string(out)
}

// addressBytes decodes a 0x-prefixed address into its 20 raw bytes. Returns
// nil for input that is not address-shaped.
func addressBytes(s string) []byte {
	if !IsHexAddress(s) {
		return nil
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil
	}
	return b
}
