// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package wallet

import "math/big"

// Minimal RLP encoder, append style. Legacy transactions only need byte
// strings, unsigned integers, and a single flat list, so that is all this
// covers.

// rlpAppendLength appends the short or long form length header. offset is
// 0x80 for strings and 0xc0 for lists.
func rlpAppendLength(dst []byte, length int, offset byte) []byte {
	if length < 56 {
		return append(dst, offset+byte(length))
	}
	var lenBytes []byte
	for l := length; l > 0; l >>= 8 {
		lenBytes = append([]byte{byte(l)}, lenBytes...)
	}
	dst = append(dst, offset+55+byte(len(lenBytes)))
	return append(dst, lenBytes...)
}

// rlpAppendBytes appends the encoding of a byte string. A single byte below
// 0x80 is its own encoding; the empty string encodes as 0x80.
func rlpAppendBytes(dst, b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return append(dst, b[0])
	}
	dst = rlpAppendLength(dst, len(b), 0x80)
	return append(dst, b...)
}

// rlpAppendBigInt appends a non-negative integer as its minimal big-endian
// byte string. nil and zero both encode as the empty string.
func rlpAppendBigInt(dst []byte, v *big.Int) []byte {
	if v == nil {
		return append(dst, 0x80)
	}
	return rlpAppendBytes(dst, v.Bytes())
}

func rlpAppendUint64(dst []byte, v uint64) []byte {
	return rlpAppendBigInt(dst, new(big.Int).SetUint64(v))
}

// rlpWrapList prefixes an already encoded payload with its list header.
func rlpWrapList(payload []byte) []byte {
	out := rlpAppendLength(make([]byte, 0, len(payload)+4), len(payload), 0xc0)
	return append(out, payload...)
}
