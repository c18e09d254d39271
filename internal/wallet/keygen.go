// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Key is an in-memory secp256k1 signing key. It exists only between unlock
// and use; call Zero when done so the scalar does not linger.
type Key struct {
	priv *secp256k1.PrivateKey
}

// Generate creates a fresh keypair from the OS CSPRNG.
func Generate() (*Key, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &Key{priv: priv}, nil
}

// FromPrivateKeyHex imports a raw 64-hex-character private key, with or
// without the 0x prefix. The scalar must be nonzero and below the curve
// order.
func FromPrivateKeyHex(s string) (*Key, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(s) != 64 {
		return nil, ErrInvalidPrivateKey
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}
	defer zero(b)
	return fromPrivateKeyBytes(b)
}

// fromPrivateKeyBytes builds a Key from 32 raw scalar bytes, rejecting zero
// and out-of-range values instead of silently reducing them.
func fromPrivateKeyBytes(b []byte) (*Key, error) {
	if len(b) != 32 {
		return nil, ErrInvalidPrivateKey
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow || s.IsZero() {
		return nil, ErrInvalidPrivateKey
	}
	return &Key{priv: secp256k1.NewPrivateKey(&s)}, nil
}

// Address returns the lowercase 0x account address for this key.
func (k *Key) Address() string {
	return pubkeyToAddress(k.priv.PubKey().SerializeUncompressed())
}

// PublicKeyHex returns the 128-hex-character uncompressed public key with
// the format prefix stripped.
func (k *Key) PublicKeyHex() string {
	return hex.EncodeToString(k.priv.PubKey().SerializeUncompressed()[1:])
}

// PrivateKeyBytes returns a copy of the 32 raw key bytes. The caller owns
// zeroing the copy.
func (k *Key) PrivateKeyBytes() []byte {
	return k.priv.Serialize()
}

// Zero clears the underlying scalar. The Key must not be used afterwards.
func (k *Key) Zero() {
	if k.priv != nil {
		k.priv.Zero()
	}
}

// String redacts; a Key must never print its material.
func (k *Key) String() string { return "[REDACTED]" }
