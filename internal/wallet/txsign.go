// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package wallet

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// LegacyTx is a pre-typed-envelope transaction, the only kind Rootstock
// nodes accept. An empty To means contract creation.
type LegacyTx struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       string
	Value    *big.Int
	Data     []byte
	ChainID  uint64
}

// SignedTx is a fully signed transaction ready for broadcast.
type SignedTx struct {
	Raw  []byte
	Hash string
	V    *big.Int
	R    *big.Int
	S    *big.Int
}

// RawHex returns the broadcast form for eth_sendRawTransaction.
func (s *SignedTx) RawHex() string {
	return "0x" + hex.EncodeToString(s.Raw)
}

// appendFields appends the six common RLP fields shared by the signing
// preimage and the final encoding.
func (tx *LegacyTx) appendFields(dst []byte) ([]byte, error) {
	var to []byte
	if tx.To != "" {
		if to = addressBytes(tx.To); to == nil {
			return nil, fmt.Errorf("%w: bad recipient address", ErrConfig)
		}
	}
	dst = rlpAppendUint64(dst, tx.Nonce)
	dst = rlpAppendBigInt(dst, tx.GasPrice)
	dst = rlpAppendUint64(dst, tx.Gas)
	dst = rlpAppendBytes(dst, to)
	dst = rlpAppendBigInt(dst, tx.Value)
	dst = rlpAppendBytes(dst, tx.Data)
	return dst, nil
}

// SigHash computes the replay-protected signing preimage: the transaction
// fields followed by (chainID, 0, 0), hashed with Keccak-256.
func (tx *LegacyTx) SigHash() ([]byte, error) {
	payload, err := tx.appendFields(nil)
	if err != nil {
		return nil, err
	}
	payload = rlpAppendUint64(payload, tx.ChainID)
	payload = rlpAppendBytes(payload, nil)
	payload = rlpAppendBytes(payload, nil)
	return keccak256(rlpWrapList(payload)), nil
}

// SignTx signs tx with the key. The recovery id folds into
// v = chainID*2 + 35 + recid, which binds the signature to one chain.
func (k *Key) SignTx(tx *LegacyTx) (*SignedTx, error) {
	if k == nil || k.priv == nil {
		return nil, fmt.Errorf("%w: key has been zeroed", ErrInvalidPrivateKey)
	}
	sighash, err := tx.SigHash()
	if err != nil {
		return nil, err
	}

	// Compact form: header byte 27+recid, then r and s, 32 bytes each.
	sig := ecdsa.SignCompact(k.priv, sighash, false)
	recid := uint64(sig[0] - 27)

	v := new(big.Int).SetUint64(tx.ChainID*2 + 35 + recid)
	r := new(big.Int).SetBytes(sig[1:33])
	s := new(big.Int).SetBytes(sig[33:65])

	payload, err := tx.appendFields(nil)
	if err != nil {
		return nil, err
	}
	payload = rlpAppendBigInt(payload, v)
	payload = rlpAppendBigInt(payload, r)
	payload = rlpAppendBigInt(payload, s)
	raw := rlpWrapList(payload)

	return &SignedTx{
		Raw:  raw,
		Hash: "0x" + hex.EncodeToString(keccak256(raw)),
		V:    v,
		R:    r,
		S:    s,
	}, nil
}
