// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package wallet

import "errors"

// Sentinel error kinds for the wallet core. Callers classify failures with
// errors.Is; messages never carry key material.
var (
	// ErrKeyDerivation is returned when the scrypt derivation itself fails
	// (bad parameters, zero-length salt). It does not indicate a wrong
	// password.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrIntegrity is returned when decryption completes structurally but
	// the padding check fails. It is the wrong-password signal and is
	// deliberately indistinguishable from record corruption.
	ErrIntegrity = errors.New("integrity check failed")

	// ErrConfig is returned for a malformed persisted wallet record or
	// wallet file.
	ErrConfig = errors.New("invalid wallet record")

	// ErrInvalidPrivateKey is returned when key import bytes are not a
	// usable secp256k1 scalar.
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrInvalidMnemonic is returned when a recovery phrase fails BIP-39
	// validation.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")

	// ErrWalletNotFound is returned when an address or name does not match
	// any stored wallet.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrDuplicateWallet is returned when adding a wallet whose address is
	// already stored.
	ErrDuplicateWallet = errors.New("wallet already exists")
)
