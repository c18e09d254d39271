// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package wallet

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// DefaultDerivationPath is the BIP-44 path for Rootstock's registered coin
// type (137): m/44'/137'/0'/0/0.
var DefaultDerivationPath = []uint32{
	bip32.FirstHardenedChild + 44,
	bip32.FirstHardenedChild + 137,
	bip32.FirstHardenedChild + 0,
	0,
	0,
}

// FromMnemonic derives a Key from a BIP-39 recovery phrase along
// DefaultDerivationPath. The phrase must carry a valid checksum; word count
// is whatever BIP-39 allows (12, 15, 18, 21 or 24 words).
func FromMnemonic(mnemonic string) (*Key, error) {
	mnemonic = strings.TrimSpace(strings.ToLower(mnemonic))
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, "")
	defer zero(seed)

	node, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	for _, index := range DefaultDerivationPath {
		node, err = node.NewChildKey(index)
		if err != nil {
			return nil, fmt.Errorf("%w: derive child: %v", ErrInvalidMnemonic, err)
		}
	}

	key, err := fromPrivateKeyBytes(node.Key)
	if err != nil {
		return nil, err
	}
	zero(node.Key)
	return key, nil
}

// NewMnemonic generates a fresh 12-word recovery phrase from 128 bits of
// entropy. Callers must treat the returned string as key material.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	defer zero(entropy)
	m, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return m, nil
}
