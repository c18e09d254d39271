// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Keystore persists WalletData as pretty-printed JSON at a fixed path. The
// file holds ciphertext only, but it still carries addresses and balances,
// so it is created 0600 and replaced atomically.
type Keystore struct {
	path string
}

// NewKeystore returns a keystore rooted at path.
func NewKeystore(path string) *Keystore {
	return &Keystore{path: path}
}

// Path returns the wallet file location.
func (k *Keystore) Path() string { return k.path }

// Load reads the wallet file. A missing file is not an error and yields an
// empty WalletData, so first use needs no setup step.
func (k *Keystore) Load() (*WalletData, error) {
	raw, err := os.ReadFile(k.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewWalletData(), nil
		}
		return nil, fmt.Errorf("read wallet file: %w", err)
	}

	data := NewWalletData()
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("%w: wallet file corrupt: %v", ErrConfig, err)
	}
	if data.Wallets == nil {
		data.Wallets = make(map[string]Record)
	}
	return data, nil
}

// Save writes the wallet file via a temp file and rename, so a crash mid
// write never leaves a truncated wallet file behind.
func (k *Keystore) Save(data *WalletData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode wallet file: %w", err)
	}

	dir := filepath.Dir(k.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create wallet directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".wallets-*.json")
	if err != nil {
		return fmt.Errorf("stage wallet file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("stage wallet file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("stage wallet file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("stage wallet file: %w", err)
	}

	if err := os.Rename(tmpName, k.path); err != nil {
		return fmt.Errorf("replace wallet file: %w", err)
	}
	return nil
}

// Update loads the wallet file, applies fn, and saves the result. Errors
// from fn abort without writing.
func (k *Keystore) Update(fn func(*WalletData) error) error {
	data, err := k.Load()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	return k.Save(data)
}
