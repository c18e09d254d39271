// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/wallet"
)

// Two valid checksummed addresses used across the view tests.
const (
	testAddrOne = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	testAddrTwo = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

// setupTestDB points the package-level store at a per-test in-memory
// sqlite database.
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := "file:tui_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	if err := db.InitDB("sqlite", dsn); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() {
		if bs, ok := db.ActiveStore().(*db.BunStore); ok {
			_ = bs.BunDB().Close()
		}
	})
}

// setupKeystore redirects openKeystore to a temp file, optionally seeded
// with data, and restores the previous seam on cleanup.
func setupKeystore(t *testing.T, data *wallet.WalletData) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallets.json")
	prev := openKeystore
	openKeystore = func() *wallet.Keystore { return wallet.NewKeystore(path) }
	t.Cleanup(func() { openKeystore = prev })

	if data != nil {
		if err := wallet.NewKeystore(path).Save(data); err != nil {
			t.Fatalf("seed keystore: %v", err)
		}
	}
	return path
}

// stubConfigSaver replaces the config save seam and reports whether it
// was called.
func stubConfigSaver(t *testing.T) *int {
	t.Helper()
	calls := new(int)
	prev := configSaver
	configSaver = func() error {
		*calls++
		return nil
	}
	t.Cleanup(func() { configSaver = prev })
	return calls
}

// fakeRecord builds a wallet record with placeholder sealed blobs. Good
// enough for list and keystore tests; it cannot be unsealed.
func fakeRecord(address, name string) wallet.Record {
	return wallet.Record{
		Address:             address,
		Balance:             "0",
		Network:             "testnet",
		Name:                name,
		EncryptedPrivateKey: "Y2lwaGVydGV4dC1ibG9i",
		Salt:                "c2FsdHNhbHRzYWx0c2FsdA==",
		IV:                  "aXZpdml2aXZpdml2aXZpdg==",
		CreatedAt:           "2026-03-01T12:00:00Z",
	}
}
