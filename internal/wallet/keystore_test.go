// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package wallet

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestKeystoreLoadMissingFile(t *testing.T) {
	ks := NewKeystore(filepath.Join(t.TempDir(), "nope", "wallets.json"))
	data, err := ks.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Wallets) != 0 || data.CurrentWallet != "" {
		t.Errorf("missing file did not load as empty: %+v", data)
	}
}

func TestKeystoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	ks := NewKeystore(path)

	data := NewWalletData()
	for _, rec := range []Record{
		walletRecord("alpha", "0x1111111111111111111111111111111111111111"),
		walletRecord("beta", "0x2222222222222222222222222222222222222222"),
	} {
		if err := data.Add(rec); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if err := ks.Save(data); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := ks.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.CurrentWallet != data.CurrentWallet {
		t.Errorf("current wallet = %q, want %q", loaded.CurrentWallet, data.CurrentWallet)
	}
	if len(loaded.Wallets) != 2 {
		t.Fatalf("loaded %d wallets, want 2", len(loaded.Wallets))
	}
	got, ok := loaded.ByName("alpha")
	if !ok || got.Address != "0x1111111111111111111111111111111111111111" {
		t.Errorf("alpha not preserved: %+v %v", got, ok)
	}
}

func TestKeystoreFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix permissions only")
	}
	path := filepath.Join(t.TempDir(), "deep", "wallets.json")
	ks := NewKeystore(path)
	if err := ks.Save(NewWalletData()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := fi.Mode().Perm(); perm != 0o600 {
		t.Errorf("wallet file mode = %o, want 600", perm)
	}
}

func TestKeystoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	ks := NewKeystore(filepath.Join(dir, "wallets.json"))
	if err := ks.Save(NewWalletData()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".wallets-") {
			t.Errorf("stray temp file %s left behind", e.Name())
		}
	}
}

func TestKeystoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	if err := os.WriteFile(path, []byte("{ not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewKeystore(path).Load(); !errors.Is(err, ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

func TestKeystoreUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	ks := NewKeystore(path)

	err := ks.Update(func(d *WalletData) error {
		return d.Add(walletRecord("alpha", "0x1111111111111111111111111111111111111111"))
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	loaded, err := ks.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := loaded.ByName("alpha"); !ok {
		t.Errorf("Update did not persist the added wallet")
	}

	// A failing mutation must not touch the file.
	sentinel := errors.New("boom")
	err = ks.Update(func(d *WalletData) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("Update swallowed the mutation error: %v", err)
	}
	again, err := ks.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(again.Wallets) != 1 {
		t.Errorf("failed Update changed the file: %d wallets", len(again.Wallets))
	}
}
