// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package wallet

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rskvault/rskvault/internal/security"
)

func TestSealUnseal(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer key.Zero()
	pw := security.NewPassword("hunter2 but longer")

	rec, err := Seal(key, "main", "mainnet", pw)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if rec.Address != key.Address() {
		t.Errorf("record address = %s, want %s", rec.Address, key.Address())
	}
	if rec.Name != "main" || rec.Network != "mainnet" || rec.Balance != "0" {
		t.Errorf("record fields off: %+v", rec)
	}
	if _, err := time.Parse(time.RFC3339, rec.CreatedAt); err != nil {
		t.Errorf("created_at %q not RFC 3339: %v", rec.CreatedAt, err)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	t.Run("round trip", func(t *testing.T) {
		got, err := rec.Unseal(pw)
		if err != nil {
			t.Fatalf("Unseal: %v", err)
		}
		defer got.Zero()
		if got.Address() != key.Address() {
			t.Errorf("unsealed key address = %s, want %s", got.Address(), key.Address())
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := rec.Unseal(security.NewPassword("wrong")); !errors.Is(err, ErrIntegrity) {
			t.Errorf("err = %v, want ErrIntegrity", err)
		}
	})
}

func TestRecordValidate(t *testing.T) {
	valid := Record{
		Address:             "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		Name:                "main",
		EncryptedPrivateKey: base64.StdEncoding.EncodeToString(make([]byte, 48)),
		Salt:                base64.StdEncoding.EncodeToString(make([]byte, 16)),
		IV:                  base64.StdEncoding.EncodeToString(make([]byte, 16)),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Record)
	}{
		{"bad address", func(r *Record) { r.Address = "nope" }},
		{"empty name", func(r *Record) { r.Name = "" }},
		{"ciphertext not base64", func(r *Record) { r.EncryptedPrivateKey = "@@@" }},
		{"iv not base64", func(r *Record) { r.IV = "@@@" }},
		{"salt not base64", func(r *Record) { r.Salt = "@@@" }},
		{"empty ciphertext", func(r *Record) { r.EncryptedPrivateKey = "" }},
		{"unaligned ciphertext", func(r *Record) {
			r.EncryptedPrivateKey = base64.StdEncoding.EncodeToString(make([]byte, 47))
		}},
		{"short iv", func(r *Record) {
			r.IV = base64.StdEncoding.EncodeToString(make([]byte, 8))
		}},
		{"short salt", func(r *Record) {
			r.Salt = base64.StdEncoding.EncodeToString(make([]byte, 8))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := valid
			tc.mutate(&rec)
			if err := rec.Validate(); !errors.Is(err, ErrConfig) {
				t.Errorf("err = %v, want ErrConfig", err)
			}
		})
	}
}

func TestRecordRedaction(t *testing.T) {
	rec := Record{
		Address:             "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		Name:                "main",
		Network:             "mainnet",
		EncryptedPrivateKey: base64.StdEncoding.EncodeToString([]byte("supersecret-ciphertext")),
		Salt:                base64.StdEncoding.EncodeToString([]byte("salty-salt-salty")),
		IV:                  base64.StdEncoding.EncodeToString([]byte("iv-iv-iv-iv-iv-i")),
	}

	for _, rendered := range []string{rec.String(), fmt.Sprintf("%v", rec), fmt.Sprintf("%s", rec)} {
		if strings.Contains(rendered, rec.EncryptedPrivateKey) {
			t.Fatalf("rendered record leaks ciphertext: %s", rendered)
		}
		if strings.Contains(rendered, rec.Salt) || strings.Contains(rendered, rec.IV) {
			t.Fatalf("rendered record leaks salt or iv: %s", rendered)
		}
		if !strings.Contains(rendered, "main") {
			t.Errorf("rendered record lost the name: %s", rendered)
		}
		if strings.Contains(rendered, rec.Address) {
			t.Errorf("rendered record shows the full address: %s", rendered)
		}
	}
}

func walletRecord(name, addr string) Record {
	return Record{Address: addr, Name: name, Network: "testnet", Balance: "0"}
}

func TestWalletDataAdd(t *testing.T) {
	data := NewWalletData()
	rec := walletRecord("one", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

	if err := data.Add(rec); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if data.CurrentWallet != NormalizeAddress(rec.Address) {
		t.Errorf("new wallet not current: %q", data.CurrentWallet)
	}

	// Same address, different case.
	dup := walletRecord("two", NormalizeAddress(rec.Address))
	if err := data.Add(dup); !errors.Is(err, ErrDuplicateWallet) {
		t.Errorf("err = %v, want ErrDuplicateWallet", err)
	}
}

func TestWalletDataLookups(t *testing.T) {
	data := NewWalletData()
	a := walletRecord("alpha", "0x1111111111111111111111111111111111111111")
	b := walletRecord("beta", "0x2222222222222222222222222222222222222222")
	for _, rec := range []Record{a, b} {
		if err := data.Add(rec); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	if got, ok := data.ByAddress("0x1111111111111111111111111111111111111111"); !ok || got.Name != "alpha" {
		t.Errorf("ByAddress failed: %v %v", got, ok)
	}
	if got, ok := data.ByAddress("0X1111111111111111111111111111111111111111"); !ok || got.Name != "alpha" {
		t.Errorf("ByAddress is case sensitive: %v %v", got, ok)
	}
	if got, ok := data.ByName("beta"); !ok || got.Address != b.Address {
		t.Errorf("ByName failed: %v %v", got, ok)
	}
	if _, ok := data.ByName("missing"); ok {
		t.Errorf("ByName found a wallet that does not exist")
	}

	cur, ok := data.Current()
	if !ok || cur.Name != "beta" {
		t.Errorf("Current = %v %v, want beta (last added)", cur, ok)
	}
}

func TestWalletDataSwitch(t *testing.T) {
	data := NewWalletData()
	a := walletRecord("alpha", "0x1111111111111111111111111111111111111111")
	b := walletRecord("beta", "0x2222222222222222222222222222222222222222")
	for _, rec := range []Record{a, b} {
		if err := data.Add(rec); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	if err := data.Switch("0x1111111111111111111111111111111111111111"); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if cur, _ := data.Current(); cur.Name != "alpha" {
		t.Errorf("current after switch = %s, want alpha", cur.Name)
	}
	if err := data.Switch("0x9999999999999999999999999999999999999999"); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("err = %v, want ErrWalletNotFound", err)
	}
}

func TestWalletDataRemove(t *testing.T) {
	data := NewWalletData()
	a := walletRecord("alpha", "0x1111111111111111111111111111111111111111")
	if err := data.Add(a); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := data.Remove(a.Address); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if data.CurrentWallet != "" {
		t.Errorf("removing the current wallet left selection %q", data.CurrentWallet)
	}
	if len(data.Wallets) != 0 {
		t.Errorf("wallet survived removal")
	}
	if err := data.Remove(a.Address); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("err = %v, want ErrWalletNotFound", err)
	}
}

func TestWalletDataRename(t *testing.T) {
	data := NewWalletData()
	a := walletRecord("alpha", "0x1111111111111111111111111111111111111111")
	if err := data.Add(a); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := data.Rename(a.Address, "omega"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if got, _ := data.ByAddress(a.Address); got.Name != "omega" {
		t.Errorf("name after rename = %s, want omega", got.Name)
	}
	if err := data.Rename("0x9999999999999999999999999999999999999999", "x"); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("err = %v, want ErrWalletNotFound", err)
	}
}

func TestWalletDataListSorted(t *testing.T) {
	data := NewWalletData()
	for _, rec := range []Record{
		walletRecord("zulu", "0x3333333333333333333333333333333333333333"),
		walletRecord("alpha", "0x1111111111111111111111111111111111111111"),
		walletRecord("mike", "0x2222222222222222222222222222222222222222"),
	} {
		if err := data.Add(rec); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	list := data.List()
	if len(list) != 3 {
		t.Fatalf("List length = %d, want 3", len(list))
	}
	for i, want := range []string{"alpha", "mike", "zulu"} {
		if list[i].Name != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].Name, want)
		}
	}
}
