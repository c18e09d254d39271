// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Package wallet owns the signing-key lifecycle: key generation and import,
// the password-sealed persisted record, and transaction signing. Key
// material only ever leaves this package wrapped in security containers.
package wallet

import (
	"encoding/base64"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rskvault/rskvault/internal/security"
)

// Record is the persisted form of a wallet. The private key appears only as
// the scrypt/AES-256-CBC sealed ciphertext; salt and IV are stored alongside
// it in independent fields, all base64. Everything except the ciphertext is
// safe to store in the clear.
type Record struct {
	Address             string `json:"address"`
	Balance             string `json:"balance"`
	Network             string `json:"network"`
	Name                string `json:"name"`
	EncryptedPrivateKey string `json:"encrypted_private_key"`
	Salt                string `json:"salt"`
	IV                  string `json:"iv"`
	CreatedAt           string `json:"created_at"`
}

// Seal encrypts key under password and builds the persisted record. Each
// call draws fresh salt and IV; sealing the same key twice never reuses
// either.
func Seal(key *Key, name, network string, password security.Password) (Record, error) {
	raw := key.PrivateKeyBytes()
	defer zero(raw)

	ciphertext, iv, salt, err := EncryptPrivateKey(raw, password)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Address:             key.Address(),
		Balance:             "0",
		Network:             network,
		Name:                name,
		EncryptedPrivateKey: base64.StdEncoding.EncodeToString(ciphertext),
		Salt:                base64.StdEncoding.EncodeToString(salt),
		IV:                  base64.StdEncoding.EncodeToString(iv),
		CreatedAt:           time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Unseal decrypts the record's private key with password and rebuilds the
// signing key. Wrong passwords and corrupted records alike surface as
// ErrIntegrity.
func (r Record) Unseal(password security.Password) (*Key, error) {
	ciphertext, iv, salt, err := r.decodeBlobs()
	if err != nil {
		return nil, err
	}

	raw, err := DecryptPrivateKey(ciphertext, iv, salt, password)
	if err != nil {
		return nil, err
	}
	defer zero(raw)

	key, err := fromPrivateKeyBytes(raw)
	if err != nil {
		// Structurally valid padding over garbage plaintext; still just a
		// wrong password as far as the caller is concerned.
		return nil, fmt.Errorf("%w: recovered key unusable", ErrIntegrity)
	}
	return key, nil
}

// Validate checks the record's shape without touching the password: address
// format, base64 decodability, and blob sizes. Failures are ErrConfig.
func (r Record) Validate() error {
	if !IsHexAddress(r.Address) {
		return fmt.Errorf("%w: bad address %q", ErrConfig, security.RedactAddress(r.Address))
	}
	if r.Name == "" {
		return fmt.Errorf("%w: empty wallet name", ErrConfig)
	}
	ciphertext, iv, salt, err := r.decodeBlobs()
	if err != nil {
		return err
	}
	if len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return fmt.Errorf("%w: ciphertext not block aligned", ErrConfig)
	}
	if len(iv) != ivLen || len(salt) != saltLen {
		return fmt.Errorf("%w: bad iv or salt size", ErrConfig)
	}
	return nil
}

func (r Record) decodeBlobs() (ciphertext, iv, salt []byte, err error) {
	if ciphertext, err = base64.StdEncoding.DecodeString(r.EncryptedPrivateKey); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: ciphertext not base64", ErrConfig)
	}
	if iv, err = base64.StdEncoding.DecodeString(r.IV); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: iv not base64", ErrConfig)
	}
	if salt, err = base64.StdEncoding.DecodeString(r.Salt); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: salt not base64", ErrConfig)
	}
	return ciphertext, iv, salt, nil
}

// WriteRedacted implements security.Redactor: the record renders with a
// shortened address and without its blobs.
func (r Record) WriteRedacted(w io.Writer) {
	fmt.Fprintf(w, "Wallet{name: %s, address: %s, network: %s, key: %s}",
		r.Name, security.RedactAddress(r.Address), r.Network, security.RedactBytes(nil, false))
}

// String routes through the redacted form so a Record can never print its
// blobs via plain %v or %s.
func (r Record) String() string {
	return security.Redact(r).String()
}

// WalletData is the wallet file's in-memory form: every stored record keyed
// by normalized address, plus the address of the currently selected wallet.
type WalletData struct {
	CurrentWallet string            `json:"current_wallet"`
	Wallets       map[string]Record `json:"wallets"`
}

// NewWalletData returns an empty wallet file.
func NewWalletData() *WalletData {
	return &WalletData{Wallets: make(map[string]Record)}
}

// Add stores a record and makes it the current wallet. Adding an address
// that already exists fails with ErrDuplicateWallet.
func (d *WalletData) Add(rec Record) error {
	addr := NormalizeAddress(rec.Address)
	if _, ok := d.Wallets[addr]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateWallet, security.RedactAddress(addr))
	}
	if d.Wallets == nil {
		d.Wallets = make(map[string]Record)
	}
	d.Wallets[addr] = rec
	d.CurrentWallet = addr
	return nil
}

// Current returns the currently selected wallet.
func (d *WalletData) Current() (Record, bool) {
	rec, ok := d.Wallets[d.CurrentWallet]
	return rec, ok
}

// ByAddress looks a wallet up by address, any case.
func (d *WalletData) ByAddress(address string) (Record, bool) {
	rec, ok := d.Wallets[NormalizeAddress(address)]
	return rec, ok
}

// ByName scans for a wallet with the given display name.
func (d *WalletData) ByName(name string) (Record, bool) {
	for _, rec := range d.Wallets {
		if rec.Name == name {
			return rec, true
		}
	}
	return Record{}, false
}

// Switch makes the wallet at address current.
func (d *WalletData) Switch(address string) error {
	addr := NormalizeAddress(address)
	if _, ok := d.Wallets[addr]; !ok {
		return fmt.Errorf("%w: %s", ErrWalletNotFound, security.RedactAddress(address))
	}
	d.CurrentWallet = addr
	return nil
}

// Remove deletes the wallet at address. When the removed wallet was current,
// the selection is cleared rather than reassigned.
func (d *WalletData) Remove(address string) error {
	addr := NormalizeAddress(address)
	if _, ok := d.Wallets[addr]; !ok {
		return fmt.Errorf("%w: %s", ErrWalletNotFound, security.RedactAddress(address))
	}
	if d.CurrentWallet == addr {
		d.CurrentWallet = ""
	}
	delete(d.Wallets, addr)
	return nil
}

// Rename changes the display name of the wallet at address.
func (d *WalletData) Rename(address, newName string) error {
	addr := NormalizeAddress(address)
	rec, ok := d.Wallets[addr]
	if !ok {
		return fmt.Errorf("%w: %s", ErrWalletNotFound, security.RedactAddress(address))
	}
	rec.Name = newName
	d.Wallets[addr] = rec
	return nil
}

// List returns all records sorted by name for stable display.
func (d *WalletData) List() []Record {
	out := make([]Record, 0, len(d.Wallets))
	for _, rec := range d.Wallets {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Address < out[j].Address
	})
	return out
}
