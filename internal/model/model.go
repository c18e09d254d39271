// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the shared data structures persisted by the
// metadata store: address-book contacts, provider API key records and
// the local activity log.
package model

import (
	"fmt"
	"time"

	"github.com/rskvault/rskvault/internal/security"
)

// Contact is an address-book entry mapping a human name to a Rootstock
// address on a given network.
type Contact struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Network   string    `json:"network"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// String returns the name and a shortened address, suitable for lists.
func (c Contact) String() string {
	return fmt.Sprintf("%s <%s>", c.Name, security.RedactAddress(c.Address))
}

// APIKeyRecord holds a provider API key for a specific network. The key
// itself is wrapped in security.Secret so it never leaks through logs or
// accidental printing; the database round-trip goes through the Secret
// Valuer/Scanner implementations.
type APIKeyRecord struct {
	ID        int
	Provider  string
	Network   string
	Key       security.Secret
	CreatedAt time.Time
}

// String renders the record without the key material.
func (r APIKeyRecord) String() string {
	return fmt.Sprintf("%s (%s)", r.Provider, r.Network)
}

// ActivityEntry records a single wallet action (create, import, send,
// export) for the local activity log. TxHash is empty for actions that
// do not touch the chain.
type ActivityEntry struct {
	ID            int       `json:"id"`
	WalletAddress string    `json:"wallet_address,omitempty"`
	Action        string    `json:"action"`
	Details       string    `json:"details,omitempty"`
	TxHash        string    `json:"tx_hash,omitempty"`
	Network       string    `json:"network,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// APIKeyExport is the backup form of an APIKeyRecord. Secret redacts
// itself during JSON marshaling, so the export flow copies the key into
// this plain field explicitly; the resulting archive contains the key
// and must be treated like the wallet file itself.
type APIKeyExport struct {
	Provider  string    `json:"provider"`
	Network   string    `json:"network"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupData is the serializable snapshot of every metadata table, used
// by the backup export and restore flows.
type BackupData struct {
	Contacts   []Contact       `json:"contacts"`
	APIKeys    []APIKeyExport  `json:"api_keys"`
	Activity   []ActivityEntry `json:"activity"`
	ExportedAt time.Time       `json:"exported_at"`
}
