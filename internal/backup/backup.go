// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup produces and restores zstd-compressed JSON snapshots of
// everything rskvault persists: the wallet file (encrypted key records)
// and the metadata store (contacts, API keys, activity log). A snapshot
// contains raw API keys and must be handled like the wallet file itself.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"encoding/json"

	"github.com/klauspost/compress/zstd"
	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/model"
	"github.com/rskvault/rskvault/internal/wallet"
)

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1

// ErrVersion is returned when a snapshot was written by a newer format.
var ErrVersion = errors.New("unsupported snapshot version")

// Snapshot is the full backup payload.
type Snapshot struct {
	Version   int                `json:"version"`
	CreatedAt time.Time          `json:"created_at"`
	Wallets   *wallet.WalletData `json:"wallets,omitempty"`
	Metadata  *model.BackupData  `json:"metadata,omitempty"`
}

// RestoreOptions controls restore behavior used by Restore.
type RestoreOptions struct {
	// Full indicates whether to perform a full restore (true) or an
	// incremental/merge restore (false).
	Full bool
}

// Create assembles a snapshot from the store and the wallet data. Either
// source may be nil when that half is not wanted.
func Create(st db.Store, wallets *wallet.WalletData) (*Snapshot, error) {
	snap := &Snapshot{
		Version:   SnapshotVersion,
		CreatedAt: time.Now().UTC(),
		Wallets:   wallets,
	}
	if st != nil {
		data, err := st.ExportDataForBackup()
		if err != nil {
			return nil, fmt.Errorf("export metadata: %w", err)
		}
		snap.Metadata = data
	}
	return snap, nil
}

// Write writes the compressed JSON snapshot to w.
func Write(w io.Writer, snap *Snapshot) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode backup: %w", err)
	}
	return zw.Close()
}

// Read decodes a compressed JSON snapshot from r.
func Read(r io.Reader) (*Snapshot, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()
	var snap Snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	if snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, snap.Version)
	}
	return &snap, nil
}

// Restore applies a snapshot. A full restore replaces the store contents
// and the wallet file; a merge restore integrates metadata by natural key
// and adds only wallets whose address is not already present. The caller
// is responsible for confirming destructive restores with the user first.
func Restore(snap *Snapshot, opts RestoreOptions, st db.Store, ks *wallet.Keystore) error {
	if snap.Metadata != nil && st != nil {
		var err error
		if opts.Full {
			err = st.ImportDataFromBackup(snap.Metadata)
		} else {
			err = st.IntegrateDataFromBackup(snap.Metadata)
		}
		if err != nil {
			return fmt.Errorf("restore metadata: %w", err)
		}
	}

	if snap.Wallets == nil || ks == nil {
		return nil
	}
	if opts.Full {
		if err := ks.Save(snap.Wallets); err != nil {
			return fmt.Errorf("restore wallet file: %w", err)
		}
		return nil
	}
	err := ks.Update(func(data *wallet.WalletData) error {
		// Add switches the selection to each new wallet; merging must not
		// steal the user's current one.
		prevCurrent := data.CurrentWallet
		for _, rec := range snap.Wallets.List() {
			if _, ok := data.ByAddress(rec.Address); ok {
				continue
			}
			if err := data.Add(rec); err != nil {
				return err
			}
		}
		if prevCurrent != "" {
			data.CurrentWallet = prevCurrent
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("merge wallet file: %w", err)
	}
	return nil
}

// WriteFile writes a snapshot to path with owner-only permissions.
func WriteFile(path string, snap *Snapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create backup directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	if err := Write(f, snap); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a snapshot from path.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open backup file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}
