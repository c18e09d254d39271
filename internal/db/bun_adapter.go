// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rskvault/rskvault/internal/model"
	"github.com/rskvault/rskvault/internal/security"
	"github.com/uptrace/bun"
)

// ContactModel maps the `contacts` table for Bun queries.
type ContactModel struct {
	bun.BaseModel `bun:"table:contacts"`
	ID            int            `bun:"id,pk,autoincrement"`
	Name          string         `bun:"name"`
	Address       string         `bun:"address"`
	Network       string         `bun:"network"`
	Notes         sql.NullString `bun:"notes"`
	CreatedAt     time.Time      `bun:"created_at"`
}

// APIKeyModel maps the `api_keys` table. The key column round-trips
// through security.Secret's Valuer/Scanner so the raw key only exists
// inside the container.
type APIKeyModel struct {
	bun.BaseModel `bun:"table:api_keys"`
	ID            int             `bun:"id,pk,autoincrement"`
	Provider      string          `bun:"provider"`
	Network       string          `bun:"network"`
	Key           security.Secret `bun:"api_key"`
	CreatedAt     time.Time       `bun:"created_at"`
}

// ActivityModel maps the `activity_log` table.
type ActivityModel struct {
	bun.BaseModel `bun:"table:activity_log"`
	ID            int            `bun:"id,pk,autoincrement"`
	WalletAddress sql.NullString `bun:"wallet_address"`
	Action        string         `bun:"action"`
	Details       sql.NullString `bun:"details"`
	TxHash        sql.NullString `bun:"tx_hash"`
	Network       sql.NullString `bun:"network"`
	Timestamp     time.Time      `bun:"timestamp"`
}

// --- Mapping helpers (centralized conversions) ---
func contactModelToModel(c ContactModel) model.Contact {
	out := model.Contact{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Network:   c.Network,
		CreatedAt: c.CreatedAt,
	}
	if c.Notes.Valid {
		out.Notes = c.Notes.String
	}
	return out
}

func apiKeyModelToModel(m APIKeyModel) model.APIKeyRecord {
	return model.APIKeyRecord{ID: m.ID, Provider: m.Provider, Network: m.Network, Key: m.Key, CreatedAt: m.CreatedAt}
}

func activityModelToModel(a ActivityModel) model.ActivityEntry {
	out := model.ActivityEntry{
		ID:        a.ID,
		Action:    a.Action,
		Timestamp: a.Timestamp,
	}
	if a.WalletAddress.Valid {
		out.WalletAddress = a.WalletAddress.String
	}
	if a.Details.Valid {
		out.Details = a.Details.String
	}
	if a.TxHash.Valid {
		out.TxHash = a.TxHash.String
	}
	if a.Network.Valid {
		out.Network = a.Network.String
	}
	return out
}

// GetAllContactsBun returns all contacts ordered by name.
func GetAllContactsBun(bdb *bun.DB) ([]model.Contact, error) {
	ctx := context.Background()
	var cm []ContactModel
	err := bdb.NewSelect().Model(&cm).OrderExpr("name").Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Contact, 0, len(cm))
	for _, c := range cm {
		out = append(out, contactModelToModel(c))
	}
	return out, nil
}

// AddContactBun inserts a new contact and returns its ID.
func AddContactBun(bdb *bun.DB, name, address, network, notes string) (int, error) {
	ctx := context.Background()
	cm := &ContactModel{
		Name:      name,
		Address:   address,
		Network:   network,
		Notes:     sql.NullString{String: notes, Valid: notes != ""},
		CreatedAt: time.Now().UTC(),
	}
	// Use Bun's NewInsert with Returning to support Postgres and MySQL.
	if _, err := bdb.NewInsert().Model(cm).Column("name", "address", "network", "notes", "created_at").Returning("id").Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	return cm.ID, nil
}

// GetContactByNameBun retrieves a contact by its unique name. A missing
// contact yields (nil, nil).
func GetContactByNameBun(bdb *bun.DB, name string) (*model.Contact, error) {
	ctx := context.Background()
	var cm ContactModel
	err := bdb.NewSelect().Model(&cm).Where("name = ?", name).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c := contactModelToModel(cm)
	return &c, nil
}

// GetContactByIDBun retrieves a contact by id. A missing contact yields (nil, nil).
func GetContactByIDBun(bdb *bun.DB, id int) (*model.Contact, error) {
	ctx := context.Background()
	var cm ContactModel
	err := bdb.NewSelect().Model(&cm).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c := contactModelToModel(cm)
	return &c, nil
}

// DeleteContactBun removes a contact by id.
func DeleteContactBun(bdb *bun.DB, id int) error {
	ctx := context.Background()
	_, err := bdb.NewDelete().Model((*ContactModel)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// RenameContactBun changes a contact's name, subject to the unique constraint.
func RenameContactBun(bdb *bun.DB, id int, newName string) error {
	ctx := context.Background()
	_, err := bdb.NewUpdate().Model((*ContactModel)(nil)).Set("name = ?", newName).Where("id = ?", id).Exec(ctx)
	return MapDBError(err)
}

// UpdateContactNotesBun replaces the notes for a contact.
func UpdateContactNotesBun(bdb *bun.DB, id int, notes string) error {
	ctx := context.Background()
	_, err := bdb.NewUpdate().Model((*ContactModel)(nil)).
		Set("notes = ?", sql.NullString{String: notes, Valid: notes != ""}).
		Where("id = ?", id).Exec(ctx)
	return err
}

// PutAPIKeyBun stores a provider API key, replacing any existing key for
// the same provider and network. The delete-then-insert runs in one
// transaction so a failed insert cannot drop the old key.
func PutAPIKeyBun(bdb *bun.DB, provider, network string, key security.Secret) error {
	ctx := context.Background()
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*APIKeyModel)(nil)).
			Where("provider = ? AND network = ?", provider, network).Exec(ctx); err != nil {
			return err
		}
		m := &APIKeyModel{Provider: provider, Network: network, Key: key, CreatedAt: time.Now().UTC()}
		if _, err := tx.NewInsert().Model(m).Column("provider", "network", "api_key", "created_at").Exec(ctx); err != nil {
			return MapDBError(err)
		}
		return nil
	})
}

// GetAPIKeyBun retrieves the key for a provider/network pair. A missing
// key yields (nil, nil).
func GetAPIKeyBun(bdb *bun.DB, provider, network string) (*model.APIKeyRecord, error) {
	ctx := context.Background()
	var m APIKeyModel
	err := bdb.NewSelect().Model(&m).Where("provider = ? AND network = ?", provider, network).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	r := apiKeyModelToModel(m)
	return &r, nil
}

// GetAllAPIKeysBun returns all stored keys ordered by provider then network.
func GetAllAPIKeysBun(bdb *bun.DB) ([]model.APIKeyRecord, error) {
	ctx := context.Background()
	var km []APIKeyModel
	err := bdb.NewSelect().Model(&km).OrderExpr("provider, network").Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.APIKeyRecord, 0, len(km))
	for _, m := range km {
		out = append(out, apiKeyModelToModel(m))
	}
	return out, nil
}

// DeleteAPIKeyBun removes the key for a provider/network pair.
func DeleteAPIKeyBun(bdb *bun.DB, provider, network string) error {
	ctx := context.Background()
	_, err := bdb.NewDelete().Model((*APIKeyModel)(nil)).
		Where("provider = ? AND network = ?", provider, network).Exec(ctx)
	return err
}

// LogActivityBun appends an entry to the activity log. A zero timestamp
// is filled with the current time.
func LogActivityBun(bdb *bun.DB, entry model.ActivityEntry) error {
	ctx := context.Background()
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	am := &ActivityModel{
		WalletAddress: sql.NullString{String: entry.WalletAddress, Valid: entry.WalletAddress != ""},
		Action:        entry.Action,
		Details:       sql.NullString{String: entry.Details, Valid: entry.Details != ""},
		TxHash:        sql.NullString{String: entry.TxHash, Valid: entry.TxHash != ""},
		Network:       sql.NullString{String: entry.Network, Valid: entry.Network != ""},
		Timestamp:     ts,
	}
	_, err := bdb.NewInsert().Model(am).
		Column("wallet_address", "action", "details", "tx_hash", "network", "timestamp").Exec(ctx)
	return err
}

// GetRecentActivityBun returns activity entries, most recent first. A
// limit of zero or less returns everything.
func GetRecentActivityBun(bdb *bun.DB, limit int) ([]model.ActivityEntry, error) {
	ctx := context.Background()
	var am []ActivityModel
	q := bdb.NewSelect().Model(&am).OrderExpr("timestamp DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.ActivityEntry, 0, len(am))
	for _, a := range am {
		out = append(out, activityModelToModel(a))
	}
	return out, nil
}

// ExportDataForBackupBun reads every table inside one transaction so the
// snapshot is consistent.
func ExportDataForBackupBun(bdb *bun.DB) (*model.BackupData, error) {
	ctx := context.Background()
	var backup *model.BackupData
	err := WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		backup = &model.BackupData{ExportedAt: time.Now().UTC()}

		var cm []ContactModel
		if err := tx.NewSelect().Model(&cm).OrderExpr("id").Scan(ctx); err != nil {
			return err
		}
		for _, c := range cm {
			backup.Contacts = append(backup.Contacts, contactModelToModel(c))
		}

		var km []APIKeyModel
		if err := tx.NewSelect().Model(&km).OrderExpr("id").Scan(ctx); err != nil {
			return err
		}
		for _, k := range km {
			raw, err := k.Key.Expose()
			if err != nil {
				return fmt.Errorf("export api key %s/%s: %w", k.Provider, k.Network, err)
			}
			backup.APIKeys = append(backup.APIKeys, model.APIKeyExport{
				Provider:  k.Provider,
				Network:   k.Network,
				Key:       raw,
				CreatedAt: k.CreatedAt,
			})
		}

		var am []ActivityModel
		if err := tx.NewSelect().Model(&am).OrderExpr("id").Scan(ctx); err != nil {
			return err
		}
		for _, a := range am {
			backup.Activity = append(backup.Activity, activityModelToModel(a))
		}
		return nil
	})
	return backup, err
}

// ImportDataFromBackupBun performs a full wipe-and-replace using a Bun transaction.
func ImportDataFromBackupBun(bdb *bun.DB, backup *model.BackupData) error {
	ctx := context.Background()
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		for _, t := range []string{"activity_log", "api_keys", "contacts"} {
			if _, err := ExecRaw(ctx, tx, "DELETE FROM "+t); err != nil {
				return err
			}
		}

		for _, c := range backup.Contacts {
			if _, err := ExecRaw(ctx, tx,
				"INSERT INTO contacts (id, name, address, network, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)",
				c.ID, c.Name, c.Address, c.Network, c.Notes, c.CreatedAt); err != nil {
				return MapDBError(err)
			}
		}
		for _, k := range backup.APIKeys {
			if _, err := ExecRaw(ctx, tx,
				"INSERT INTO api_keys (provider, network, api_key, created_at) VALUES (?, ?, ?, ?)",
				k.Provider, k.Network, k.Key, k.CreatedAt); err != nil {
				return MapDBError(err)
			}
		}
		for _, a := range backup.Activity {
			ts := a.Timestamp
			if ts.IsZero() {
				ts = time.Now().UTC()
			}
			if _, err := ExecRaw(ctx, tx,
				"INSERT INTO activity_log (id, wallet_address, action, details, tx_hash, network, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)",
				a.ID, a.WalletAddress, a.Action, a.Details, a.TxHash, a.Network, ts); err != nil {
				return MapDBError(err)
			}
		}
		return nil
	})
}

// IntegrateDataFromBackupBun merges a backup into the existing data
// without touching rows that already exist. Contacts are matched by
// name, API keys by provider and network; activity entries are not
// merged since replaying history would duplicate it.
func IntegrateDataFromBackupBun(bdb *bun.DB, backup *model.BackupData) error {
	ctx := context.Background()
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		for _, c := range backup.Contacts {
			exists, err := tx.NewSelect().Model((*ContactModel)(nil)).Where("name = ?", c.Name).Exists(ctx)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if _, err := ExecRaw(ctx, tx,
				"INSERT INTO contacts (name, address, network, notes, created_at) VALUES (?, ?, ?, ?, ?)",
				c.Name, c.Address, c.Network, c.Notes, c.CreatedAt); err != nil {
				return MapDBError(err)
			}
		}
		for _, k := range backup.APIKeys {
			exists, err := tx.NewSelect().Model((*APIKeyModel)(nil)).
				Where("provider = ? AND network = ?", k.Provider, k.Network).Exists(ctx)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if _, err := ExecRaw(ctx, tx,
				"INSERT INTO api_keys (provider, network, api_key, created_at) VALUES (?, ?, ?, ?)",
				k.Provider, k.Network, k.Key, k.CreatedAt); err != nil {
				return MapDBError(err)
			}
		}
		return nil
	})
}
