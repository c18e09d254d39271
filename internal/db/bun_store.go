// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"

	"github.com/rskvault/rskvault/internal/model"
	"github.com/rskvault/rskvault/internal/security"
	"github.com/uptrace/bun"
)

// BunStore is the consolidated bun-backed Store implementation used for all
// supported database engines. It delegates operations to centralized Bun
// helpers in this package. Mutations record themselves in the activity log;
// log failures never fail the mutation.
type BunStore struct {
	bun *bun.DB
}

// BunDB returns the underlying *bun.DB for advanced callers.
func (s *BunStore) BunDB() *bun.DB { return s.bun }

func (s *BunStore) AddContact(name, address, network, notes string) (int, error) {
	id, err := AddContactBun(s.bun, name, address, network, notes)
	if err == nil {
		_ = s.LogActivity(model.ActivityEntry{
			Action:  "ADD_CONTACT",
			Details: fmt.Sprintf("contact: %s (%s)", name, security.RedactAddress(address)),
			Network: network,
		})
	}
	return id, err
}

func (s *BunStore) GetAllContacts() ([]model.Contact, error) {
	return GetAllContactsBun(s.bun)
}

func (s *BunStore) GetContactByName(name string) (*model.Contact, error) {
	return GetContactByNameBun(s.bun, name)
}

func (s *BunStore) DeleteContact(id int) error {
	details := fmt.Sprintf("id: %d", id)
	if c, err2 := GetContactByIDBun(s.bun, id); err2 == nil && c != nil {
		details = fmt.Sprintf("contact: %s (%s)", c.Name, security.RedactAddress(c.Address))
	}
	err := DeleteContactBun(s.bun, id)
	if err == nil {
		_ = s.LogActivity(model.ActivityEntry{Action: "DELETE_CONTACT", Details: details})
	}
	return err
}

func (s *BunStore) RenameContact(id int, newName string) error {
	err := RenameContactBun(s.bun, id, newName)
	if err == nil {
		_ = s.LogActivity(model.ActivityEntry{
			Action:  "RENAME_CONTACT",
			Details: fmt.Sprintf("contact_id: %d, new_name: '%s'", id, newName),
		})
	}
	return err
}

func (s *BunStore) UpdateContactNotes(id int, notes string) error {
	return UpdateContactNotesBun(s.bun, id, notes)
}

func (s *BunStore) PutAPIKey(provider, network string, key security.Secret) error {
	err := PutAPIKeyBun(s.bun, provider, network, key)
	if err == nil {
		_ = s.LogActivity(model.ActivityEntry{
			Action:  "SET_API_KEY",
			Details: fmt.Sprintf("provider: %s", provider),
			Network: network,
		})
	}
	return err
}

func (s *BunStore) GetAPIKey(provider, network string) (*model.APIKeyRecord, error) {
	return GetAPIKeyBun(s.bun, provider, network)
}

func (s *BunStore) GetAllAPIKeys() ([]model.APIKeyRecord, error) {
	return GetAllAPIKeysBun(s.bun)
}

func (s *BunStore) DeleteAPIKey(provider, network string) error {
	err := DeleteAPIKeyBun(s.bun, provider, network)
	if err == nil {
		_ = s.LogActivity(model.ActivityEntry{
			Action:  "DELETE_API_KEY",
			Details: fmt.Sprintf("provider: %s", provider),
			Network: network,
		})
	}
	return err
}

func (s *BunStore) LogActivity(entry model.ActivityEntry) error {
	return LogActivityBun(s.bun, entry)
}

func (s *BunStore) GetRecentActivity(limit int) ([]model.ActivityEntry, error) {
	return GetRecentActivityBun(s.bun, limit)
}

func (s *BunStore) ExportDataForBackup() (*model.BackupData, error) {
	return ExportDataForBackupBun(s.bun)
}

func (s *BunStore) ImportDataFromBackup(backup *model.BackupData) error {
	return ImportDataFromBackupBun(s.bun, backup)
}

func (s *BunStore) IntegrateDataFromBackup(backup *model.BackupData) error {
	return IntegrateDataFromBackupBun(s.bun, backup)
}

func (s *BunStore) Ping(ctx context.Context) error {
	return s.bun.PingContext(ctx)
}
