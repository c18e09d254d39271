// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/rskvault/rskvault/internal/model"
	"github.com/rskvault/rskvault/internal/security"
)

// Store defines the interface for all metadata persistence in rskvault:
// the contact address book, provider API keys and the local activity log.
// Wallet key material never passes through this interface; encrypted keys
// live in the wallet file, not the database. The interface allows multiple
// database backends to be implemented.
type Store interface {
	// Contact methods
	AddContact(name, address, network, notes string) (int, error)
	GetAllContacts() ([]model.Contact, error)
	GetContactByName(name string) (*model.Contact, error)
	DeleteContact(id int) error
	RenameContact(id int, newName string) error
	UpdateContactNotes(id int, notes string) error

	// API key methods. Put replaces any existing key for the same
	// provider and network pair.
	PutAPIKey(provider, network string, key security.Secret) error
	GetAPIKey(provider, network string) (*model.APIKeyRecord, error)
	GetAllAPIKeys() ([]model.APIKeyRecord, error)
	DeleteAPIKey(provider, network string) error

	// Activity log methods
	LogActivity(entry model.ActivityEntry) error
	GetRecentActivity(limit int) ([]model.ActivityEntry, error)

	// Backup methods
	ExportDataForBackup() (*model.BackupData, error)
	ImportDataFromBackup(backup *model.BackupData) error
	IntegrateDataFromBackup(backup *model.BackupData) error

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error
}
