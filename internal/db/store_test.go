// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rskvault/rskvault/internal/model"
	"github.com/rskvault/rskvault/internal/security"
)

const (
	testAddr1 = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	testAddr2 = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

func TestContactLifecycle(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		id, err := AddContact("alice", testAddr1, "mainnet", "exchange account")
		if err != nil {
			t.Fatalf("AddContact failed: %v", err)
		}
		if id <= 0 {
			t.Fatalf("expected positive contact id, got %d", id)
		}

		if _, err := AddContact("alice", testAddr2, "mainnet", ""); !errors.Is(err, ErrDuplicate) {
			t.Errorf("expected ErrDuplicate for second 'alice', got %v", err)
		}

		if _, err := AddContact("bob", testAddr2, "testnet", ""); err != nil {
			t.Fatalf("AddContact bob failed: %v", err)
		}

		all, err := GetAllContacts()
		if err != nil {
			t.Fatalf("GetAllContacts failed: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 contacts, got %d", len(all))
		}
		if all[0].Name != "alice" || all[1].Name != "bob" {
			t.Errorf("expected name ordering [alice bob], got [%s %s]", all[0].Name, all[1].Name)
		}

		c, err := GetContactByName("alice")
		if err != nil {
			t.Fatalf("GetContactByName failed: %v", err)
		}
		if c == nil {
			t.Fatal("expected contact alice, got nil")
		}
		if c.Address != testAddr1 || c.Network != "mainnet" || c.Notes != "exchange account" {
			t.Errorf("unexpected contact fields: %+v", c)
		}
		if c.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}

		missing, err := GetContactByName("nobody")
		if err != nil {
			t.Fatalf("GetContactByName(nobody) failed: %v", err)
		}
		if missing != nil {
			t.Errorf("expected nil for missing contact, got %+v", missing)
		}

		if err := RenameContact(id, "alice-main"); err != nil {
			t.Fatalf("RenameContact failed: %v", err)
		}
		if c, _ := GetContactByName("alice-main"); c == nil {
			t.Error("expected renamed contact to resolve")
		}

		if err := UpdateContactNotes(id, "cold storage"); err != nil {
			t.Fatalf("UpdateContactNotes failed: %v", err)
		}
		if c, _ := GetContactByName("alice-main"); c == nil || c.Notes != "cold storage" {
			t.Errorf("expected updated notes, got %+v", c)
		}

		if err := DeleteContact(id); err != nil {
			t.Fatalf("DeleteContact failed: %v", err)
		}
		if c, _ := GetContactByName("alice-main"); c != nil {
			t.Errorf("expected contact gone after delete, got %+v", c)
		}
	})
}

func TestAPIKeyLifecycle(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		key := security.FromString("alchemy-key-one")
		if err := PutAPIKey("alchemy", "mainnet", key); err != nil {
			t.Fatalf("PutAPIKey failed: %v", err)
		}

		rec, err := GetAPIKey("alchemy", "mainnet")
		if err != nil {
			t.Fatalf("GetAPIKey failed: %v", err)
		}
		if rec == nil {
			t.Fatal("expected stored key, got nil")
		}
		if got, _ := rec.Key.Expose(); got != "alchemy-key-one" {
			t.Errorf("key round trip mismatch: got %q", got)
		}
		if rec.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}

		// Same provider/network replaces rather than duplicates.
		if err := PutAPIKey("alchemy", "mainnet", security.FromString("alchemy-key-two")); err != nil {
			t.Fatalf("replace PutAPIKey failed: %v", err)
		}
		if err := PutAPIKey("alchemy", "testnet", security.FromString("alchemy-key-test")); err != nil {
			t.Fatalf("testnet PutAPIKey failed: %v", err)
		}

		all, err := GetAllAPIKeys()
		if err != nil {
			t.Fatalf("GetAllAPIKeys failed: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 keys after replace, got %d", len(all))
		}
		rec, err = GetAPIKey("alchemy", "mainnet")
		if err != nil || rec == nil {
			t.Fatalf("GetAPIKey after replace failed: rec=%v err=%v", rec, err)
		}
		if got, _ := rec.Key.Expose(); got != "alchemy-key-two" {
			t.Errorf("expected replaced key value, got %q", got)
		}

		if err := DeleteAPIKey("alchemy", "mainnet"); err != nil {
			t.Fatalf("DeleteAPIKey failed: %v", err)
		}
		rec, err = GetAPIKey("alchemy", "mainnet")
		if err != nil {
			t.Fatalf("GetAPIKey after delete failed: %v", err)
		}
		if rec != nil {
			t.Errorf("expected nil after delete, got %+v", rec)
		}
	})
}

func TestActivityLog(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		entries := []model.ActivityEntry{
			{Action: "CREATE_WALLET", WalletAddress: testAddr1, Network: "testnet", Timestamp: base},
			{Action: "SEND_TX", WalletAddress: testAddr1, TxHash: "0xabc", Network: "testnet", Timestamp: base.Add(2 * time.Hour)},
			{Action: "EXPORT_KEY", WalletAddress: testAddr1, Timestamp: base.Add(time.Hour)},
		}
		for _, e := range entries {
			if err := LogActivity(e); err != nil {
				t.Fatalf("LogActivity failed: %v", err)
			}
		}
		if err := LogAction("SWITCH_NETWORK", "network: mainnet"); err != nil {
			t.Fatalf("LogAction failed: %v", err)
		}

		recent, err := GetRecentActivity(0)
		if err != nil {
			t.Fatalf("GetRecentActivity failed: %v", err)
		}
		if len(recent) != 4 {
			t.Fatalf("expected 4 entries, got %d", len(recent))
		}
		// LogAction stamps now, which is after every fixed timestamp.
		if recent[0].Action != "SWITCH_NETWORK" {
			t.Errorf("expected SWITCH_NETWORK first, got %s", recent[0].Action)
		}
		if recent[1].Action != "SEND_TX" || recent[2].Action != "EXPORT_KEY" || recent[3].Action != "CREATE_WALLET" {
			t.Errorf("unexpected ordering: %s, %s, %s", recent[1].Action, recent[2].Action, recent[3].Action)
		}
		if recent[1].TxHash != "0xabc" {
			t.Errorf("expected tx hash preserved, got %q", recent[1].TxHash)
		}

		limited, err := GetRecentActivity(2)
		if err != nil {
			t.Fatalf("GetRecentActivity(2) failed: %v", err)
		}
		if len(limited) != 2 {
			t.Fatalf("expected 2 limited entries, got %d", len(limited))
		}
		if limited[0].Action != "SWITCH_NETWORK" || limited[1].Action != "SEND_TX" {
			t.Errorf("limit kept wrong entries: %s, %s", limited[0].Action, limited[1].Action)
		}
	})
}

func TestMutationsRecordActivity(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		if _, err := AddContact("carol", testAddr1, "mainnet", ""); err != nil {
			t.Fatalf("AddContact failed: %v", err)
		}
		if err := PutAPIKey("alchemy", "mainnet", security.FromString("super-secret-key-123")); err != nil {
			t.Fatalf("PutAPIKey failed: %v", err)
		}

		recent, err := GetRecentActivity(0)
		if err != nil {
			t.Fatalf("GetRecentActivity failed: %v", err)
		}

		var sawAdd, sawSet bool
		for _, e := range recent {
			if e.Action == "ADD_CONTACT" {
				sawAdd = true
				if !strings.Contains(e.Details, "carol") {
					t.Errorf("ADD_CONTACT details missing name: %q", e.Details)
				}
				if strings.Contains(e.Details, testAddr1) {
					t.Errorf("ADD_CONTACT details contain the full address: %q", e.Details)
				}
			}
			if e.Action == "SET_API_KEY" {
				sawSet = true
			}
			if strings.Contains(e.Details, "super-secret-key-123") {
				t.Errorf("activity details leak the API key: %q", e.Details)
			}
		}
		if !sawAdd || !sawSet {
			t.Errorf("expected ADD_CONTACT and SET_API_KEY entries, got add=%t set=%t", sawAdd, sawSet)
		}
	})
}

func TestBackupExportImport(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		if _, err := AddContact("alice", testAddr1, "mainnet", "note"); err != nil {
			t.Fatalf("AddContact failed: %v", err)
		}
		if err := PutAPIKey("alchemy", "mainnet", security.FromString("backup-me")); err != nil {
			t.Fatalf("PutAPIKey failed: %v", err)
		}

		backup, err := ExportDataForBackup()
		if err != nil {
			t.Fatalf("ExportDataForBackup failed: %v", err)
		}
		if len(backup.Contacts) != 1 || len(backup.APIKeys) != 1 {
			t.Fatalf("unexpected backup sizes: contacts=%d keys=%d", len(backup.Contacts), len(backup.APIKeys))
		}
		if backup.APIKeys[0].Key != "backup-me" {
			t.Errorf("backup must carry the raw key for restore, got %q", backup.APIKeys[0].Key)
		}
		if backup.ExportedAt.IsZero() {
			t.Error("expected ExportedAt to be set")
		}
		if len(backup.Activity) == 0 {
			t.Error("expected mutation activity in backup")
		}

		// Diverge from the snapshot, then restore it.
		if _, err := AddContact("mallory", testAddr2, "mainnet", ""); err != nil {
			t.Fatalf("AddContact mallory failed: %v", err)
		}
		if err := ImportDataFromBackup(backup); err != nil {
			t.Fatalf("ImportDataFromBackup failed: %v", err)
		}

		if c, _ := GetContactByName("mallory"); c != nil {
			t.Error("expected mallory to be gone after restore")
		}
		c, err := GetContactByName("alice")
		if err != nil || c == nil {
			t.Fatalf("expected alice after restore: c=%v err=%v", c, err)
		}
		if c.Address != testAddr1 {
			t.Errorf("restored contact address mismatch: %s", c.Address)
		}
		rec, err := GetAPIKey("alchemy", "mainnet")
		if err != nil || rec == nil {
			t.Fatalf("expected restored key: rec=%v err=%v", rec, err)
		}
		if got, _ := rec.Key.Expose(); got != "backup-me" {
			t.Errorf("restored key mismatch: %q", got)
		}
	})
}

func TestBackupIntegrateKeepsExisting(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		if _, err := AddContact("alice", testAddr1, "mainnet", ""); err != nil {
			t.Fatalf("AddContact failed: %v", err)
		}

		backup := &model.BackupData{
			Contacts: []model.Contact{
				{Name: "alice", Address: testAddr2, Network: "mainnet"},
				{Name: "carol", Address: testAddr2, Network: "testnet"},
			},
			APIKeys: []model.APIKeyExport{
				{Provider: "alchemy", Network: "mainnet", Key: "merged-key"},
			},
		}
		if err := IntegrateDataFromBackup(backup); err != nil {
			t.Fatalf("IntegrateDataFromBackup failed: %v", err)
		}

		// Existing alice keeps her address; carol is merged in.
		c, _ := GetContactByName("alice")
		if c == nil || c.Address != testAddr1 {
			t.Errorf("expected alice untouched, got %+v", c)
		}
		c, _ = GetContactByName("carol")
		if c == nil || c.Network != "testnet" {
			t.Errorf("expected carol merged, got %+v", c)
		}
		rec, _ := GetAPIKey("alchemy", "mainnet")
		var got string
		if rec != nil {
			got, _ = rec.Key.Expose()
		}
		if rec == nil || got != "merged-key" {
			t.Errorf("expected merged api key, got %+v", rec)
		}
	})
}
