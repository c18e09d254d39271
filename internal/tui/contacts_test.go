// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/i18n"
)

func seedContacts(t *testing.T) {
	t.Helper()
	for _, c := range []struct{ name, addr string }{
		{"alice", testAddrOne},
		{"bob", testAddrTwo},
	} {
		if _, err := db.AddContact(c.name, c.addr, "testnet", ""); err != nil {
			t.Fatalf("AddContact(%s) failed: %v", c.name, err)
		}
	}
}

func TestContactsTableAndFilter(t *testing.T) {
	i18n.Init("en")
	setupTestDB(t)
	seedContacts(t)

	m := newContactsModel()
	if m.err != nil {
		t.Fatalf("unexpected load error: %v", m.err)
	}
	if len(m.all) != 2 || len(m.table.Rows()) != 2 {
		t.Fatalf("expected 2 rows, got all=%d rows=%d", len(m.all), len(m.table.Rows()))
	}

	next, _ := m.Update(keyMsg("/"))
	cm := next.(*contactsModel)
	if !cm.isFiltering {
		t.Fatal("/ did not enter filter mode")
	}
	for _, r := range "ali" {
		next, _ = cm.Update(keyMsg(string(r)))
		cm = next.(*contactsModel)
	}
	if len(cm.table.Rows()) != 1 || cm.table.Rows()[0][0] != "alice" {
		t.Fatalf("filter 'ali' gave rows %v", cm.table.Rows())
	}
	if sel, ok := cm.selectedContact(); !ok || sel.Name != "alice" {
		t.Fatalf("selectedContact after filter: %v %v", sel, ok)
	}

	// Esc clears the filter and restores all rows.
	next, _ = cm.Update(keyMsg("esc"))
	cm = next.(*contactsModel)
	if cm.isFiltering || cm.filter != "" || len(cm.table.Rows()) != 2 {
		t.Fatalf("esc did not clear filter: filtering=%v filter=%q rows=%d",
			cm.isFiltering, cm.filter, len(cm.table.Rows()))
	}
}

func TestContactsAddForm(t *testing.T) {
	i18n.Init("en")
	setupTestDB(t)
	viper.Set("network", "testnet")
	t.Cleanup(func() { viper.Set("network", "") })

	m := newContactsModel()
	next, _ := m.Update(keyMsg("a"))
	cm := next.(*contactsModel)
	if cm.state != contactsFormState {
		t.Fatal("a did not open the add form")
	}

	cm.inputs[0].SetValue("carol")
	cm.inputs[1].SetValue(testAddrOne)
	cm.inputs[2].SetValue("exchange")

	// Tab past the three inputs onto the submit button, then enter.
	for i := 0; i < 3; i++ {
		next, _ = cm.Update(keyMsg("tab"))
		cm = next.(*contactsModel)
	}
	if cm.focusIndex != len(cm.inputs) {
		t.Fatalf("focusIndex = %d, want %d", cm.focusIndex, len(cm.inputs))
	}
	next, _ = cm.Update(keyMsg("enter"))
	cm = next.(*contactsModel)

	if cm.state != contactsListState {
		t.Fatalf("submit did not return to list: formErr=%v", cm.formErr)
	}
	if !strings.Contains(cm.status, "carol") {
		t.Fatalf("status missing contact name: %q", cm.status)
	}
	saved, err := db.GetContactByName("carol")
	if err != nil || saved == nil {
		t.Fatalf("contact not stored: %v %v", saved, err)
	}
	if saved.Address != testAddrOne || saved.Network != "testnet" {
		t.Fatalf("stored contact wrong: %+v", saved)
	}
}

func TestContactsAddDuplicateStaysInForm(t *testing.T) {
	i18n.Init("en")
	setupTestDB(t)
	viper.Set("network", "testnet")
	t.Cleanup(func() { viper.Set("network", "") })
	seedContacts(t)

	m := newContactsModel()
	next, _ := m.Update(keyMsg("a"))
	cm := next.(*contactsModel)
	cm.inputs[0].SetValue("alice")
	cm.inputs[1].SetValue(testAddrTwo)
	cm.focusIndex = len(cm.inputs)

	next, _ = cm.Update(keyMsg("enter"))
	cm = next.(*contactsModel)
	if cm.state != contactsFormState {
		t.Fatal("duplicate submit should keep the form open")
	}
	if !errors.Is(cm.formErr, db.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", cm.formErr)
	}
	if view := cm.View(); !strings.Contains(view, "Error") {
		t.Fatalf("form view missing error:\n%s", view)
	}
}

func TestContactsDeleteFlow(t *testing.T) {
	i18n.Init("en")
	setupTestDB(t)
	seedContacts(t)

	m := newContactsModel()

	next, _ := m.Update(keyMsg("d"))
	cm := next.(*contactsModel)
	if cm.state != contactsConfirmDeleteState || cm.toDelete.Name != "alice" {
		t.Fatalf("d did not open confirm for first row: state=%v toDelete=%+v", cm.state, cm.toDelete)
	}
	if view := cm.View(); !strings.Contains(view, "alice") {
		t.Fatalf("confirm dialog missing contact name:\n%s", view)
	}

	// Cancel keeps the contact.
	next, _ = cm.Update(keyMsg("esc"))
	cm = next.(*contactsModel)
	if cm.state != contactsListState || len(cm.all) != 2 {
		t.Fatal("esc should cancel without deleting")
	}

	// Confirm removes it.
	next, _ = cm.Update(keyMsg("d"))
	cm = next.(*contactsModel)
	next, _ = cm.Update(keyMsg("tab"))
	cm = next.(*contactsModel)
	next, _ = cm.Update(keyMsg("enter"))
	cm = next.(*contactsModel)

	if len(cm.all) != 1 || cm.all[0].Name != "bob" {
		t.Fatalf("delete left %+v", cm.all)
	}
	got, err := db.GetContactByName("alice")
	if err != nil {
		t.Fatalf("GetContactByName failed: %v", err)
	}
	if got != nil {
		t.Fatal("alice still in the database after delete")
	}
}

func TestContactsEmptyView(t *testing.T) {
	i18n.Init("en")
	setupTestDB(t)

	m := newContactsModel()
	view := m.View()
	if !strings.Contains(view, i18n.T("contacts.empty")) {
		t.Fatalf("empty view missing placeholder:\n%s", view)
	}
}
