// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/i18n"
	"github.com/rskvault/rskvault/internal/model"
)

func seedActivity(t *testing.T) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []model.ActivityEntry{
		{WalletAddress: testAddrOne, Action: "CREATE_WALLET", Details: "alice", Network: "testnet", Timestamp: base},
		{WalletAddress: testAddrOne, Action: "SEND_TX", Details: "0.5 RBTC to 0xfB69...d359",
			TxHash: "0x9fc76417374aa880d4449a1f7f31ec597f00b1f6f3dd2d66f4c9c6c445836d8b",
			Network: "testnet", Timestamp: base.Add(time.Hour)},
	}
	for _, e := range entries {
		if err := db.LogActivity(e); err != nil {
			t.Fatalf("LogActivity(%s) failed: %v", e.Action, err)
		}
	}
}

func TestHistoryTableLoads(t *testing.T) {
	i18n.Init("en")
	setupTestDB(t)
	seedActivity(t)

	m := newHistoryModel()
	if m.err != nil {
		t.Fatalf("unexpected load error: %v", m.err)
	}
	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Most recent entry first.
	if !strings.Contains(rows[0][1], "SEND_TX") {
		t.Fatalf("first row action = %q, want SEND_TX", rows[0][1])
	}
	if want := m.allEntries[0].Timestamp.Format("2006-01-02 15:04"); rows[0][0] != want {
		t.Fatalf("timestamp cell %q, want %q", rows[0][0], want)
	}
	if !strings.HasSuffix(rows[0][3], "…") {
		t.Fatalf("tx hash not shortened: %q", rows[0][3])
	}

	view := m.View()
	if !strings.Contains(view, "SEND_TX") || !strings.Contains(view, "CREATE_WALLET") {
		t.Fatalf("view missing actions:\n%s", view)
	}
}

func TestHistoryFilter(t *testing.T) {
	i18n.Init("en")
	setupTestDB(t)
	seedActivity(t)

	m := newHistoryModel()
	next, _ := m.Update(keyMsg("/"))
	hm := next.(*historyModel)
	if !hm.isFiltering {
		t.Fatal("/ did not enter filter mode")
	}
	for _, r := range "send" {
		next, _ = hm.Update(keyMsg(string(r)))
		hm = next.(*historyModel)
	}
	if len(hm.table.Rows()) != 1 {
		t.Fatalf("filter 'send' gave %d rows", len(hm.table.Rows()))
	}
	sel, ok := hm.selectedEntry()
	if !ok || sel.Action != "SEND_TX" {
		t.Fatalf("selectedEntry after filter: %+v %v", sel, ok)
	}

	// Enter locks the filter in, esc then clears it.
	next, _ = hm.Update(keyMsg("enter"))
	hm = next.(*historyModel)
	if hm.isFiltering || hm.filter != "send" {
		t.Fatalf("enter should keep filter: filtering=%v filter=%q", hm.isFiltering, hm.filter)
	}
	next, _ = hm.Update(keyMsg("esc"))
	hm = next.(*historyModel)
	if hm.filter != "" || len(hm.table.Rows()) != 2 {
		t.Fatalf("esc did not clear filter: %q rows=%d", hm.filter, len(hm.table.Rows()))
	}
}

func TestHistoryEmptyView(t *testing.T) {
	i18n.Init("en")
	setupTestDB(t)

	m := newHistoryModel()
	if view := m.View(); !strings.Contains(view, i18n.T("history.empty")) {
		t.Fatalf("empty view missing placeholder:\n%s", view)
	}
}

func TestShortHash(t *testing.T) {
	if got := shortHash(""); got != "" {
		t.Fatalf("shortHash(empty) = %q", got)
	}
	if got := shortHash("0xabcdef"); got != "0xabcdef" {
		t.Fatalf("short hashes should pass through, got %q", got)
	}
	long := "0x9fc76417374aa880d4449a1f7f31ec597f00b1f6f3dd2d66f4c9c6c445836d8b"
	if got := shortHash(long); got != "0x9fc7641737…" {
		t.Fatalf("shortHash(long) = %q", got)
	}
}
