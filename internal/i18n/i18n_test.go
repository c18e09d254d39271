// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import (
	"testing"
)

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}

	av := GetAvailableLocales()
	for _, k := range []string{"en", "de"} {
		if _, ok := av[k]; !ok {
			t.Fatalf("expected available locale %q to be present", k)
		}
	}
	if av["de"] != "Deutsch" {
		t.Fatalf("unexpected display name for de: %q", av["de"])
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")

	if got := T("common.all"); got != "All" {
		t.Fatalf("expected 'All', got %q", got)
	}

	// fmt-style formatting via non-map template args
	got := T("history.page_info", 2, 5)
	if got != "Page 2 of 5" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	// switch language to German
	SetLang("de")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("common.all"); got != "Alle" {
		t.Fatalf("expected German 'Alle', got %q", got)
	}
}

func TestT_UnknownIDFallsBack(t *testing.T) {
	Init("en")
	if got := T("no.such.message"); got != "no.such.message" {
		t.Fatalf("expected ID fallback, got %q", got)
	}
}

func TestT_TemplateData(t *testing.T) {
	Init("en")
	got := T("wallet.switched", map[string]any{"Name": "savings"})
	if got != "Switched to wallet 'savings'" {
		t.Fatalf("unexpected template translation: %q", got)
	}
}
