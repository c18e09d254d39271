// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Package i18n provides internationalization support for the wallet CLI.
// It uses the go-i18n library to load translation files embedded in the
// binary, so the interface can be displayed in multiple languages.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

// bundle stores all the loaded translation messages from the locale files.
var bundle *i18n.Bundle

// localizer is used to translate messages into a specific language.
var localizer *i18n.Localizer

// current holds the active language code.
var current string

// displayNames maps locale codes to the names shown in the language picker.
// Codes without an entry fall back to the code itself.
var displayNames = map[string]string{
	"en": "English",
	"de": "Deutsch",
}

// Init initializes the i18n bundle and sets up the localizer for a specific
// language. It parses all embedded YAML files from the 'locales' directory.
func Init(lang string) {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, _ := localeFS.ReadFile("locales/" + f.Name())
		bundle.ParseMessageFileBytes(data, f.Name())
	}

	localizer = i18n.NewLocalizer(bundle, lang)
	current = lang
}

// T translates a message by its ID. A single map argument is passed to the
// template engine; any other arguments are applied fmt-style to the
// translated string. An unknown ID comes back unchanged, so untranslated
// output stays greppable.
func T(messageID string, args ...any) string {
	if localizer == nil {
		Init("en")
	}

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	var fmtArgs []any
	if len(args) == 1 {
		if m, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = m
		} else {
			fmtArgs = args
		}
	} else if len(args) > 1 {
		fmtArgs = args
	}

	msg, err := localizer.Localize(cfg)
	if err != nil {
		return messageID
	}
	if len(fmtArgs) > 0 {
		return fmt.Sprintf(msg, fmtArgs...)
	}
	return msg
}

// SetLang changes the active language of the localizer.
func SetLang(lang string) {
	Init(lang)
}

// GetLang returns the active language code.
func GetLang() string {
	if current == "" {
		return "en"
	}
	return current
}

// GetAvailableLocales returns the embedded locale codes mapped to their
// display names.
func GetAvailableLocales() map[string]string {
	out := make(map[string]string)
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		code := strings.TrimSuffix(f.Name(), ".yaml")
		name, ok := displayNames[code]
		if !ok {
			name = code
		}
		out[code] = name
	}
	return out
}
