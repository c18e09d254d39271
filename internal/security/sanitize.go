// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"regexp"
	"strings"
	"sync"
)

// patternSet holds the compiled detectors for the five sensitive data
// classes. Built exactly once, read-only afterwards, safe for concurrent
// reads without synchronization.
type patternSet struct {
	privateKey *regexp.Regexp // bare 64-hex runs
	address    *regexp.Regexp // 0x + 40 hex
	txHash     *regexp.Regexp // 0x + 64 hex
	mnemonic   *regexp.Regexp // 12-24 lowercase words
	apiKey     *regexp.Regexp // long alphanumeric runs, filtered by heuristic
}

var (
	patternsOnce sync.Once
	patternsInst *patternSet
)

func patterns() *patternSet {
	patternsOnce.Do(func() {
		patternsInst = &patternSet{
			privateKey: regexp.MustCompile(`\b[0-9a-fA-F]{64}\b`),
			address:    regexp.MustCompile(`\b0x[0-9a-fA-F]{40}\b`),
			txHash:     regexp.MustCompile(`\b0x[0-9a-fA-F]{64}\b`),
			mnemonic:   regexp.MustCompile(`\b(?:[a-z]+\s+){11,23}[a-z]+\b`),
			apiKey:     regexp.MustCompile(`\b[A-Za-z0-9]{32,}\b`),
		}
	})
	return patternsInst
}

// Sanitize redacts sensitive material from free-form text (log lines, error
// messages, URLs) before it reaches anything observable. The matchers run in
// a fixed order: specific classes replace first so the broader patterns
// never see their text. Sanitize is idempotent.
func Sanitize(message string) string {
	p := patterns()

	out := p.privateKey.ReplaceAllString(message, "[PRIVATE_KEY_REDACTED]")

	// Addresses and transaction hashes keep a partial reveal for debugging.
	out = p.address.ReplaceAllStringFunc(out, func(m string) string {
		return m[:6] + "..." + m[len(m)-4:]
	})
	out = p.txHash.ReplaceAllStringFunc(out, func(m string) string {
		return m[:10] + "..." + m[len(m)-6:]
	})

	out = p.mnemonic.ReplaceAllString(out, "[MNEMONIC_REDACTED]")

	out = p.apiKey.ReplaceAllStringFunc(out, func(m string) string {
		if isLikelyAPIKey(m) {
			return "[API_KEY_REDACTED]"
		}
		return m
	})

	return out
}

// isLikelyAPIKey is the conservative credential heuristic: length 20-100,
// purely ASCII alphanumeric, with at least one upper, one lower, and one
// digit. All-lowercase and all-uppercase runs do not qualify.
func isLikelyAPIKey(text string) bool {
	if len(text) < 20 || len(text) > 100 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= '0' && c <= '9':
			hasDigit = true
		default:
			return false
		}
	}
	return hasUpper && hasLower && hasDigit
}

// IsSensitive reports whether text contains material that should not leave
// the process raw. It is an existence check used to warn before
// transmission, not a redactor.
func IsSensitive(text string) bool {
	p := patterns()
	return p.privateKey.MatchString(text) ||
		p.address.MatchString(text) ||
		p.txHash.MatchString(text) ||
		p.mnemonic.MatchString(text) ||
		isLikelyAPIKey(text)
}

// RedactPrivateKey renders a value known to be a private key: the first
// four characters stay visible, the rest is marked. Inputs too short for a
// preview redact fully.
func RedactPrivateKey(key string) string {
	if len(key) >= 8 {
		return key[:4] + "...[REDACTED]"
	}
	return "[PRIVATE_KEY_REDACTED]"
}

// RedactAddress renders a value known to be an address, keeping the first
// six and last four characters. Inputs shorter than ten characters redact
// fully.
func RedactAddress(address string) string {
	if len(address) >= 10 {
		return address[:6] + "..." + address[len(address)-4:]
	}
	return "[ADDRESS_REDACTED]"
}

// SanitizeErrorMessage scrubs a failure message for display: full pattern
// sanitization plus replacement of the common key-parameter substrings that
// transport errors tend to echo back.
func SanitizeErrorMessage(message string) string {
	out := Sanitize(message)
	out = strings.ReplaceAll(out, "api_key", "[REDACTED]")
	out = strings.ReplaceAll(out, "apikey", "[REDACTED]")
	return out
}
