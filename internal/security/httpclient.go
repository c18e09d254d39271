// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Log hooks for transport diagnostics, wired to the logging package at
// startup. No-op defaults keep the package usable in tests. Everything
// passed to these hooks is already sanitized.
var (
	logDebugf = func(format string, v ...any) {}
	logWarnf  = func(format string, v ...any) {}
	logErrorf = func(format string, v ...any) {}
)

// SetLogHooks routes transport diagnostics to the given functions. A nil
// function leaves the current hook in place.
func SetLogHooks(debugf, warnf, errorf func(format string, v ...any)) {
	if debugf != nil {
		logDebugf = debugf
	}
	if warnf != nil {
		logWarnf = warnf
	}
	if errorf != nil {
		logErrorf = errorf
	}
}

// Client is a hardened HTTP facade: it rejects non-TLS URLs by default,
// routes every logged request and failure through the sanitizer, and never
// introspects body content (a sanitized body cannot be reconstructed
// losslessly, so bodies stay out of logs entirely).
//
// The TLS mode is fixed at construction for the lifetime of the Client.
type Client struct {
	http       *http.Client
	enforceTLS bool
	userAgent  string
}

// NewHTTPClient returns a Client that refuses plain-HTTP URLs.
func NewHTTPClient() *Client { return NewHTTPClientWithConfig(true) }

// NewHTTPClientWithConfig returns a Client with the given TLS enforcement
// setting. Disabling enforcement is for local development nodes only.
func NewHTTPClientWithConfig(enforceTLS bool) *Client {
	return &Client{
		http:       &http.Client{Timeout: 30 * time.Second},
		enforceTLS: enforceTLS,
		userAgent:  "rskvault/1.0",
	}
}

// ValidateURL parses raw and, in enforced mode, rejects any scheme other
// than https before network I/O happens.
func (c *Client) ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid URL: %v", ErrTransport, err)
	}
	if c.enforceTLS && u.Scheme != "https" {
		return fmt.Errorf("%w: insecure connection attempted, only https is allowed", ErrTransport)
	}
	return nil
}

// PostJSON sends body JSON-encoded to rawURL. The response body is the
// caller's to read and close.
func (c *Client) PostJSON(ctx context.Context, rawURL string, body any) (*http.Response, error) {
	return c.PostJSONWithHeaders(ctx, rawURL, body, nil)
}

// PostJSONWithHeaders is PostJSON with additional request headers. Header
// values are scanned for credential-looking content before sending; use
// APIKey.AuthHeader for authorization values.
func (c *Client) PostJSONWithHeaders(ctx context.Context, rawURL string, body any, headers map[string]string) (*http.Response, error) {
	if err := c.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request body: %v", ErrTransport, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.Do(req)
}

// Get issues a GET request to rawURL.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	if err := c.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	return c.Do(req)
}

// Do executes a prepared request with sanitized logging of the request line,
// the response status, and any failure.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.enforceTLS && req.URL.Scheme != "https" {
		return nil, fmt.Errorf("%w: insecure connection attempted, only https is allowed", ErrTransport)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	c.scanHeaders(req)

	logDebugf("sending %s request to %s", req.Method, SanitizeURL(req.URL))

	resp, err := c.http.Do(req)
	if err != nil {
		msg := SanitizeErrorMessage(err.Error())
		logErrorf("http request failed: %s", msg)
		return nil, fmt.Errorf("%w: %s", ErrTransport, msg)
	}

	logDebugf("received response with status %s", resp.Status)
	return resp, nil
}

// scanHeaders warns about credential-looking header values. Values are
// never mutated and never logged; an authorization header only has its
// presence noted.
func (c *Client) scanHeaders(req *http.Request) {
	for name, values := range req.Header {
		if strings.EqualFold(name, "Authorization") {
			logDebugf("authorization header present in request")
			continue
		}
		for _, v := range values {
			if IsSensitive(v) || looksLikeAPIKeyHeader(v) {
				logWarnf("potentially sensitive data detected in request header %q, value withheld from logs", name)
				break
			}
		}
	}
}

var apiKeyHeaderShapes = []*regexp.Regexp{
	regexp.MustCompile(`^[a-zA-Z0-9_-]{32,}$`),
	regexp.MustCompile(`Bearer\s+[a-zA-Z0-9_-]+`),
	regexp.MustCompile(`[a-zA-Z0-9]{20,}`),
}

// looksLikeAPIKeyHeader matches the common shapes credentials take in
// header values. Short values never match.
func looksLikeAPIKeyHeader(value string) bool {
	if len(value) < 20 {
		return false
	}
	for _, re := range apiKeyHeaderShapes {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// SanitizeURL renders a URL for logging: a query that trips the sensitivity
// check is replaced wholesale, and a path segment following a versioned API
// marker is masked when it is long enough to be a key.
func SanitizeURL(u *url.URL) string {
	clean := *u
	if q := clean.RawQuery; q != "" && IsSensitive(q) {
		clean.RawQuery = "[REDACTED]"
	}
	if strings.Contains(clean.Path, "/v2/") {
		parts := strings.Split(clean.Path, "/")
		if len(parts) >= 3 && parts[1] == "v2" && len(parts[2]) > 8 {
			parts[2] = "[API_KEY_REDACTED]"
			p := strings.Join(parts, "/")
			// RawPath keeps the marker literal when the URL is re-encoded.
			clean.Path = p
			clean.RawPath = p
		}
	}
	return clean.String()
}

// SanitizeURLString parses raw and sanitizes it for logging; input that does
// not parse falls back to plain text sanitization.
func SanitizeURLString(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return Sanitize(raw)
	}
	return SanitizeURL(u)
}
