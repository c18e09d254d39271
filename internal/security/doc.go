// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package security keeps secret material contained across its three exposure
// surfaces: in memory (zeroable secret containers), at print/debug sinks
// (redaction formatters and the sensitive-data sanitizer), and on the wire
// (a TLS-enforcing HTTP client with sanitized logging). Everything else in
// the wallet consumes secrets only through this package.
package security
