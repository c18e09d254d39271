// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package rskvault implements the command-line interface using Cobra. It
// wires configuration, logging and the database, and provides commands that
// delegate to the wallet, provider, contacts and backup packages. CLI code
// stays thin; key handling and chain logic live in internal packages.
package rskvault
