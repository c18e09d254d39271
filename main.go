// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for rskvault.
//
// Usage:
//
//	go run . [flags]
//	./rskvault [flags]
//
// This launches the rskvault CLI. Running without a subcommand starts
// the interactive TUI. See --help for options.
package main

import (
	"os"

	"github.com/rskvault/rskvault/cmd/rskvault"
)

// main is the entrypoint for the rskvault CLI.
func main() {
	if err := rskvault.Execute(); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}
