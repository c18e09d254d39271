// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package rskvault

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rskvault/rskvault/internal/config"
	"github.com/rskvault/rskvault/internal/db"
)

// doctorCmd runs the health checks and reports one line per check.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check config, wallet file, database, RPC and API key health",
	Long: `Runs every health check and prints one line per check: config file,
wallet file permissions, database connectivity, TLS enforcement, RPC
reachability and Alchemy key presence. Exits non-zero when any check
fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := effectiveConfig()
		deps := config.DoctorDeps{
			ConfigFile: config.PickConfigFile(nil),
			Store:      db.ActiveStore(),
			Keys:       db.ActiveStore(),
		}
		// A dial failure leaves Chain nil; the RPC check reports it.
		if p, err := dialProvider(); err == nil {
			deps.Chain = p
		}

		results := config.RunDoctor(cmd.Context(), cfg, deps)

		failed := 0
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STATUS\tCHECK\tDETAIL")
		for _, r := range results {
			if r.Status == config.StatusFail {
				failed++
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Status, r.Name, r.Detail)
		}
		w.Flush()

		if failed > 0 {
			fmt.Printf("\n%d check(s) failed\n", failed)
			os.Exit(1)
		}
	},
}
