// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package rskvault

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rskvault/rskvault/internal/db"
)

// activityCmd lists the local activity log, newest first. Entries never
// contain key material; details carry redacted addresses only.
var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the local activity log",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := db.GetRecentActivity(limit)
		if err != nil {
			return fmt.Errorf("failed to load activity: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No activity recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tACTION\tNETWORK\tDETAILS\tTX")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.Timestamp.Format("2006-01-02 15:04"), e.Action, e.Network, e.Details, e.TxHash)
		}
		w.Flush()
		return nil
	},
}
