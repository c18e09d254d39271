// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package rskvault

import (
	"fmt"
	"strings"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rskvault/rskvault/internal/backup"
	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/i18n"
	"github.com/rskvault/rskvault/internal/model"
)

// backupCmd dumps the wallet file and all database data into a single
// compressed snapshot.
var backupCmd = &cobra.Command{
	Use:   "backup [output-file]",
	Short: "Create a compressed (zstd) JSON backup",
	Long: `Dumps the sealed wallet file plus contacts, API keys and the
activity log into a single Zstandard-compressed JSON file.

If an output file is specified, '.zst' will be appended to the name if
it's not already present. If no output file is specified, a default
filename 'rskvault-backup-YYYY-MM-DD.json.zst' is used.

The archive contains the sealed keys and the stored API keys; treat it
like the wallet file itself.

Examples:
  # Backup to a default file (e.g., rskvault-backup-2026-08-24.json.zst)
  rskvault backup

  # Backup to a specific file
  rskvault backup my-backup.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		var outputFile string
		if len(args) == 0 {
			outputFile = fmt.Sprintf("rskvault-backup-%s.json.zst", time.Now().Format("2006-01-02"))
		} else {
			outputFile = args[0]
			if !strings.HasSuffix(outputFile, ".zst") {
				outputFile += ".zst"
			}
		}
		fmt.Println(i18n.T("cmd.backup.starting"))
		wallets, err := openKeystore().Load()
		if err != nil {
			log.Fatalf("%s", i18n.T("cmd.backup.error_export", err))
		}
		snap, err := backup.Create(db.ActiveStore(), wallets)
		if err != nil {
			log.Fatalf("%s", i18n.T("cmd.backup.error_export", err))
		}
		if err := backup.WriteFile(outputFile, snap); err != nil {
			log.Fatalf("%s", i18n.T("cmd.backup.error_write", err))
		}

		_ = db.LogActivity(model.ActivityEntry{
			Action:  "BACKUP",
			Details: fmt.Sprintf("wrote backup %s", outputFile),
		})

		fmt.Println(i18n.T("cmd.backup.success", outputFile))
	},
}

// restoreCmd restores the wallet file and database from a snapshot.
var restoreCmd = &cobra.Command{
	Use:   "restore <backup-file.zst>",
	Short: "Restore wallets, contacts, keys and activity from a backup",
	Long: `Restores a snapshot written by 'rskvault backup'. By default this is a
non-destructive merge: contacts, API keys and activity entries are
integrated by natural key, and only wallets whose address is not
already present are added.

To perform a full, destructive restore that WIPES all existing data
before importing, use the --full flag.

Example (Merge):
  rskvault restore ./rskvault-backup-2026-08-24.json.zst

Example (Full Restore):
  rskvault restore --full ./rskvault-backup-2026-08-24.json.zst`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		if fullRestore {
			fmt.Println("A full restore wipes all wallets, contacts, API keys and activity first.")
			answer := promptForConfirmation("Continue? (yes/no): ")
			if answer != "yes" && answer != "y" {
				fmt.Println("Restore cancelled.")
				return
			}
		}

		fmt.Println(i18n.T("cmd.restore.starting", inputFile))
		snap, err := backup.ReadFile(inputFile)
		if err != nil {
			log.Fatalf("%s", i18n.T("cmd.restore.error_read", err))
		}
		if err := backup.Restore(snap, backup.RestoreOptions{Full: fullRestore}, db.ActiveStore(), openKeystore()); err != nil {
			log.Fatalf("%s", i18n.T("cmd.restore.error_import", err))
		}

		_ = db.LogActivity(model.ActivityEntry{
			Action:  "RESTORE",
			Details: fmt.Sprintf("restored from %s (full=%t)", inputFile, fullRestore),
		})

		fmt.Println(i18n.T("cmd.restore.success"))
	},
}
