// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package rskvault

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/model"
	"github.com/rskvault/rskvault/internal/security"
)

// apikeyCmd is the root command for provider API key management.
var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage provider API keys (set, list, delete)",
	Long: `The 'apikey' command group stores API keys per provider and network.
Known providers are 'alchemy' (transfer history) and 'rsk-rpc'; any
other name is stored as a custom provider. Listings only ever show
masked keys.`,
}

// apikeySetCmd stores an API key for a provider on the active network.
var apikeySetCmd = &cobra.Command{
	Use:   "set <provider>",
	Short: "Store an API key for a provider",
	Long: `Stores an API key for the given provider on the active network,
replacing any previous key for that pair. The key is read from a
hidden prompt unless --key is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prov := strings.ToLower(strings.TrimSpace(args[0]))
		if prov == "" {
			return fmt.Errorf("provider name must not be empty")
		}
		network := viper.GetString("network")

		keyFlag, _ := cmd.Flags().GetString("key")
		var key security.Secret
		if keyFlag != "" {
			fmt.Fprintln(os.Stderr, "warning: --key is visible in shell history and the process list")
			key = security.FromString(keyFlag)
		} else {
			entered, err := readPassword("API key: ")
			if err != nil {
				return err
			}
			key = entered.Secret
		}
		if key.IsEmpty() {
			return fmt.Errorf("API key must not be empty")
		}

		masked := security.APIKeyFromSecret(key).Masked()
		if err := db.PutAPIKey(prov, network, key); err != nil {
			return fmt.Errorf("failed to store key: %w", err)
		}
		key.Clear()

		_ = db.LogActivity(model.ActivityEntry{
			Action:  "SET_API_KEY",
			Details: fmt.Sprintf("stored %s key for %s", prov, network),
			Network: network,
		})

		fmt.Printf("Stored %s key for %s (%s)\n", prov, network, masked)
		return nil
	},
}

// apikeyListCmd lists stored keys in masked form.
var apikeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored API keys (masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := db.GetAllAPIKeys()
		if err != nil {
			return fmt.Errorf("failed to list keys: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No API keys stored. Add one with 'rskvault apikey set <provider>'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PROVIDER\tNETWORK\tKEY\tCREATED")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				r.Provider, r.Network, security.APIKeyFromSecret(r.Key).Masked(), r.CreatedAt.Format("2006-01-02"))
		}
		w.Flush()
		return nil
	},
}

// apikeyDeleteCmd removes a stored key.
var apikeyDeleteCmd = &cobra.Command{
	Use:   "delete <provider>",
	Short: "Delete the stored API key of a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prov := strings.ToLower(strings.TrimSpace(args[0]))
		network := viper.GetString("network")

		rec, err := db.GetAPIKey(prov, network)
		if err != nil {
			return fmt.Errorf("failed to look up key: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("no %s key stored for %s", prov, network)
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			answer := promptForConfirmation(fmt.Sprintf("Delete the %s key for %s? (yes/no): ", prov, network))
			if answer != "yes" && answer != "y" {
				fmt.Println("Deletion cancelled.")
				return nil
			}
		}

		if err := db.DeleteAPIKey(prov, network); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}

		_ = db.LogActivity(model.ActivityEntry{
			Action:  "DELETE_API_KEY",
			Details: fmt.Sprintf("deleted %s key for %s", prov, network),
			Network: network,
		})

		fmt.Printf("Deleted %s key for %s\n", prov, network)
		return nil
	},
}

// registerAPIKeyCommands registers all apikey-related subcommands.
func registerAPIKeyCommands() {
	if len(apikeyCmd.Commands()) == 0 {
		apikeyCmd.AddCommand(apikeySetCmd)
		apikeyCmd.AddCommand(apikeyListCmd)
		apikeyCmd.AddCommand(apikeyDeleteCmd)
	}

	if apikeySetCmd.Flags().Lookup("key") == nil {
		apikeySetCmd.Flags().String("key", "", "API key value (prompted when omitted)")
	}
	if apikeyDeleteCmd.Flags().Lookup("force") == nil {
		apikeyDeleteCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
	}
}
