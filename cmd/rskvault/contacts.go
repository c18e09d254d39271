// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package rskvault

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rskvault/rskvault/internal/contacts"
	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/model"
)

// contactCmd is the root command for address book operations.
var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage the address book (add, list, remove, rename)",
	Long: `The 'contact' command group manages named addresses. Contact names can
be used anywhere a recipient address is expected, e.g. in 'rskvault
transfer alice 0.5'.`,
}

// contactAddCmd stores a new contact.
var contactAddCmd = &cobra.Command{
	Use:   "add <name> <address>",
	Short: "Add a contact",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, _ := cmd.Flags().GetString("notes")
		network := viper.GetString("network")

		c, err := contacts.New(db.ActiveStore()).Add(args[0], args[1], network, notes)
		if err != nil {
			return fmt.Errorf("failed to add contact: %w", err)
		}

		_ = db.LogActivity(model.ActivityEntry{
			Action:  "ADD_CONTACT",
			Details: fmt.Sprintf("added contact %q", c.Name),
			Network: c.Network,
		})

		fmt.Printf("Added contact %q (%s)\n", c.Name, c.Address)
		return nil
	},
}

// contactListCmd lists all contacts.
var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := contacts.New(db.ActiveStore()).List()
		if err != nil {
			return fmt.Errorf("failed to list contacts: %w", err)
		}
		if len(all) == 0 {
			fmt.Println("No contacts yet. Add one with 'rskvault contact add <name> <address>'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tADDRESS\tNETWORK\tNOTES")
		for _, c := range all {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Address, c.Network, c.Notes)
		}
		w.Flush()
		return nil
	},
}

// contactRemoveCmd deletes a contact.
var contactRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := contacts.New(db.ActiveStore()).Remove(name); err != nil {
			return fmt.Errorf("failed to remove contact: %w", err)
		}

		_ = db.LogActivity(model.ActivityEntry{
			Action:  "REMOVE_CONTACT",
			Details: fmt.Sprintf("removed contact %q", name),
			Network: viper.GetString("network"),
		})

		fmt.Printf("Removed contact %q\n", name)
		return nil
	},
}

// contactRenameCmd renames a contact.
var contactRenameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a contact",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldName, newName := args[0], args[1]
		if err := contacts.New(db.ActiveStore()).Rename(oldName, newName); err != nil {
			return fmt.Errorf("failed to rename contact: %w", err)
		}

		_ = db.LogActivity(model.ActivityEntry{
			Action:  "RENAME_CONTACT",
			Details: fmt.Sprintf("renamed contact %q to %q", oldName, newName),
			Network: viper.GetString("network"),
		})

		fmt.Printf("Renamed contact %q to %q\n", oldName, newName)
		return nil
	},
}

// registerContactCommands registers all contact-related subcommands.
func registerContactCommands() {
	if len(contactCmd.Commands()) == 0 {
		contactCmd.AddCommand(contactAddCmd)
		contactCmd.AddCommand(contactListCmd)
		contactCmd.AddCommand(contactRemoveCmd)
		contactCmd.AddCommand(contactRenameCmd)
	}

	if contactAddCmd.Flags().Lookup("notes") == nil {
		contactAddCmd.Flags().String("notes", "", "Free-form note stored with the contact")
	}
}
