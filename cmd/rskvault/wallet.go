// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package rskvault

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/model"
	"github.com/rskvault/rskvault/internal/security"
	"github.com/rskvault/rskvault/internal/wallet"
)

// walletCmd is the root command for wallet management operations.
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage wallets (create, import, list, switch, rename, export, delete)",
	Long: `The 'wallet' command group manages the sealed wallet file:
  - Create a new wallet from a fresh key or a generated recovery phrase
  - Import an existing private key or BIP-39 recovery phrase
  - List wallets and switch the active one
  - Rename, export and delete wallets

Private keys only ever exist in memory; the wallet file stores them
sealed under the wallet password.`,
}

// walletCreateCmd creates a new wallet with a freshly generated key.
var walletCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new wallet",
	Long: `Generates a new secp256k1 key, seals it under a password you choose,
and stores it in the wallet file. The new wallet becomes the active one.

With --mnemonic the key is derived from a newly generated BIP-39
recovery phrase, which is printed once so you can write it down.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("wallet name must not be empty")
		}
		withMnemonic, _ := cmd.Flags().GetBool("mnemonic")

		var key *wallet.Key
		var mnemonic string
		var err error
		if withMnemonic {
			mnemonic, err = wallet.NewMnemonic()
			if err != nil {
				return fmt.Errorf("failed to generate recovery phrase: %w", err)
			}
			key, err = wallet.FromMnemonic(mnemonic)
		} else {
			key, err = wallet.Generate()
		}
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		defer key.Zero()

		password, err := readNewPassword()
		if err != nil {
			return err
		}
		defer password.Clear()

		network := viper.GetString("network")
		rec, err := wallet.Seal(key, name, network, password)
		if err != nil {
			return fmt.Errorf("failed to seal wallet: %w", err)
		}

		if err := storeNewWallet(rec); err != nil {
			return err
		}

		_ = db.LogActivity(model.ActivityEntry{
			WalletAddress: rec.Address,
			Action:        "CREATE_WALLET",
			Details:       fmt.Sprintf("created wallet %q", name),
			Network:       network,
		})

		fmt.Printf("Created wallet %q\n", name)
		fmt.Printf("Address: %s\n", wallet.ChecksumAddress(rec.Address))
		fmt.Println("The new wallet is now active.")
		if withMnemonic {
			fmt.Println()
			fmt.Println("Recovery phrase (shown once, write it down and keep it offline):")
			fmt.Println("  " + mnemonic)
		}
		return nil
	},
}

// walletImportCmd imports an existing key into the wallet file.
var walletImportCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Import a private key or recovery phrase",
	Long: `Imports an existing key and seals it under a password you choose.
The key comes from --private-key (64 hex characters), from --mnemonic
(a BIP-39 recovery phrase), or from a hidden prompt when neither flag
is given. The imported wallet becomes the active one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("wallet name must not be empty")
		}
		privHex, _ := cmd.Flags().GetString("private-key")
		mnemonic, _ := cmd.Flags().GetString("mnemonic")
		if privHex != "" && mnemonic != "" {
			return fmt.Errorf("--private-key and --mnemonic are mutually exclusive")
		}
		if privHex != "" || mnemonic != "" {
			fmt.Fprintln(os.Stderr, "warning: key material passed as a flag is visible in shell history and the process list")
		}

		var key *wallet.Key
		var err error
		switch {
		case mnemonic != "":
			key, err = wallet.FromMnemonic(mnemonic)
		case privHex != "":
			key, err = wallet.FromPrivateKeyHex(privHex)
		default:
			var entered security.Password
			entered, err = readPassword("Private key (hex): ")
			if err != nil {
				return err
			}
			raw, expErr := entered.Expose()
			if expErr != nil {
				return expErr
			}
			key, err = wallet.FromPrivateKeyHex(raw)
			entered.Clear()
		}
		if err != nil {
			return fmt.Errorf("failed to import key: %w", err)
		}
		defer key.Zero()

		password, err := readNewPassword()
		if err != nil {
			return err
		}
		defer password.Clear()

		network := viper.GetString("network")
		rec, err := wallet.Seal(key, name, network, password)
		if err != nil {
			return fmt.Errorf("failed to seal wallet: %w", err)
		}

		if err := storeNewWallet(rec); err != nil {
			return err
		}

		_ = db.LogActivity(model.ActivityEntry{
			WalletAddress: rec.Address,
			Action:        "IMPORT_WALLET",
			Details:       fmt.Sprintf("imported wallet %q", name),
			Network:       network,
		})

		fmt.Printf("Imported wallet %q\n", name)
		fmt.Printf("Address: %s\n", wallet.ChecksumAddress(rec.Address))
		fmt.Println("The imported wallet is now active.")
		return nil
	},
}

// walletListCmd lists all wallets in the wallet file.
var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := openKeystore().Load()
		if err != nil {
			return fmt.Errorf("failed to load wallet file: %w", err)
		}
		records := data.List()
		if len(records) == 0 {
			fmt.Println("No wallets yet. Create one with 'rskvault wallet create <name>'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tADDRESS\tNETWORK\tCREATED\tACTIVE")
		for _, rec := range records {
			active := ""
			if wallet.NormalizeAddress(rec.Address) == data.CurrentWallet {
				active = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				rec.Name, wallet.ChecksumAddress(rec.Address), rec.Network, rec.CreatedAt, active)
		}
		w.Flush()
		return nil
	},
}

// walletSwitchCmd changes the active wallet.
var walletSwitchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Make the named wallet the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		var address string
		err := openKeystore().Update(func(d *wallet.WalletData) error {
			rec, ok := d.ByName(name)
			if !ok {
				return fmt.Errorf("wallet not found: %s", name)
			}
			address = rec.Address
			return d.Switch(rec.Address)
		})
		if err != nil {
			return err
		}

		_ = db.LogActivity(model.ActivityEntry{
			WalletAddress: address,
			Action:        "SWITCH_WALLET",
			Details:       fmt.Sprintf("switched to wallet %q", name),
			Network:       viper.GetString("network"),
		})

		fmt.Printf("Active wallet is now %q\n", name)
		return nil
	},
}

// walletRenameCmd renames a wallet.
var walletRenameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a wallet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldName, newName := args[0], strings.TrimSpace(args[1])
		if newName == "" {
			return fmt.Errorf("wallet name must not be empty")
		}
		var address string
		err := openKeystore().Update(func(d *wallet.WalletData) error {
			if _, exists := d.ByName(newName); exists {
				return fmt.Errorf("a wallet named %q already exists", newName)
			}
			rec, ok := d.ByName(oldName)
			if !ok {
				return fmt.Errorf("wallet not found: %s", oldName)
			}
			address = rec.Address
			return d.Rename(rec.Address, newName)
		})
		if err != nil {
			return err
		}

		_ = db.LogActivity(model.ActivityEntry{
			WalletAddress: address,
			Action:        "RENAME_WALLET",
			Details:       fmt.Sprintf("renamed wallet %q to %q", oldName, newName),
			Network:       viper.GetString("network"),
		})

		fmt.Printf("Renamed wallet %q to %q\n", oldName, newName)
		return nil
	},
}

// walletDeleteCmd removes a wallet from the wallet file.
var walletDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a wallet",
	Long: `Deletes a wallet from the wallet file. The sealed key is removed and
cannot be recovered unless you hold a backup or the recovery phrase.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		force, _ := cmd.Flags().GetBool("force")

		rec, err := lookupWallet(name)
		if err != nil {
			return err
		}

		if !force {
			fmt.Println("The sealed key is lost unless you have a backup.")
			answer := promptForConfirmation(fmt.Sprintf("Delete wallet %q (%s)? (yes/no): ", name, security.RedactAddress(rec.Address)))
			if answer != "yes" && answer != "y" {
				fmt.Println("Deletion cancelled.")
				return nil
			}
		}

		err = openKeystore().Update(func(d *wallet.WalletData) error {
			return d.Remove(rec.Address)
		})
		if err != nil {
			return err
		}

		_ = db.LogActivity(model.ActivityEntry{
			WalletAddress: rec.Address,
			Action:        "DELETE_WALLET",
			Details:       fmt.Sprintf("deleted wallet %q", name),
			Network:       viper.GetString("network"),
		})

		fmt.Printf("Deleted wallet %q\n", name)
		return nil
	},
}

// walletExportCmd prints the private key of a wallet.
var walletExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Print the private key of a wallet",
	Long: `Unseals the named wallet and prints the raw private key as hex.
Anyone holding that key controls the wallet's funds; only run this on a
screen nobody else can see.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		rec, err := lookupWallet(name)
		if err != nil {
			return err
		}

		answer := promptForConfirmation(fmt.Sprintf("Really print the private key of %q? (yes/no): ", name))
		if answer != "yes" && answer != "y" {
			fmt.Println("Export cancelled.")
			return nil
		}

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		defer password.Clear()

		key, err := rec.Unseal(password)
		if err != nil {
			return fmt.Errorf("failed to unseal wallet: %w", err)
		}
		defer key.Zero()

		raw := key.PrivateKeyBytes()
		fmt.Printf("%x\n", raw)
		for i := range raw {
			raw[i] = 0
		}

		_ = db.LogActivity(model.ActivityEntry{
			WalletAddress: rec.Address,
			Action:        "EXPORT_WALLET",
			Details:       fmt.Sprintf("exported private key of wallet %q", name),
			Network:       viper.GetString("network"),
		})
		return nil
	},
}

// walletReceiveCmd prints the receive address of a wallet with a QR code.
var walletReceiveCmd = &cobra.Command{
	Use:   "receive [name]",
	Short: "Show the receive address of a wallet as text and QR code",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) > 0 {
			name = args[0]
		}
		rec, err := lookupWallet(name)
		if err != nil {
			return err
		}
		addr := wallet.ChecksumAddress(rec.Address)
		fmt.Printf("%s (%s)\n", rec.Name, rec.Network)
		fmt.Println(addr)
		fmt.Println()
		qrterminal.GenerateHalfBlock(addr, qrterminal.L, os.Stdout)
		return nil
	},
}

// lookupWallet returns the named wallet, or the active one when name is
// empty.
func lookupWallet(name string) (wallet.Record, error) {
	data, err := openKeystore().Load()
	if err != nil {
		return wallet.Record{}, fmt.Errorf("failed to load wallet file: %w", err)
	}
	if name == "" {
		rec, ok := data.Current()
		if !ok {
			return wallet.Record{}, fmt.Errorf("no active wallet (run 'rskvault wallet create <name>')")
		}
		return rec, nil
	}
	rec, ok := data.ByName(name)
	if !ok {
		return wallet.Record{}, fmt.Errorf("wallet not found: %s", name)
	}
	return rec, nil
}

// storeNewWallet adds a freshly sealed record to the wallet file, refusing
// name collisions so every wallet stays addressable by name.
func storeNewWallet(rec wallet.Record) error {
	return openKeystore().Update(func(d *wallet.WalletData) error {
		if _, exists := d.ByName(rec.Name); exists {
			return fmt.Errorf("a wallet named %q already exists", rec.Name)
		}
		return d.Add(rec)
	})
}

// registerWalletCommands registers all wallet-related subcommands.
// NewRootCmd runs more than once in tests, so registration is guarded the
// same way flag definitions are.
func registerWalletCommands() {
	if len(walletCmd.Commands()) == 0 {
		walletCmd.AddCommand(walletCreateCmd)
		walletCmd.AddCommand(walletImportCmd)
		walletCmd.AddCommand(walletListCmd)
		walletCmd.AddCommand(walletSwitchCmd)
		walletCmd.AddCommand(walletRenameCmd)
		walletCmd.AddCommand(walletDeleteCmd)
		walletCmd.AddCommand(walletExportCmd)
		walletCmd.AddCommand(walletReceiveCmd)
	}

	// Setup flags (only if not already defined)
	if walletCreateCmd.Flags().Lookup("mnemonic") == nil {
		walletCreateCmd.Flags().Bool("mnemonic", false, "Derive the key from a new BIP-39 recovery phrase and print it once")
	}
	if walletImportCmd.Flags().Lookup("private-key") == nil {
		walletImportCmd.Flags().String("private-key", "", "Private key as 64 hex characters")
		walletImportCmd.Flags().String("mnemonic", "", "BIP-39 recovery phrase")
	}
	if walletDeleteCmd.Flags().Lookup("force") == nil {
		walletDeleteCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
	}
}
