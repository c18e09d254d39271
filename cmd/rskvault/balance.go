// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package rskvault

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rskvault/rskvault/internal/provider"
	"github.com/rskvault/rskvault/internal/wallet"
)

// balanceCmd shows the RBTC balance of the active or a named wallet.
var balanceCmd = &cobra.Command{
	Use:   "balance [name]",
	Short: "Show the RBTC balance of a wallet",
	Long: `Queries the configured RPC endpoint for the balance of the active
wallet, a named wallet, or every wallet with --all.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		p, err := dialProvider()
		if err != nil {
			return fmt.Errorf("failed to reach RPC endpoint: %w", err)
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
		defer cancel()

		if all {
			if len(args) > 0 {
				return fmt.Errorf("--all does not take a wallet name")
			}
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
			fmt.Fprintln(w, "NAME\tADDRESS\tBALANCE")
			for _, rec := range records {
				wei, err := p.Balance(ctx, rec.Address)
				if err != nil {
					return fmt.Errorf("failed to fetch balance of %q: %w", rec.Name, err)
				}
				fmt.Fprintf(w, "%s\t%s\t%s RBTC\n",
					rec.Name, wallet.ChecksumAddress(rec.Address), provider.FormatRBTC(wei))
			}
			w.Flush()
			return nil
		}

		var name string
		if len(args) > 0 {
			name = args[0]
		}
		rec, err := lookupWallet(name)
		if err != nil {
			return err
		}
		wei, err := p.Balance(ctx, rec.Address)
		if err != nil {
			return fmt.Errorf("failed to fetch balance: %w", err)
		}

		fmt.Printf("Wallet:   %s\n", rec.Name)
		fmt.Printf("Address:  %s\n", wallet.ChecksumAddress(rec.Address))
		fmt.Printf("Network:  %s\n", viper.GetString("network"))
		fmt.Printf("Balance:  %s RBTC\n", provider.FormatRBTC(wei))
		return nil
	},
}
