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

	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/provider"
	"github.com/rskvault/rskvault/internal/security"
	"github.com/rskvault/rskvault/internal/wallet"
)

// dialHistory builds the transfer-index client for the given network using
// the stored Alchemy key. Tests swap in a client bound to a local server.
var dialHistory = func(network string) (*provider.HistoryClient, error) {
	rec, err := db.GetAPIKey("alchemy", network)
	if err != nil {
		return nil, fmt.Errorf("failed to look up alchemy key: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("no alchemy API key stored for %s (run 'rskvault apikey set alchemy')", network)
	}
	return provider.NewHistoryClient(network, security.APIKeyFromSecret(rec.Key))
}

// historyCmd lists on-chain transfers touching a wallet. The plain node
// RPC has no per-address index, so this goes through Alchemy and needs a
// stored key.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show on-chain transfers for a wallet",
	Long: `Lists RBTC transfers touching the active wallet (or --address),
incoming and outgoing, newest first. Requires an Alchemy API key stored
with 'rskvault apikey set alchemy'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		address, _ := cmd.Flags().GetString("address")
		incoming, _ := cmd.Flags().GetBool("incoming")
		outgoing, _ := cmd.Flags().GetBool("outgoing")
		if incoming && outgoing {
			return fmt.Errorf("--incoming and --outgoing are mutually exclusive")
		}

		if address == "" {
			rec, err := lookupWallet("")
			if err != nil {
				return err
			}
			address = rec.Address
		} else if !wallet.IsHexAddress(address) {
			return fmt.Errorf("not a valid address: %s", address)
		}

		network := viper.GetString("network")
		hc, err := dialHistory(network)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
		defer cancel()

		transfers, err := hc.AssetTransfers(ctx, address, limit)
		if err != nil {
			return fmt.Errorf("failed to fetch transfers: %w", err)
		}
		if incoming || outgoing {
			kept := make([]provider.Transfer, 0, len(transfers))
			for _, t := range transfers {
				if t.Incoming == incoming {
					kept = append(kept, t)
				}
			}
			transfers = kept
		}
		if len(transfers) == 0 {
			fmt.Println("No transfers found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DIRECTION\tVALUE\tASSET\tCOUNTERPARTY\tHASH\tTIME")
		for _, t := range transfers {
			dir, counterparty := "out", t.To
			if t.Incoming {
				dir, counterparty = "in", t.From
			}
			ts := ""
			if !t.Timestamp.IsZero() {
				ts = t.Timestamp.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				dir, t.Value, t.Asset, counterparty, t.Hash, ts)
		}
		w.Flush()
		return nil
	},
}
