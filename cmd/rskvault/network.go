// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package rskvault

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rskvault/rskvault/internal/config"
	"github.com/rskvault/rskvault/internal/provider"
)

// configSaver persists the viper state after a runtime setting change.
// Tests replace it so they never touch the real config file.
var configSaver = config.Save

// networkCmd shows the active network and queries the node for liveness.
var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Show the active network and node status",
	Long: `Prints the active network, its RPC endpoint and chain ID, then asks
the node for the current block number and gas price.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		network := viper.GetString("network")
		chainID, err := provider.ChainID(network)
		if err != nil {
			return err
		}
		p, err := dialProvider()
		if err != nil {
			return fmt.Errorf("failed to reach RPC endpoint: %w", err)
		}

		fmt.Printf("Network:    %s\n", network)
		fmt.Printf("Endpoint:   %s\n", p.URL())
		fmt.Printf("Chain ID:   %d\n", chainID)

		ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
		defer cancel()

		nodeChain, err := p.ChainID(ctx)
		if err != nil {
			return fmt.Errorf("node unreachable: %w", err)
		}
		if nodeChain != chainID {
			fmt.Fprintf(os.Stderr, "warning: node reports chain id %d, expected %d for %s\n", nodeChain, chainID, network)
		}
		block, err := p.BlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch block number: %w", err)
		}
		gasPrice, err := p.GasPrice(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch gas price: %w", err)
		}

		fmt.Printf("Block:      %d\n", block)
		fmt.Printf("Gas price:  %s wei\n", gasPrice.String())
		return nil
	},
}

// networkSwitchCmd changes the default network and persists it.
var networkSwitchCmd = &cobra.Command{
	Use:   "switch <mainnet|testnet>",
	Short: "Change the default network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := provider.NormalizeNetwork(args[0])
		if err != nil {
			return err
		}
		viper.Set("network", n)
		if err := configSaver(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("Active network is now %s\n", n)
		return nil
	},
}

func init() {
	networkCmd.AddCommand(networkSwitchCmd)
}
