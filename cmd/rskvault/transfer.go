// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package rskvault

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rskvault/rskvault/internal/contacts"
	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/i18n"
	"github.com/rskvault/rskvault/internal/model"
	"github.com/rskvault/rskvault/internal/provider"
	"github.com/rskvault/rskvault/internal/security"
	"github.com/rskvault/rskvault/internal/wallet"
)

var transferPassword string // Flag for the transfer password
var transferYes bool        // Flag to skip the confirmation prompt

// Receipt polling bounds for --wait. Rootstock mines roughly every half
// minute, so two minutes covers a few blocks of queueing.
var (
	receiptPollEvery = 5 * time.Second
	receiptWaitMax   = 2 * time.Minute
)

// transferCmd signs and broadcasts an RBTC transfer.
var transferCmd = &cobra.Command{
	Use:   "transfer <recipient> <amount>",
	Short: "Send RBTC to an address or stored contact",
	Long: `Signs a transfer from the active wallet (or --from) and broadcasts it
to the configured network. The recipient is a hex address or the name
of a stored contact; the amount is in RBTC (e.g. 0.25).

The transaction summary is shown and must be confirmed before anything
is signed, unless --yes is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := contacts.New(db.ActiveStore()).Resolve(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve recipient: %w", err)
		}
		amountWei, err := provider.ParseRBTC(args[1])
		if err != nil {
			return err
		}
		if amountWei.Sign() <= 0 {
			return fmt.Errorf("amount must be greater than zero")
		}

		fromName, _ := cmd.Flags().GetString("from")
		rec, err := lookupWallet(fromName)
		if err != nil {
			return err
		}

		network := viper.GetString("network")
		chainID, err := provider.ChainID(network)
		if err != nil {
			return err
		}

		p, err := dialProvider()
		if err != nil {
			return fmt.Errorf("failed to reach RPC endpoint: %w", err)
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
		defer cancel()

		nonce, err := p.TransactionCount(ctx, rec.Address)
		if err != nil {
			return fmt.Errorf("failed to fetch nonce: %w", err)
		}
		gasPrice, err := p.GasPrice(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch gas price: %w", err)
		}
		gas, err := p.EstimateGas(ctx, rec.Address, to, amountWei)
		if err != nil {
			return fmt.Errorf("failed to estimate gas: %w", err)
		}

		maxFee := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gas))
		fmt.Println(i18n.T("cmd.transfer.summary"))
		fmt.Printf("  From:     %s (%s)\n", rec.Name, security.RedactAddress(rec.Address))
		fmt.Printf("  To:       %s\n", to)
		fmt.Printf("  Amount:   %s RBTC\n", provider.FormatRBTC(amountWei))
		fmt.Printf("  Network:  %s\n", network)
		fmt.Printf("  Max fee:  %s RBTC\n", provider.FormatRBTC(maxFee))

		if !transferYes {
			answer := promptForConfirmation(i18n.T("cmd.transfer.confirm"))
			if answer != "yes" && answer != "y" {
				fmt.Println(i18n.T("cmd.transfer.cancelled"))
				return nil
			}
		}

		password, err := passwordFromFlagOrPrompt(transferPassword, "Password: ")
		if err != nil {
			return err
		}
		defer password.Clear()

		key, err := rec.Unseal(password)
		if err != nil {
			return fmt.Errorf("failed to unseal wallet: %w", err)
		}
		defer key.Zero()

		tx := &wallet.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gas,
			To:       to,
			Value:    amountWei,
			ChainID:  chainID,
		}
		signed, err := key.SignTx(tx)
		if err != nil {
			return fmt.Errorf("failed to sign transaction: %w", err)
		}

		hash, err := p.SendRawTransaction(ctx, signed.RawHex())
		if err != nil {
			return fmt.Errorf("broadcast failed: %w", err)
		}

		_ = db.LogActivity(model.ActivityEntry{
			WalletAddress: rec.Address,
			Action:        "SEND_TX",
			Details:       fmt.Sprintf("%s RBTC to %s", provider.FormatRBTC(amountWei), security.RedactAddress(to)),
			TxHash:        hash,
			Network:       network,
		})

		fmt.Println(i18n.T("cmd.transfer.sent"))
		fmt.Printf("Tx hash: %s\n", hash)

		if wait, _ := cmd.Flags().GetBool("wait"); wait {
			return waitForReceipt(cmd.Context(), p, hash)
		}
		return nil
	},
}

// waitForReceipt polls for the receipt of a broadcast transaction until it
// is mined or receiptWaitMax elapses.
func waitForReceipt(ctx context.Context, p *provider.Provider, hash string) error {
	fmt.Println(i18n.T("cmd.transfer.waiting"))
	deadline := time.After(receiptWaitMax)
	tick := time.NewTicker(receiptPollEvery)
	defer tick.Stop()
	for {
		select {
		case <-deadline:
			return fmt.Errorf("no receipt after %s; the transaction may still be mined later", receiptWaitMax)
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			rctx, cancel := context.WithTimeout(ctx, rpcTimeout)
			receipt, err := p.TransactionReceipt(rctx, hash)
			cancel()
			if err != nil {
				return err
			}
			if receipt == nil {
				continue
			}
			if receipt.Succeeded() {
				fmt.Println(i18n.T("cmd.transfer.confirmed"))
			} else {
				fmt.Println(i18n.T("cmd.transfer.reverted"))
			}
			return nil
		}
	}
}
