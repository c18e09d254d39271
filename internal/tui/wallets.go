// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// This file holds the wallet sub-views: the wallet list (switch, copy,
// delete), the balance view, and the send form. All chain access happens
// in tea.Cmd closures so the UI never blocks on the network.
package tui

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/i18n"
	"github.com/rskvault/rskvault/internal/model"
	"github.com/rskvault/rskvault/internal/provider"
	"github.com/rskvault/rskvault/internal/security"
	"github.com/rskvault/rskvault/internal/wallet"
)

const rpcTimeout = 30 * time.Second

// walletsModel is the model for the wallet list view.
type walletsModel struct {
	records       []wallet.Record
	current       string // normalized address of the active wallet
	cursor        int
	status        string
	err           error
	confirming    bool
	toDelete      wallet.Record
	confirmCursor int // 0 for No, 1 for Yes
	width, height int
}

// newWalletsModel loads the keystore and builds the list view.
func newWalletsModel() *walletsModel {
	m := &walletsModel{}
	m.reload()
	return m
}

// reload re-reads the keystore into the model.
func (m *walletsModel) reload() {
	wd, err := openKeystore().Load()
	if err != nil {
		m.err = err
		return
	}
	m.records = wd.List()
	m.current = wd.CurrentWallet
	if m.cursor >= len(m.records) && m.cursor > 0 {
		m.cursor = len(m.records) - 1
	}
}

func (m *walletsModel) Init() tea.Cmd {
	return nil
}

func (m *walletsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.confirming {
			switch msg.String() {
			case "left", "h", "right", "l", "tab":
				m.confirmCursor = 1 - m.confirmCursor
			case "esc", "n":
				m.confirming = false
			case "enter":
				m.confirming = false
				if m.confirmCursor == 1 {
					if err := m.deleteWallet(m.toDelete); err != nil {
						m.err = err
						return m, nil
					}
					m.status = i18n.T("wallets.deleted", m.toDelete.Name)
					m.reload()
				}
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.records) == 0 {
				return m, nil
			}
			rec := m.records[m.cursor]
			err := openKeystore().Update(func(d *wallet.WalletData) error {
				return d.Switch(rec.Address)
			})
			if err != nil {
				m.err = err
				return m, nil
			}
			m.current = wallet.NormalizeAddress(rec.Address)
			m.status = i18n.T("wallets.switched", rec.Name)
			if db.IsInitialized() {
				_ = db.LogActivity(model.ActivityEntry{
					WalletAddress: rec.Address,
					Action:        "SWITCH_WALLET",
					Details:       rec.Name,
					Network:       rec.Network,
				})
			}
		case "c":
			if len(m.records) == 0 {
				return m, nil
			}
			if err := clipboard.WriteAll(m.records[m.cursor].Address); err == nil {
				m.status = i18n.T("wallets.copied")
			}
		case "d":
			if len(m.records) == 0 {
				return m, nil
			}
			m.confirming = true
			m.confirmCursor = 0
			m.toDelete = m.records[m.cursor]
			m.status = ""
		}
	}
	return m, nil
}

// deleteWallet removes a record from the keystore and logs the action.
// The sealed key material is gone afterwards; without a backup there is
// no way to recover it.
func (m *walletsModel) deleteWallet(rec wallet.Record) error {
	err := openKeystore().Update(func(d *wallet.WalletData) error {
		return d.Remove(rec.Address)
	})
	if err != nil {
		return err
	}
	if db.IsInitialized() {
		_ = db.LogActivity(model.ActivityEntry{
			WalletAddress: rec.Address,
			Action:        "DELETE_WALLET",
			Details:       rec.Name,
			Network:       rec.Network,
		})
	}
	return nil
}

func (m *walletsModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	title := titleStyle.Render("👛 " + i18n.T("wallets.title"))

	if m.confirming {
		question := i18n.T("wallets.confirm_delete", m.toDelete.Name)
		address := helpStyle.Render(m.toDelete.Address)
		warning := specialStyle.Render(i18n.T("wallets.delete_warning"))
		noButton := activeButtonStyle.Render(i18n.T("button.no"))
		yesButton := buttonStyle.Render(i18n.T("button.yes"))
		if m.confirmCursor == 1 {
			noButton = buttonStyle.Render(i18n.T("button.no"))
			yesButton = activeButtonStyle.Render(i18n.T("button.yes"))
		}
		buttons := lipgloss.JoinHorizontal(lipgloss.Top, noButton, "  ", yesButton)
		dialog := dialogBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, question, address, warning, buttons))
		return lipgloss.JoinVertical(lipgloss.Left, title, "", dialog)
	}

	var listItems []string
	if len(m.records) == 0 {
		listItems = append(listItems, helpStyle.Render(i18n.T("wallets.empty")))
	}
	for i, rec := range m.records {
		marker := "  "
		if wallet.NormalizeAddress(rec.Address) == m.current {
			marker = successStyle.Render("● ")
		}
		line := fmt.Sprintf("%-16s %s %s", rec.Name, rec.Address, helpStyle.Render(rec.Network))
		if m.cursor == i {
			listItems = append(listItems, selectedItemStyle.Render("▸ ")+marker+line)
		} else {
			listItems = append(listItems, "  "+marker+line)
		}
	}

	listPane := paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, listItems...))

	parts := []string{title, "", listPane}
	if m.status != "" {
		parts = append(parts, statusMessageStyle.Render(m.status))
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	parts = append(parts, "", footerStyle.Render(AlignFooter(i18n.T("wallets.help"), "", width)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// balanceFetchedMsg carries the result of an async balance query.
type balanceFetchedMsg struct {
	address string
	wei     *big.Int
	err     error
}

// balanceModel shows the balance of the active wallet.
type balanceModel struct {
	name     string
	address  string
	network  string
	wei      *big.Int
	fetching bool
	err      error
}

// newBalanceModel resolves the active wallet; the balance itself arrives
// later via balanceFetchedMsg.
func newBalanceModel() balanceModel {
	m := balanceModel{network: viper.GetString("network")}
	wd, err := openKeystore().Load()
	if err != nil {
		m.err = err
		return m
	}
	rec, ok := wd.Current()
	if !ok {
		m.err = fmt.Errorf("%s", i18n.T("wallets.none_active"))
		return m
	}
	m.name = rec.Name
	m.address = rec.Address
	m.fetching = true
	return m
}

func (m balanceModel) Init() tea.Cmd {
	if m.address == "" {
		return nil
	}
	return fetchBalanceCmd(m.address)
}

// fetchBalanceCmd queries the configured RPC node for an address balance.
func fetchBalanceCmd(address string) tea.Cmd {
	return func() tea.Msg {
		p, err := dialProvider()
		if err != nil {
			return balanceFetchedMsg{address: address, err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()
		wei, err := p.Balance(ctx, address)
		return balanceFetchedMsg{address: address, wei: wei, err: err}
	}
}

func (m balanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case balanceFetchedMsg:
		m.fetching = false
		m.wei = msg.wei
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }
		case "r":
			if m.address != "" {
				m.fetching = true
				m.err = nil
				return m, fetchBalanceCmd(m.address)
			}
		case "c":
			if m.address != "" {
				_ = clipboard.WriteAll(m.address)
			}
		}
	}
	return m, nil
}

func (m balanceModel) View() string {
	title := titleStyle.Render("💰 " + i18n.T("balance.title"))

	var lines []string
	if m.err != nil {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		lines = append(lines,
			formatLabelPadding(i18n.T("balance.wallet"), successStyle.Render(m.name), 10),
			formatLabelPadding(i18n.T("balance.address"), m.address, 10),
			formatLabelPadding(i18n.T("balance.network"), m.network, 10),
			"")
		if m.fetching {
			lines = append(lines, helpStyle.Render(i18n.T("balance.fetching")))
		} else {
			amount := selectedItemStyle.Bold(true).Render(provider.FormatRBTC(m.wei) + " RBTC")
			lines = append(lines, formatLabelPadding(i18n.T("balance.balance"), amount, 10))
		}
	}

	pane := paneStyle.Width(64).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	footer := footerStyle.Render(AlignFooter(i18n.T("balance.help"), "", 64))
	return lipgloss.JoinVertical(lipgloss.Left, title, "", pane, "", footer)
}

// sendState tracks the phases of the send flow.
type sendState int

const (
	sendFormState sendState = iota
	sendConfirmState
	sendBusyState
	sendDoneState
)

// sendResultMsg carries the outcome of a broadcast attempt.
type sendResultMsg struct {
	txHash string
	err    error
}

// sendModel is the form for sending RBTC from the active wallet.
type sendModel struct {
	state         sendState
	focusIndex    int
	inputs        []textinput.Model // 0: recipient, 1: amount, 2: password
	from          wallet.Record
	network       string
	resolvedTo    string
	amountWei     *big.Int
	confirmCursor int // 0 for No, 1 for Yes
	txHash        string
	copied        bool
	err           error
}

// newSendModel builds the send form bound to the active wallet.
func newSendModel() *sendModel {
	m := &sendModel{
		inputs:  make([]textinput.Model, 3),
		network: viper.GetString("network"),
	}

	wd, err := openKeystore().Load()
	if err != nil {
		m.err = err
	} else if rec, ok := wd.Current(); ok {
		m.from = rec
	} else {
		m.err = fmt.Errorf("%s", i18n.T("wallets.none_active"))
	}

	var t textinput.Model
	for i := range m.inputs {
		t = textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 128
		t.Width = 46

		switch i {
		case 0:
			t.Prompt = i18n.T("send.prompt_to")
			t.Placeholder = "alice or 0x…"
		case 1:
			t.Prompt = i18n.T("send.prompt_amount")
			t.Placeholder = "0.001"
		case 2:
			t.Prompt = i18n.T("send.prompt_password")
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}
		m.inputs[i] = t
	}
	m.inputs[0].Focus()
	m.inputs[0].TextStyle = focusedStyle

	return m
}

func (m *sendModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *sendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sendResultMsg:
		m.state = sendDoneState
		m.txHash = msg.txHash
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case sendConfirmState:
			switch msg.String() {
			case "left", "h", "right", "l", "tab":
				m.confirmCursor = 1 - m.confirmCursor
			case "esc", "n":
				m.state = sendFormState
			case "enter":
				if m.confirmCursor != 1 {
					m.state = sendFormState
					return m, nil
				}
				m.state = sendBusyState
				password := security.NewPassword(m.inputs[2].Value())
				return m, sendTxCmd(m.from, m.resolvedTo, m.amountWei, m.network, password)
			}
			return m, nil

		case sendBusyState:
			// Ignore keys while broadcasting.
			return m, nil

		case sendDoneState:
			switch msg.String() {
			case "c":
				if m.txHash != "" {
					if err := clipboard.WriteAll(m.txHash); err == nil {
						m.copied = true
					}
				}
			case "q", "esc", "enter":
				return m, func() tea.Msg { return backToMenuMsg{} }
			}
			return m, nil
		}

		// sendFormState
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			if s == "enter" && m.focusIndex == len(m.inputs) {
				if err := m.validate(); err != nil {
					m.err = err
					return m, nil
				}
				m.err = nil
				m.state = sendConfirmState
				m.confirmCursor = 0
				return m, nil
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}
			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := 0; i <= len(m.inputs)-1; i++ {
				if i == m.focusIndex {
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].TextStyle = focusedStyle
					continue
				}
				m.inputs[i].Blur()
				m.inputs[i].TextStyle = lipgloss.NewStyle()
			}
			return m, tea.Batch(cmds...)
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *sendModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

// validate resolves the recipient and parses the amount. Recipients may
// be a contact name or a hex address.
func (m *sendModel) validate() error {
	if m.from.Address == "" {
		return fmt.Errorf("%s", i18n.T("wallets.none_active"))
	}

	to := strings.TrimSpace(m.inputs[0].Value())
	if to == "" {
		return fmt.Errorf("%s", i18n.T("send.err_no_recipient"))
	}
	resolved, err := resolveRecipient(to)
	if err != nil {
		return err
	}
	m.resolvedTo = resolved

	amount, err := provider.ParseRBTC(strings.TrimSpace(m.inputs[1].Value()))
	if err != nil {
		return err
	}
	if amount.Sign() <= 0 {
		return fmt.Errorf("%s", i18n.T("send.err_zero_amount"))
	}
	m.amountWei = amount

	if m.inputs[2].Value() == "" {
		return fmt.Errorf("%s", i18n.T("send.err_no_password"))
	}
	return nil
}

// resolveRecipient turns a contact name or hex address into a checksummed
// address.
func resolveRecipient(to string) (string, error) {
	if wallet.IsHexAddress(to) {
		return wallet.ChecksumAddress(to), nil
	}
	if !db.IsInitialized() {
		return "", fmt.Errorf("%s", i18n.T("send.err_unknown_recipient", to))
	}
	contact, err := db.GetContactByName(to)
	if err != nil {
		return "", err
	}
	if contact == nil {
		return "", fmt.Errorf("%s", i18n.T("send.err_unknown_recipient", to))
	}
	return contact.Address, nil
}

// sendTxCmd unseals the wallet, signs a transfer, and broadcasts it. The
// private key lives only inside this closure and is zeroed before it
// returns.
func sendTxCmd(from wallet.Record, to string, amountWei *big.Int, network string, password security.Password) tea.Cmd {
	return func() tea.Msg {
		key, err := from.Unseal(password)
		if err != nil {
			return sendResultMsg{err: err}
		}
		defer key.Zero()

		chainID, err := provider.ChainID(network)
		if err != nil {
			return sendResultMsg{err: err}
		}

		p, err := dialProvider()
		if err != nil {
			return sendResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		nonce, err := p.TransactionCount(ctx, from.Address)
		if err != nil {
			return sendResultMsg{err: err}
		}
		gasPrice, err := p.GasPrice(ctx)
		if err != nil {
			return sendResultMsg{err: err}
		}

		tx := &wallet.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      21000,
			To:       to,
			Value:    amountWei,
			ChainID:  chainID,
		}
		signed, err := key.SignTx(tx)
		if err != nil {
			return sendResultMsg{err: err}
		}

		hash, err := p.SendRawTransaction(ctx, signed.RawHex())
		if err != nil {
			return sendResultMsg{err: err}
		}

		if db.IsInitialized() {
			_ = db.LogActivity(model.ActivityEntry{
				WalletAddress: from.Address,
				Action:        "SEND_TX",
				Details:       fmt.Sprintf("%s RBTC to %s", provider.FormatRBTC(amountWei), security.RedactAddress(to)),
				TxHash:        hash,
				Network:       network,
			})
		}
		return sendResultMsg{txHash: hash}
	}
}

func (m *sendModel) View() string {
	title := titleStyle.Render("💸 " + i18n.T("send.title"))

	switch m.state {
	case sendConfirmState:
		summary := lipgloss.JoinVertical(lipgloss.Left,
			i18n.T("send.confirm_question"),
			"",
			formatLabelPadding(i18n.T("send.from"), fmt.Sprintf("%s (%s)", m.from.Name, security.RedactAddress(m.from.Address)), 8),
			formatLabelPadding(i18n.T("send.to"), m.resolvedTo, 8),
			formatLabelPadding(i18n.T("send.amount"), specialStyle.Render(provider.FormatRBTC(m.amountWei)+" RBTC"), 8),
			formatLabelPadding(i18n.T("send.network"), m.network, 8),
		)
		noButton := activeButtonStyle.Render(i18n.T("button.no"))
		yesButton := buttonStyle.Render(i18n.T("button.yes"))
		if m.confirmCursor == 1 {
			noButton = buttonStyle.Render(i18n.T("button.no"))
			yesButton = activeButtonStyle.Render(i18n.T("button.yes"))
		}
		buttons := lipgloss.JoinHorizontal(lipgloss.Top, noButton, "  ", yesButton)
		dialog := dialogBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, summary, buttons))
		return lipgloss.JoinVertical(lipgloss.Left, title, "", dialog)

	case sendBusyState:
		return lipgloss.JoinVertical(lipgloss.Left, title, "",
			helpStyle.Render(i18n.T("send.broadcasting")))

	case sendDoneState:
		if m.err != nil {
			return lipgloss.JoinVertical(lipgloss.Left, title, "",
				errorStyle.Render(fmt.Sprintf("%s: %v", i18n.T("send.failed"), m.err)),
				"",
				footerStyle.Render(i18n.T("send.done_help")))
		}
		lines := []string{
			successStyle.Render(i18n.T("send.sent")),
			"",
			formatLabelPadding(i18n.T("send.tx_hash"), m.txHash, 8),
		}
		if m.copied {
			lines = append(lines, statusMessageStyle.Render(i18n.T("send.hash_copied")))
		}
		pane := paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
		return lipgloss.JoinVertical(lipgloss.Left, title, "", pane, "",
			footerStyle.Render(i18n.T("send.done_help")))
	}

	// sendFormState
	var viewItems []string
	viewItems = append(viewItems, title, "")
	viewItems = append(viewItems,
		helpStyle.Render(formatLabelPadding(i18n.T("send.from"), fmt.Sprintf("%s (%s, %s)", m.from.Name, security.RedactAddress(m.from.Address), m.network), 8)),
		"")
	for i := range m.inputs {
		viewItems = append(viewItems, m.inputs[i].View())
	}

	button := itemStyle.Render("[ " + i18n.T("send.submit") + " ]")
	if m.focusIndex == len(m.inputs) {
		button = selectedItemStyle.Render("[ " + i18n.T("send.submit") + " ]")
	}
	viewItems = append(viewItems, "", button)

	if m.err != nil {
		viewItems = append(viewItems, "", errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	viewItems = append(viewItems, "", helpStyle.Render(i18n.T("send.form_help")))

	return lipgloss.JoinVertical(lipgloss.Left, viewItems...)
}
