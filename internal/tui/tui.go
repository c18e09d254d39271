// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// This file, tui.go, is the main entry point for the TUI, containing the
// top-level model that acts as a router to all other sub-views.
package tui

import (
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/rskvault/rskvault/internal/config"
	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/i18n"
	"github.com/rskvault/rskvault/internal/logging"
	"github.com/rskvault/rskvault/internal/model"
	"github.com/rskvault/rskvault/internal/provider"
	"github.com/rskvault/rskvault/internal/security"
	"github.com/rskvault/rskvault/internal/wallet"
)

// viewState represents which part of the UI is currently active.
type viewState int

const (
	// menuView is the main dashboard and navigation menu.
	menuView viewState = iota
	walletsView
	balanceView
	sendView
	historyView
	contactsView
	apiKeysView
	networkView
	languageView
)

// backToMenuMsg signals that the active sub-view wants to return to the
// main menu.
type backToMenuMsg struct{}

// languageChangedMsg signals that the language has changed and the UI
// should be re-initialized with fresh translations.
type languageChangedMsg struct{}

// configSaver persists the viper state after a runtime setting change
// (network, language). Tests replace it so they never touch the real
// config file.
var configSaver = config.Save

// openKeystore builds the wallet keystore from the configured file path.
// Tests point it at a temporary file.
var openKeystore = func() *wallet.Keystore {
	return wallet.NewKeystore(viper.GetString("wallet.file"))
}

// dialProvider connects to the configured RPC endpoint for the active
// network. Tests swap in a provider bound to a local test server.
var dialProvider = func() (*provider.Provider, error) {
	return provider.New(viper.GetString("network"), viper.GetString("rpc.url"), viper.GetBool("rpc.enforce_tls"))
}

// mainModel is the top-level model for the TUI. It acts as a state machine
// and router, delegating updates and view rendering to the currently active
// sub-model.
type mainModel struct {
	state     viewState
	menu      menuModel
	wallets   *walletsModel
	balance   balanceModel
	send      *sendModel
	history   *historyModel
	contacts  *contactsModel
	apikeys   apiKeysModel
	network   networkModel
	language  languageModel
	dashboard dashboardData
	width     int
	height    int
	err       error
}

// initialModel creates the starting state of the TUI, beginning at the
// main menu.
func initialModel() mainModel {
	return mainModel{
		state: menuView,
		menu: menuModel{
			choices: []string{
				i18n.T("menu.wallets"),
				i18n.T("menu.balance"),
				i18n.T("menu.send"),
				i18n.T("menu.history"),
				i18n.T("menu.contacts"),
				i18n.T("menu.api_keys"),
				i18n.T("menu.network"),
				i18n.T("menu.language"),
			},
		},
	}
}

// Init kicks off the initial command to load data for the dashboard.
func (m mainModel) Init() tea.Cmd {
	return refreshDashboardCmd()
}

// Update is the main message loop. It handles all events (like key presses
// and window size changes) and delegates them to the active sub-model.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings that work everywhere.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case dashboardDataMsg:
		m.dashboard = msg.data
		if msg.data.err != nil {
			m.err = msg.data.err
		}
		return m, nil
	case languageChangedMsg:
		// Re-initialize the entire model so every view picks up the new
		// translations, preserving the current window dimensions.
		newModel := initialModel()
		newModel.width = m.width
		newModel.height = m.height
		return newModel, newModel.Init()
	}

	// Delegate updates to the currently active view.
	switch m.state {
	case walletsView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var newModel tea.Model
		newModel, cmd = m.wallets.Update(msg)
		m.wallets = newModel.(*walletsModel)

	case balanceView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var newModel tea.Model
		newModel, cmd = m.balance.Update(msg)
		m.balance = newModel.(balanceModel)

	case sendView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var newModel tea.Model
		newModel, cmd = m.send.Update(msg)
		m.send = newModel.(*sendModel)

	case historyView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var newModel tea.Model
		newModel, cmd = m.history.Update(msg)
		m.history = newModel.(*historyModel)

	case contactsView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var newModel tea.Model
		newModel, cmd = m.contacts.Update(msg)
		m.contacts = newModel.(*contactsModel)

	case apiKeysView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshDashboardCmd()
		}
		var newModel tea.Model
		newModel, cmd = m.apikeys.Update(msg)
		m.apikeys = newModel.(apiKeysModel)

	case networkView:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q", "esc":
				m.state = menuView
				return m, refreshDashboardCmd()
			case "up", "k":
				if m.network.cursor > 0 {
					m.network.cursor--
				}
			case "down", "j":
				if m.network.cursor < len(m.network.choices)-1 {
					m.network.cursor++
				}
			case "enter":
				network := m.network.choices[m.network.cursor]
				viper.Set("network", network)
				if err := configSaver(); err != nil {
					m.err = fmt.Errorf("failed to save config: %w", err)
					return m, nil
				}
				m.state = menuView
				return m, refreshDashboardCmd()
			}
		}

	case languageView:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q", "esc":
				m.state = menuView
				return m, refreshDashboardCmd()
			case "up", "k":
				if m.language.cursor > 0 {
					m.language.cursor--
				}
			case "down", "j":
				if m.language.cursor < len(m.language.orderedKeys)-1 {
					m.language.cursor++
				}
			case "enter":
				langCode := m.language.orderedKeys[m.language.cursor]
				i18n.SetLang(langCode)
				viper.Set("language", langCode)
				if err := configSaver(); err != nil {
					m.err = fmt.Errorf("failed to save config: %w", err)
					return m, nil
				}
				return m, func() tea.Msg { return languageChangedMsg{} }
			}
		}

	default: // menuView
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q":
				return m, tea.Quit
			case "up", "k":
				if m.menu.cursor > 0 {
					m.menu.cursor--
				}
			case "down", "j":
				if m.menu.cursor < len(m.menu.choices)-1 {
					m.menu.cursor++
				}
			case "enter":
				switch m.menu.cursor {
				case 0: // Wallets
					m.state = walletsView
					m.wallets = newWalletsModel()
					var updatedModel tea.Model
					updatedModel, cmd = m.wallets.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
					m.wallets = updatedModel.(*walletsModel)
					return m, cmd
				case 1: // Balance
					m.state = balanceView
					m.balance = newBalanceModel()
					return m, m.balance.Init()
				case 2: // Send
					m.state = sendView
					m.send = newSendModel()
					return m, m.send.Init()
				case 3: // History
					m.state = historyView
					m.history = newHistoryModel()
					var updatedModel tea.Model
					updatedModel, cmd = m.history.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
					m.history = updatedModel.(*historyModel)
					return m, cmd
				case 4: // Contacts
					m.state = contactsView
					m.contacts = newContactsModel()
					var updatedModel tea.Model
					updatedModel, cmd = m.contacts.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
					m.contacts = updatedModel.(*contactsModel)
					return m, cmd
				case 5: // API Keys
					m.state = apiKeysView
					m.apikeys = newAPIKeysModel()
					return m, nil
				case 6: // Network
					m.state = networkView
					m.network = newNetworkModel()
					return m, nil
				case 7: // Language
					m.state = languageView
					m.language = newLanguageModel()
					return m, nil
				}
			}
		}
	}

	return m, cmd
}

// View renders the TUI. It's called after every Update and delegates
// rendering to the currently active sub-model.
func (m mainModel) View() string {
	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 2)
		return errorStyle.Render(fmt.Sprintf("An error occurred: %v", m.err))
	}

	switch m.state {
	case walletsView:
		return m.wallets.View()
	case balanceView:
		return m.balance.View()
	case sendView:
		return m.send.View()
	case historyView:
		return m.history.View()
	case contactsView:
		return m.contacts.View()
	case apiKeysView:
		return m.apikeys.View()
	case networkView:
		return m.network.View()
	case languageView:
		return m.language.View()
	default: // menuView
		return m.menu.View(m.dashboard, m.width, m.height)
	}
}

// networkModel holds the state for the network selection menu.
type networkModel struct {
	choices []string
	cursor  int
	active  string
}

// newNetworkModel creates the network picker, with the cursor on the
// currently configured network.
func newNetworkModel() networkModel {
	m := networkModel{
		choices: []string{provider.NetworkMainnet, provider.NetworkTestnet},
		active:  viper.GetString("network"),
	}
	for i, c := range m.choices {
		if c == m.active {
			m.cursor = i
		}
	}
	return m
}

// View renders the network picker.
func (m networkModel) View() string {
	title := mainTitleStyle.Render("🌐 " + i18n.T("network.title"))

	var listItems []string
	listItems = append(listItems, titleStyle.Render(i18n.T("network.select")), "")

	for i, network := range m.choices {
		chainID, _ := provider.ChainID(network)
		line := fmt.Sprintf("%s (chain id %d)", network, chainID)
		marker := "  "
		if network == m.active {
			marker = successStyle.Render("● ")
		}
		if m.cursor == i {
			listItems = append(listItems, selectedItemStyle.Render("▸ "+marker+line))
		} else {
			listItems = append(listItems, itemStyle.Render("  "+marker+line))
		}
	}

	listPane := paneStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, listItems...))
	helpLine := footerStyle.Render(AlignFooter(i18n.T("network.help"), "", 60))

	return lipgloss.JoinVertical(lipgloss.Left, title, "", listPane, "", helpLine)
}

// languageModel holds the state for the language selection menu.
type languageModel struct {
	choices     map[string]string // map of lang code to display name
	orderedKeys []string          // for stable iteration
	cursor      int
}

// newLanguageModel creates a new model for the language selection view.
func newLanguageModel() languageModel {
	choices := i18n.GetAvailableLocales()

	keys := make([]string, 0, len(choices))
	for k := range choices {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return languageModel{
		choices:     choices,
		orderedKeys: keys,
		cursor:      0,
	}
}

// View renders the language picker.
func (m languageModel) View() string {
	title := mainTitleStyle.Render("🌐 " + i18n.T("menu.language"))

	var listItems []string
	listItems = append(listItems, titleStyle.Render(i18n.T("language.select")), "")

	for i, langCode := range m.orderedKeys {
		displayName := m.choices[langCode]
		if m.cursor == i {
			listItems = append(listItems, selectedItemStyle.Render("▸ "+displayName))
		} else {
			listItems = append(listItems, itemStyle.Render("  "+displayName))
		}
	}

	listPane := paneStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, listItems...))
	helpLine := footerStyle.Render(AlignFooter(i18n.T("language.help"), "", 60))

	return lipgloss.JoinVertical(lipgloss.Left, title, "", listPane, "", helpLine)
}

// apiKeysModel holds the state for the stored API key list.
type apiKeysModel struct {
	records       []model.APIKeyRecord
	cursor        int
	confirming    bool
	confirmCursor int // 0 for No, 1 for Yes
	status        string
	err           error
}

// newAPIKeysModel loads the stored API keys.
func newAPIKeysModel() apiKeysModel {
	m := apiKeysModel{}
	recs, err := db.GetAllAPIKeys()
	if err != nil {
		m.err = err
		return m
	}
	m.records = recs
	return m
}

func (m apiKeysModel) Init() tea.Cmd { return nil }

func (m apiKeysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirming {
		switch keyMsg.String() {
		case "left", "h", "right", "l", "tab":
			m.confirmCursor = 1 - m.confirmCursor
		case "esc", "n":
			m.confirming = false
		case "enter":
			m.confirming = false
			if m.confirmCursor == 1 {
				rec := m.records[m.cursor]
				if err := db.DeleteAPIKey(rec.Provider, rec.Network); err != nil {
					m.err = err
					return m, nil
				}
				m.status = i18n.T("apikeys.deleted", rec.Provider, rec.Network)
				recs, err := db.GetAllAPIKeys()
				if err != nil {
					m.err = err
					return m, nil
				}
				m.records = recs
				if m.cursor >= len(m.records) && m.cursor > 0 {
					m.cursor = len(m.records) - 1
				}
			}
		}
		return m, nil
	}

	switch keyMsg.String() {
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
	case "d":
		if len(m.records) > 0 {
			m.confirming = true
			m.confirmCursor = 0
			m.status = ""
		}
	}
	return m, nil
}

// View renders the API key list. Keys are always shown masked; the raw
// material never reaches the screen.
func (m apiKeysModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	title := titleStyle.Render("🔑 " + i18n.T("apikeys.title"))

	if m.confirming {
		rec := m.records[m.cursor]
		question := i18n.T("apikeys.confirm_delete", rec.Provider, rec.Network)
		noButton := activeButtonStyle.Render(i18n.T("button.no"))
		yesButton := buttonStyle.Render(i18n.T("button.yes"))
		if m.confirmCursor == 1 {
			noButton = buttonStyle.Render(i18n.T("button.no"))
			yesButton = activeButtonStyle.Render(i18n.T("button.yes"))
		}
		buttons := lipgloss.JoinHorizontal(lipgloss.Top, noButton, "  ", yesButton)
		dialog := dialogBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, question, buttons))
		return lipgloss.JoinVertical(lipgloss.Left, title, "", dialog)
	}

	var listItems []string
	if len(m.records) == 0 {
		listItems = append(listItems, helpStyle.Render(i18n.T("apikeys.empty")))
	}
	for i, rec := range m.records {
		masked := security.APIKeyFromSecret(rec.Key).Masked()
		line := fmt.Sprintf("%-10s %-9s %s", rec.Provider, rec.Network, masked)
		if m.cursor == i {
			listItems = append(listItems, selectedItemStyle.Render("▸ "+line))
		} else {
			listItems = append(listItems, itemStyle.Render("  "+line))
		}
	}

	listPane := paneStyle.Width(64).Render(lipgloss.JoinVertical(lipgloss.Left, listItems...))

	parts := []string{title, "", listPane}
	if m.status != "" {
		parts = append(parts, statusMessageStyle.Render(m.status))
	}
	parts = append(parts, "", footerStyle.Render(AlignFooter(i18n.T("apikeys.help"), "", 64)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Run is the main entrypoint for the TUI. It initializes and runs the
// Bubble Tea program.
func Run() {
	if _, err := tea.NewProgram(initialModel()).Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		os.Exit(1)
	}
}
