// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/i18n"
	"github.com/rskvault/rskvault/internal/model"
)

// menuModel holds the state for the main menu.
type menuModel struct {
	choices []string // The menu items to show.
	cursor  int      // Which menu item our cursor is pointing at.
}

// dashboardDataMsg is a message containing the data for the main menu
// dashboard.
type dashboardDataMsg struct {
	data dashboardData
}

// dashboardData holds the summary information for the main menu view.
type dashboardData struct {
	network        string
	walletCount    int
	currentName    string
	currentAddress string
	contactCount   int
	apiKeyCount    int
	recent         []model.ActivityEntry
	err            error
}

// refreshDashboardCmd is a tea.Cmd that fetches summary data for the main
// menu: the active wallet, counts, and the most recent activity entries.
func refreshDashboardCmd() tea.Cmd {
	return func() tea.Msg {
		data := dashboardData{network: viper.GetString("network")}

		ks := openKeystore()
		wd, err := ks.Load()
		if err != nil {
			return dashboardDataMsg{data: dashboardData{err: err}}
		}
		data.walletCount = len(wd.Wallets)
		if rec, ok := wd.Current(); ok {
			data.currentName = rec.Name
			data.currentAddress = rec.Address
		}

		if db.IsInitialized() {
			if contacts, err := db.GetAllContacts(); err == nil {
				data.contactCount = len(contacts)
			}
			if keys, err := db.GetAllAPIKeys(); err == nil {
				data.apiKeyCount = len(keys)
			}
			if entries, err := db.GetRecentActivity(6); err == nil {
				data.recent = entries
			}
		}

		return dashboardDataMsg{data: data}
	}
}

// formatLabelPadding aligns a label/value pair on the label column.
func formatLabelPadding(label, value string, labelWidth int) string {
	if labelWidth <= 0 || len(label) >= labelWidth {
		return label + " " + value
	}
	return label + strings.Repeat(" ", labelWidth-len(label)) + " " + value
}

// View renders the main menu and dashboard.
func (m menuModel) View(data dashboardData, width, height int) string {
	title := mainTitleStyle.Render("🔐 " + i18n.T("dashboard.title"))
	subTitle := helpStyle.Render(i18n.T("dashboard.subtitle"))
	header := lipgloss.JoinVertical(lipgloss.Left, title, subTitle)

	paneTitleStyle := lipgloss.NewStyle().Bold(true)

	// Menu List (Left Pane)
	var menuItems []string
	menuItems = append(menuItems, paneTitleStyle.Render(i18n.T("menu.navigation")), "")
	for i, choice := range m.choices {
		if m.cursor == i {
			menuItems = append(menuItems, selectedItemStyle.Render("▸ "+choice))
		} else {
			menuItems = append(menuItems, itemStyle.Render("  "+choice))
		}
	}
	menuContent := lipgloss.JoinVertical(lipgloss.Left, menuItems...)

	// Dashboard (Right Pane)
	var dashboardItems []string
	dashboardItems = append(dashboardItems, paneTitleStyle.Render(i18n.T("dashboard.wallet_status")), "")

	currentWallet := helpStyle.Render(i18n.T("dashboard.no_wallet"))
	if data.currentAddress != "" {
		currentWallet = successStyle.Render(data.currentName) + " " + helpStyle.Render(data.currentAddress)
	}
	networkValue := successStyle.Render(data.network)
	if data.network == "testnet" {
		networkValue = specialStyle.Render(data.network)
	}

	statusItems := []struct {
		label string
		value string
	}{
		{i18n.T("dashboard.current_wallet"), currentWallet},
		{i18n.T("dashboard.network"), networkValue},
		{i18n.T("dashboard.wallets"), fmt.Sprintf("%d", data.walletCount)},
		{i18n.T("dashboard.contacts"), fmt.Sprintf("%d", data.contactCount)},
		{i18n.T("dashboard.api_keys"), fmt.Sprintf("%d", data.apiKeyCount)},
	}

	maxLabelLen := 0
	for _, item := range statusItems {
		if len(item.label) > maxLabelLen {
			maxLabelLen = len(item.label)
		}
	}
	for _, item := range statusItems {
		dashboardItems = append(dashboardItems, formatLabelPadding(item.label, item.value, maxLabelLen))
	}

	// Recent Activity
	dashboardItems = append(dashboardItems, "", "", paneTitleStyle.Render(i18n.T("dashboard.recent_activity")), "")

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footerStyle.Render(""))
	paneHeight := height - headerHeight - footerHeight - 2

	menuWidth := 30
	dashboardWidth := width - 4 - menuWidth - 2

	if len(data.recent) == 0 {
		dashboardItems = append(dashboardItems, helpStyle.Render(i18n.T("dashboard.no_recent_activity")))
	} else {
		for _, entry := range data.recent {
			ts := entry.Timestamp.Format("01-02 15:04")

			innerDashboardWidth := dashboardWidth - 4 - 2
			availableWidth := innerDashboardWidth - len(ts) - 1

			styledAction := activityActionStyle(entry.Action).Render(entry.Action)
			detailsWidth := availableWidth - len(entry.Action) - 1
			if detailsWidth < 10 {
				detailsWidth = 10
			}
			details := entry.Details
			if len(details) > detailsWidth {
				details = details[:detailsWidth-3] + "..."
			}

			logLine := lipgloss.JoinHorizontal(lipgloss.Left,
				helpStyle.Render(ts), " ", styledAction, " ", helpStyle.Render(details))
			dashboardItems = append(dashboardItems, logLine)
		}
	}
	dashboardContent := lipgloss.JoinVertical(lipgloss.Left, dashboardItems...)

	leftPane := paneStyle.Width(menuWidth).Height(paneHeight).Render(menuContent)
	rightPane := paneStyle.Width(dashboardWidth).Height(paneHeight).MarginLeft(2).Render(dashboardContent)

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	footer := footerStyle.Render(AlignFooter(i18n.T("dashboard.footer"), "", width))

	return lipgloss.JoinVertical(lipgloss.Top, header, mainArea, footer)
}
