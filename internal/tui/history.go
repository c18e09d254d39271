// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/i18n"
	"github.com/rskvault/rskvault/internal/model"
)

// historyModel is the model for the activity log view.
type historyModel struct {
	table       table.Model
	allEntries  []model.ActivityEntry // Master list of all entries
	displayed   []model.ActivityEntry // Entries behind the visible rows
	filter      string
	isFiltering bool
	status      string
	err         error
}

// newHistoryModel loads the activity log into a table.
func newHistoryModel() *historyModel {
	m := &historyModel{}
	entries, err := db.GetRecentActivity(0)
	if err != nil {
		m.err = err
		return m
	}
	m.allEntries = entries

	columns := []table.Column{
		{Title: i18n.T("history.header.time"), Width: 16},
		{Title: i18n.T("history.header.action"), Width: 16},
		{Title: i18n.T("history.header.details"), Width: 40},
		{Title: i18n.T("history.header.tx"), Width: 14},
		{Title: i18n.T("history.header.network"), Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15), // Placeholder height
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Background(colorHighlight).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	m.rebuildTableRows()
	return m
}

// activityActionStyle picks a color for an action name. Chain writes get
// the highlight color, creations green, destructive or sensitive actions
// orange.
func activityActionStyle(action string) lipgloss.Style {
	switch {
	case action == "SEND_TX":
		return selectedItemStyle
	case strings.HasPrefix(action, "CREATE"),
		strings.HasPrefix(action, "IMPORT"),
		strings.HasPrefix(action, "ADD"),
		strings.HasPrefix(action, "SET"):
		return successStyle
	case strings.HasPrefix(action, "DELETE"),
		strings.HasPrefix(action, "REMOVE"),
		strings.HasPrefix(action, "EXPORT"):
		return specialStyle
	default:
		return helpStyle
	}
}

// shortHash trims a transaction hash for narrow table columns.
func shortHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12] + "…"
}

// rebuildTableRows filters the master list and repopulates the table.
func (m *historyModel) rebuildTableRows() {
	var rows []table.Row
	m.displayed = nil
	lowerFilter := strings.ToLower(m.filter)

	for _, entry := range m.allEntries {
		if m.filter != "" {
			match := strings.Contains(strings.ToLower(entry.Action), lowerFilter) ||
				strings.Contains(strings.ToLower(entry.Details), lowerFilter) ||
				strings.Contains(strings.ToLower(entry.TxHash), lowerFilter) ||
				strings.Contains(strings.ToLower(entry.Network), lowerFilter)
			if !match {
				continue
			}
		}

		rows = append(rows, table.Row{
			entry.Timestamp.Format("2006-01-02 15:04"),
			activityActionStyle(entry.Action).Render(entry.Action),
			entry.Details,
			shortHash(entry.TxHash),
			entry.Network,
		})
		m.displayed = append(m.displayed, entry)
	}
	m.table.SetRows(rows)

	if m.isFiltering {
		m.table.GotoTop()
	}
}

func (m *historyModel) Init() tea.Cmd {
	return nil
}

func (m *historyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// header(3) + filter/help(3)
		m.table.SetHeight(msg.Height - 6)
		m.table.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		if m.isFiltering {
			switch msg.Type {
			case tea.KeyEsc:
				m.isFiltering = false
				m.filter = ""
				m.rebuildTableRows()
			case tea.KeyEnter:
				m.isFiltering = false
			case tea.KeyBackspace:
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.rebuildTableRows()
				}
			case tea.KeyRunes:
				m.filter += string(msg.Runes)
				m.rebuildTableRows()
			}
			return m, nil
		}

		switch msg.String() {
		case "/":
			m.isFiltering = true
			m.filter = ""
			m.rebuildTableRows()
			return m, nil
		case "c":
			if entry, ok := m.selectedEntry(); ok && entry.TxHash != "" {
				if err := clipboard.WriteAll(entry.TxHash); err == nil {
					m.status = i18n.T("history.hash_copied")
				}
			}
			return m, nil
		case "q", "esc":
			if m.filter != "" {
				m.filter = ""
				m.isFiltering = false
				m.rebuildTableRows()
				return m, nil
			}
			return m, func() tea.Msg { return backToMenuMsg{} }
		}
	}

	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// selectedEntry returns the activity entry behind the selected table row.
func (m *historyModel) selectedEntry() (model.ActivityEntry, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.displayed) {
		return model.ActivityEntry{}, false
	}
	return m.displayed[idx], true
}

func (m *historyModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error loading activity log: %v", m.err))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("📜 "+i18n.T("history.title")) + "\n\n")

	if len(m.table.Rows()) == 0 {
		b.WriteString(helpStyle.Render(i18n.T("history.empty")))
		b.WriteString(m.footerView())
		return b.String()
	}

	b.WriteString(m.table.View())
	if m.status != "" {
		b.WriteString("\n" + statusMessageStyle.Render(m.status))
	}
	b.WriteString(m.footerView())
	return b.String()
}

func (m *historyModel) footerView() string {
	var filterStatus string
	if m.isFiltering {
		filterStatus = i18n.T("history.filtering", m.filter)
	} else if m.filter != "" {
		filterStatus = i18n.T("history.filter_active", m.filter)
	} else {
		filterStatus = i18n.T("history.filter_hint")
	}
	return helpStyle.Render(fmt.Sprintf("\n%s %s", i18n.T("history.help"), filterStatus))
}
