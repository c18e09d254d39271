// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/rskvault/rskvault/internal/contacts"
	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/i18n"
	"github.com/rskvault/rskvault/internal/model"
)

// contactsViewState tracks which part of the contacts view is active.
type contactsViewState int

const (
	contactsListState contactsViewState = iota
	contactsFormState
	contactsConfirmDeleteState
)

// contactsModel is the model for the address book view.
type contactsModel struct {
	state       contactsViewState
	table       table.Model
	all         []model.Contact // Master list
	displayed   []model.Contact // Contacts behind the visible rows
	filter      string
	isFiltering bool
	status      string
	err         error

	// Add form
	focusIndex int
	inputs     []textinput.Model // 0: name, 1: address, 2: notes
	formErr    error

	// Delete confirmation
	toDelete      model.Contact
	confirmCursor int // 0 for No, 1 for Yes
}

// newContactsModel loads the address book into a table.
func newContactsModel() *contactsModel {
	m := &contactsModel{}
	all, err := db.GetAllContacts()
	if err != nil {
		m.err = err
		return m
	}
	m.all = all

	columns := []table.Column{
		{Title: i18n.T("contacts.header.name"), Width: 18},
		{Title: i18n.T("contacts.header.address"), Width: 44},
		{Title: i18n.T("contacts.header.network"), Width: 8},
		{Title: i18n.T("contacts.header.notes"), Width: 24},
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

// rebuildTableRows filters the master list and repopulates the table.
func (m *contactsModel) rebuildTableRows() {
	var rows []table.Row
	m.displayed = nil
	lowerFilter := strings.ToLower(m.filter)

	for _, c := range m.all {
		if m.filter != "" {
			match := strings.Contains(strings.ToLower(c.Name), lowerFilter) ||
				strings.Contains(strings.ToLower(c.Address), lowerFilter) ||
				strings.Contains(strings.ToLower(c.Network), lowerFilter) ||
				strings.Contains(strings.ToLower(c.Notes), lowerFilter)
			if !match {
				continue
			}
		}
		rows = append(rows, table.Row{c.Name, c.Address, c.Network, c.Notes})
		m.displayed = append(m.displayed, c)
	}
	m.table.SetRows(rows)

	if m.isFiltering {
		m.table.GotoTop()
	}
}

// reload re-reads the contact list, keeping the current filter.
func (m *contactsModel) reload() {
	all, err := db.GetAllContacts()
	if err != nil {
		m.err = err
		return
	}
	m.all = all
	m.rebuildTableRows()
}

// selectedContact returns the contact behind the selected table row.
func (m *contactsModel) selectedContact() (model.Contact, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.displayed) {
		return model.Contact{}, false
	}
	return m.displayed[idx], true
}

// openForm builds the add-contact inputs.
func (m *contactsModel) openForm() tea.Cmd {
	m.state = contactsFormState
	m.formErr = nil
	m.focusIndex = 0
	m.inputs = make([]textinput.Model, 3)

	var t textinput.Model
	for i := range m.inputs {
		t = textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 128
		t.Width = 46

		switch i {
		case 0:
			t.Prompt = i18n.T("contacts.prompt_name")
			t.Placeholder = "alice"
		case 1:
			t.Prompt = i18n.T("contacts.prompt_address")
			t.Placeholder = "0x…"
		case 2:
			t.Prompt = i18n.T("contacts.prompt_notes")
		}
		m.inputs[i] = t
	}
	m.inputs[0].Focus()
	m.inputs[0].TextStyle = focusedStyle
	return textinput.Blink
}

// submitForm validates and stores the new contact on the active network.
func (m *contactsModel) submitForm() tea.Cmd {
	name := strings.TrimSpace(m.inputs[0].Value())
	address := strings.TrimSpace(m.inputs[1].Value())
	notes := strings.TrimSpace(m.inputs[2].Value())

	svc := contacts.New(db.ActiveStore())
	contact, err := svc.Add(name, address, viper.GetString("network"), notes)
	if err != nil {
		m.formErr = err
		return nil
	}

	m.state = contactsListState
	m.status = i18n.T("contacts.added", contact.Name)
	m.reload()
	return nil
}

func (m *contactsModel) Init() tea.Cmd {
	return nil
}

func (m *contactsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch m.state {
	case contactsFormState:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = contactsListState
				m.formErr = nil
				return m, nil

			case "tab", "shift+tab", "enter", "up", "down":
				s := keyMsg.String()

				if s == "enter" && m.focusIndex == len(m.inputs) {
					return m, m.submitForm()
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

				focusCmds := make([]tea.Cmd, len(m.inputs))
				for i := 0; i <= len(m.inputs)-1; i++ {
					if i == m.focusIndex {
						focusCmds[i] = m.inputs[i].Focus()
						m.inputs[i].TextStyle = focusedStyle
						continue
					}
					m.inputs[i].Blur()
					m.inputs[i].TextStyle = lipgloss.NewStyle()
				}
				return m, tea.Batch(focusCmds...)
			}
		}
		inputCmds := make([]tea.Cmd, len(m.inputs))
		for i := range m.inputs {
			m.inputs[i], inputCmds[i] = m.inputs[i].Update(msg)
		}
		return m, tea.Batch(inputCmds...)

	case contactsConfirmDeleteState:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "left", "h", "right", "l", "tab":
				m.confirmCursor = 1 - m.confirmCursor
			case "esc", "n":
				m.state = contactsListState
			case "enter":
				m.state = contactsListState
				if m.confirmCursor == 1 {
					if err := db.DeleteContact(m.toDelete.ID); err != nil {
						m.err = err
						return m, nil
					}
					m.status = i18n.T("contacts.deleted", m.toDelete.Name)
					m.reload()
				}
			}
		}
		return m, nil
	}

	// contactsListState
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
		case "a":
			return m, m.openForm()
		case "c":
			if contact, ok := m.selectedContact(); ok {
				if err := clipboard.WriteAll(contact.Address); err == nil {
					m.status = i18n.T("contacts.copied", contact.Name)
				}
			}
			return m, nil
		case "d":
			if contact, ok := m.selectedContact(); ok {
				m.state = contactsConfirmDeleteState
				m.toDelete = contact
				m.confirmCursor = 0
				m.status = ""
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

func (m *contactsModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error loading contacts: %v", m.err))
	}

	title := titleStyle.Render("📇 " + i18n.T("contacts.title"))

	switch m.state {
	case contactsFormState:
		var viewItems []string
		viewItems = append(viewItems, titleStyle.Render("✨ "+i18n.T("contacts.add_title")), "")
		for i := range m.inputs {
			viewItems = append(viewItems, m.inputs[i].View())
		}
		button := itemStyle.Render("[ " + i18n.T("contacts.submit") + " ]")
		if m.focusIndex == len(m.inputs) {
			button = selectedItemStyle.Render("[ " + i18n.T("contacts.submit") + " ]")
		}
		viewItems = append(viewItems, "", button)
		if m.formErr != nil {
			viewItems = append(viewItems, "", errorStyle.Render(fmt.Sprintf("Error: %v", m.formErr)))
		}
		viewItems = append(viewItems, "", helpStyle.Render(i18n.T("contacts.form_help")))
		return lipgloss.JoinVertical(lipgloss.Left, viewItems...)

	case contactsConfirmDeleteState:
		question := i18n.T("contacts.confirm_delete", m.toDelete.Name)
		address := helpStyle.Render(m.toDelete.Address)
		noButton := activeButtonStyle.Render(i18n.T("button.no"))
		yesButton := buttonStyle.Render(i18n.T("button.yes"))
		if m.confirmCursor == 1 {
			noButton = buttonStyle.Render(i18n.T("button.no"))
			yesButton = activeButtonStyle.Render(i18n.T("button.yes"))
		}
		buttons := lipgloss.JoinHorizontal(lipgloss.Top, noButton, "  ", yesButton)
		dialog := dialogBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, question, address, buttons))
		return lipgloss.JoinVertical(lipgloss.Left, title, "", dialog)
	}

	var b strings.Builder
	b.WriteString(title + "\n\n")

	if len(m.table.Rows()) == 0 {
		b.WriteString(helpStyle.Render(i18n.T("contacts.empty")))
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

func (m *contactsModel) footerView() string {
	var filterStatus string
	if m.isFiltering {
		filterStatus = i18n.T("contacts.filtering", m.filter)
	} else if m.filter != "" {
		filterStatus = i18n.T("contacts.filter_active", m.filter)
	} else {
		filterStatus = i18n.T("contacts.filter_hint")
	}
	return helpStyle.Render(fmt.Sprintf("\n%s %s", i18n.T("contacts.help"), filterStatus))
}
