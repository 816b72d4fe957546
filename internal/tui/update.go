package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todoc/internal/model"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.loginBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case itemsMsg:
		// drop anything an earlier interaction started
		if msg.seq < m.fetchSeq {
			return m, nil
		}
		m.loading = false
		m.items = msg.items
		m.status = ""
		li := make([]list.Item, 0, len(msg.items))
		for _, it := range msg.items {
			li = append(li, listItem{item: it})
		}
		m.list.SetItems(li)
		m.list.Title = headerTitle(msg.items)
		return m, nil

	case fetchErrMsg:
		if msg.seq < m.fetchSeq {
			return m, nil
		}
		m.loading = false
		m.status = msg.err.Error()
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		return m.refetch()

	case loggedInMsg:
		m.loginBusy = false
		if msg.err != nil {
			m.loginErr = msg.err.Error()
			return m, nil
		}
		m.authed = true
		m.loginErr = ""
		return m.refetch()
	}

	if !m.authed {
		return m.updateLogin(msg)
	}
	if m.adding || m.editing {
		return m.updateForm(msg)
	}
	return m.updateList(msg)
}

// refetch replaces the collection with a fresh server read. Every mutation
// funnels through here; there is no optimistic local update.
func (m Model) refetch() (tea.Model, tea.Cmd) {
	m.fetchSeq++
	m.loading = true
	return m, tea.Batch(fetchCmd(m.client, m.fetchSeq), m.spin.Tick)
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			m.loginFocus = 1 - m.loginFocus
			if m.loginFocus == 0 {
				m.password.Blur()
				return m, m.username.Focus()
			}
			m.username.Blur()
			return m, m.password.Focus()
		case "enter":
			if m.loginBusy {
				return m, nil
			}
			user := strings.TrimSpace(m.username.Value())
			pass := m.password.Value()
			if user == "" || pass == "" {
				m.loginErr = "Username and password are required"
				return m, nil
			}
			m.loginErr = ""
			m.loginBusy = true
			return m, loginCmd(m.client, user, pass)
		}
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			// cancel: discard the draft, no network call
			return m.closeForm(), nil
		case "tab":
			m.descFocus = !m.descFocus
			if m.descFocus {
				m.titleIn.Blur()
				return m, m.descIn.Focus()
			}
			m.descIn.Blur()
			return m, m.titleIn.Focus()
		case "ctrl+s":
			return m.submitForm()
		case "enter":
			// enter inserts a newline while the description has focus
			if !m.descFocus {
				return m.submitForm()
			}
		}
	}

	var cmd tea.Cmd
	if m.descFocus {
		m.descIn, cmd = m.descIn.Update(msg)
	} else {
		m.titleIn, cmd = m.titleIn.Update(msg)
	}
	return m, cmd
}

// submitForm validates the draft and issues the create or update. An empty
// trimmed title blocks the submit with an inline error and no network call.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	title := m.draftTitle()
	if title == "" {
		m.formErr = "Title cannot be empty"
		return m, nil
	}
	description := m.descIn.Value()

	var cmd tea.Cmd
	if m.editing {
		cmd = saveCmd(m.client, m.editID, title, description)
	} else {
		cmd = createCmd(m.client, title, description)
	}
	m = m.closeForm()
	return m, cmd
}

func (m Model) closeForm() Model {
	m.adding = false
	m.editing = false
	m.formErr = ""
	m.titleIn.SetValue("")
	m.descIn.SetValue("")
	m.titleIn.Blur()
	m.descIn.Blur()
	m.descFocus = false
	return m
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch key.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ":
			if it, ok := m.selectedItem(); ok {
				m.status = ""
				return m, toggleCmd(m.client, it.ID, !it.IsCompleted)
			}
			return m, nil

		case "d":
			// no confirmation step; a server error lands in the status line
			if it, ok := m.selectedItem(); ok {
				m.status = ""
				return m, deleteCmd(m.client, it.ID)
			}
			return m, nil

		case "a":
			m.adding = true
			m.formErr = ""
			m.titleIn.SetValue("")
			m.descIn.SetValue("")
			m.descFocus = false
			return m, m.titleIn.Focus()

		case "e":
			it, ok := m.selectedItem()
			if !ok {
				return m, nil
			}
			m.editing = true
			m.editID = it.ID
			m.formErr = ""
			m.titleIn.SetValue(it.Title)
			m.titleIn.CursorEnd()
			m.descIn.SetValue(it.Description)
			m.descFocus = false
			return m, m.titleIn.Focus()

		case "r":
			return m.refetch()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) selectedItem() (model.Item, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return li.item, true
}
