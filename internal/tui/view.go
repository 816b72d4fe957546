package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todoc/internal/ui"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.authed {
		return m.loginView()
	}

	listHeight := m.height - 6
	if m.adding || m.editing {
		listHeight = m.height - 12
	}
	if listHeight < 4 {
		listHeight = 4
	}
	m.list.SetSize(m.width-4, listHeight)

	content := m.list.View()

	if m.adding || m.editing {
		title := "Add new item"
		if m.editing {
			title = "Edit item"
		}
		if m.formErr != "" {
			title += "  " + ui.ErrorStyle.Render(m.formErr)
		}
		form := title + "\n" +
			m.titleIn.View() + "\n" +
			m.descIn.View() + "\n" +
			ui.HelpStyle.Render("enter save · tab description · esc cancel")
		content += "\n" + formBar.Render(form)
	}

	content += "\n" + m.statusLine()
	return ui.PanelString(content)
}

func (m Model) statusLine() string {
	switch {
	case m.status != "":
		return ui.ErrorStyle.Render("✖ " + m.status)
	case m.loading:
		return m.spin.View() + ui.MutedStyle.Render("syncing...")
	default:
		done := 0
		for _, it := range m.items {
			if it.IsCompleted {
				done++
			}
		}
		return ui.MutedStyle.Render(ui.ProgressBar(done, len(m.items), 28))
	}
}

func (m Model) loginView() string {
	header := ui.TitleStyle.Render("Sign in")
	body := header + "\n\n" +
		"Username\n" + m.username.View() + "\n" +
		"Password\n" + m.password.View() + "\n"
	switch {
	case m.loginBusy:
		body += "\n" + ui.MutedStyle.Render("signing in...")
	case m.loginErr != "":
		body += "\n" + ui.ErrorStyle.Render("✖ "+m.loginErr)
	default:
		body += "\n" + ui.HelpStyle.Render("enter sign in · tab switch field · esc quit")
	}

	box := formBar.Width(44).Render(body)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

var formBar = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("8")).
	Padding(0, 1)
