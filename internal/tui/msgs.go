package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todoc/internal/api"
	"github.com/idilsaglam/todoc/internal/auth"
	"github.com/idilsaglam/todoc/internal/model"
)

// itemsMsg is a completed list fetch. seq lets Update drop results that an
// earlier interaction started but a later one has already superseded.
type itemsMsg struct {
	seq   int
	items []model.Item
}

type fetchErrMsg struct {
	seq int
	err error
}

// mutatedMsg is a finished create/update/delete. A nil err triggers the
// unconditional re-fetch.
type mutatedMsg struct {
	err error
}

type loggedInMsg struct {
	err error
}

func fetchCmd(c *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		items, err := c.List(context.Background())
		if err != nil {
			return fetchErrMsg{seq: seq, err: err}
		}
		return itemsMsg{seq: seq, items: items}
	}
}

func createCmd(c *api.Client, title, description string) tea.Cmd {
	return func() tea.Msg {
		_, err := c.Create(context.Background(), title, description)
		return mutatedMsg{err: err}
	}
}

func toggleCmd(c *api.Client, id int64, completed bool) tea.Cmd {
	return func() tea.Msg {
		_, err := c.Update(context.Background(), id, model.ToggleComplete{IsCompleted: completed})
		return mutatedMsg{err: err}
	}
}

func saveCmd(c *api.Client, id int64, title, description string) tea.Cmd {
	return func() tea.Msg {
		_, err := c.Update(context.Background(), id, model.EditFields{Title: title, Description: description})
		return mutatedMsg{err: err}
	}
}

func deleteCmd(c *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{err: c.Delete(context.Background(), id)}
	}
}

func loginCmd(c *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		token, err := c.Login(context.Background(), username, password)
		if err != nil {
			return loggedInMsg{err: err}
		}
		return loggedInMsg{err: auth.SetToken(token)}
	}
}
