// Package tui is the interactive list view. It owns the authoritative
// in-memory collection: fetched on start, replaced wholesale after every
// mutation.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todoc/internal/api"
	"github.com/idilsaglam/todoc/internal/model"
	"github.com/idilsaglam/todoc/internal/ui"
)

// listItem adapts a model.Item to bubbles/list.Item.
type listItem struct {
	item model.Item
}

func (i listItem) Title() string       { return i.item.Title }
func (i listItem) Description() string { return i.item.Description }
func (i listItem) FilterValue() string { return i.item.Title }

// itemDelegate renders one row: checkbox + title, then description and
// creation date on a second line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, _ := item.(listItem)
	it := li.item

	box := ui.MutedStyle.Render(ui.BoxUnchecked)
	title := it.Title
	desc := it.Description
	if it.IsCompleted {
		box = ui.SuccessStyle.Render(ui.BoxChecked)
		title = ui.DoneStyle.Render(title)
		if desc != "" {
			desc = ui.DoneStyle.Render(desc)
		}
	}

	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}

	meta := ui.MutedStyle.Render(it.CreatedAt.Local().Format("Jan 2 2006 15:04"))
	second := meta
	if desc != "" {
		second = desc + ui.MutedStyle.Render(" · ") + meta
	}

	fmt.Fprintf(w, "%s%s %s\n", prefix, box, title)
	fmt.Fprintln(w, "    "+second)
}

// Model is the Bubble Tea model for the whole client UI. It is either in
// the login gate (no token stored) or on the list; on the list, add and
// edit forms overlay it one at a time.
type Model struct {
	client *api.Client

	// auth gate
	authed     bool
	username   textinput.Model
	password   textinput.Model
	loginFocus int
	loginBusy  bool
	loginErr   string

	// list
	list     list.Model
	items    []model.Item
	fetchSeq int
	loading  bool
	spin     spinner.Model
	status   string

	// add/edit form
	adding    bool
	editing   bool
	editID    int64
	titleIn   textinput.Model
	descIn    textarea.Model
	descFocus bool
	formErr   string

	width, height int
	quitting      bool
}

// New builds the initial model. authed decides whether the login gate or
// the list shows first.
func New(client *api.Client, authed bool) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = headerTitle(nil)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.TitleStyle
	l.Styles.HelpStyle = ui.HelpStyle
	l.Styles.PaginationStyle = ui.HelpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	refreshBind := key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	extra := func() []key.Binding {
		return []key.Binding{addBind, editBind, toggleBind, delBind, refreshBind}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	m := Model{
		client: client,
		authed: authed,
		list:   l,
		width:  80,
		height: 24,
	}
	m.username = textinput.New()
	m.username.Prompt = "> "
	m.username.Placeholder = "Username"
	m.username.CharLimit = 100
	m.password = textinput.New()
	m.password.Prompt = "> "
	m.password.Placeholder = "Password"
	m.password.CharLimit = 100
	m.password.EchoMode = textinput.EchoPassword

	m.titleIn = textinput.New()
	m.titleIn.Prompt = "> "
	m.titleIn.Placeholder = "Title..."
	m.titleIn.CharLimit = 200

	m.descIn = textarea.New()
	m.descIn.Placeholder = "Description (optional)"
	m.descIn.SetHeight(3)
	m.descIn.CharLimit = 2000

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = ui.AccentStyle

	if authed {
		// the initial fetch is issued from Init with this seq
		m.fetchSeq = 1
		m.loading = true
	} else {
		m.username.Focus()
	}

	return m
}

func (m Model) Init() tea.Cmd {
	if !m.authed {
		return textinput.Blink
	}
	return tea.Batch(fetchCmd(m.client, m.fetchSeq), m.spin.Tick)
}

// Run starts the program in the alternate screen and blocks until quit.
func Run(client *api.Client, authed bool) error {
	p := tea.NewProgram(New(client, authed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func headerTitle(items []model.Item) string {
	done, pending := 0, 0
	for _, it := range items {
		if it.IsCompleted {
			done++
		} else {
			pending++
		}
	}
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		ui.TitleStyle.Render("Todos"),
		ui.SuccessStyle.Render("✔"), done,
		ui.PendingStyle.Render("•"), pending,
		ui.AccentStyle.Render("Total"), len(items),
	)
}

// draftTitle returns the trimmed form title; empty means the submit is
// silently blocked.
func (m *Model) draftTitle() string {
	return strings.TrimSpace(m.titleIn.Value())
}
