package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/idilsaglam/todoc/internal/api"
	"github.com/idilsaglam/todoc/internal/auth"
	"github.com/idilsaglam/todoc/internal/config"
	"github.com/idilsaglam/todoc/internal/logging"
	"github.com/idilsaglam/todoc/internal/model"
	"github.com/idilsaglam/todoc/internal/tui"
	"github.com/idilsaglam/todoc/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Description string // description for `add`
	Plain       bool   // `ls` prints once instead of opening the TUI
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		PrintHelp()
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}
	logging.Init(cfg.LogLevel)
	client := api.New(cfg.BaseURL, cfg.Timeout(), tokenSource)

	switch cmd {
	case "ls":
		if opt.Plain {
			return doPlainList(client)
		}
		return doList(client)

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: todoc add <title...>")
			return 2
		}
		return doAdd(client, strings.Join(a, " "), opt.Description)

	case "done":
		if len(a) != 1 {
			ui.Fail("usage: todoc done <id>")
			return 2
		}
		id, err := strconv.ParseInt(a[0], 10, 64)
		if err != nil {
			ui.Fail("done: not an id: " + a[0])
			return 2
		}
		return doToggle(client, id)

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: todoc rm <id>")
			return 2
		}
		id, err := strconv.ParseInt(a[0], 10, 64)
		if err != nil {
			ui.Fail("rm: not an id: " + a[0])
			return 2
		}
		return doRemove(client, id)

	case "auth":
		if len(a) == 0 {
			ui.Fail("usage: todoc auth <login|logout|status|whoami>")
			return 2
		}
		switch a[0] {
		case "login":
			return doAuthLogin(client, a[1:])
		case "logout":
			return doAuthLogout()
		case "status":
			return doAuthStatus()
		case "whoami":
			return doAuthWhoAmI()
		default:
			ui.Fail("usage: todoc auth <login|logout|status|whoami>")
			return 2
		}
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`todoc - a todo client for a remote list

Usage:
  todoc [flags] <subcommand> [args]

Subcommands:
  ls                 Browse the list (interactive TUI; -plain prints once)
  add <title...>     Create an item (title can be multiple words, -d adds a description)
  done <id>          Toggle completion for the item with that id
  rm <id>            Delete the item with that id
  auth <login|logout|status|whoami>   Token authentication

Examples:
  todoc -d "From the corner store" add "Buy milk"
  todoc ls
  todoc done 2
  todoc rm 3
  todoc auth login alice
`)
}

// tokenSource feeds the API client; the client itself never touches the
// credentials file.
func tokenSource() string {
	ti, err := auth.GetToken()
	if err != nil || ti == nil {
		return ""
	}
	return ti.Token
}

// ---------------------------------------------------
// Core subcommands (remote CRUD)
// ---------------------------------------------------

func doList(client *api.Client) int {
	authed := tokenSource() != ""
	if err := tui.Run(client, authed); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

// doPlainList prints the list once, for piping or a quick glance.
func doPlainList(client *api.Client) int {
	items, err := client.List(context.Background())
	if err != nil {
		ui.Fail("ls: " + err.Error())
		return 1
	}

	done := 0
	lines := []string{ui.TitleStyle.Render("Todos")}
	for _, it := range items {
		box, title := ui.BoxUnchecked, it.Title
		if it.IsCompleted {
			box, title = ui.BoxChecked, ui.DoneStyle.Render(it.Title)
			done++
		}
		lines = append(lines, fmt.Sprintf("%s #%d %s", box, it.ID, title))
	}
	if len(items) == 0 {
		lines = append(lines, ui.MutedStyle.Render("Nothing yet. Try `todoc add`"))
	}
	lines = append(lines, ui.MutedStyle.Render(ui.ProgressBar(done, len(items), 28)))
	ui.Panel(lines)
	return 0
}

func doAdd(client *api.Client, title, description string) int {
	title = strings.TrimSpace(title)
	if title == "" {
		ui.Fail("add: empty title")
		return 2
	}
	item, err := client.Create(context.Background(), title, description)
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 1
	}
	ui.Ok(fmt.Sprintf("added #%d", item.ID))
	return 0
}

// doToggle reads the current state first; the server's update is a partial
// patch, so the client has to supply the flipped flag itself.
func doToggle(client *api.Client, id int64) int {
	current, err := client.Get(context.Background(), id)
	if err != nil {
		if api.IsNotFound(err) {
			ui.Fail(fmt.Sprintf("done: no item with id %d", id))
			fmt.Fprintln(os.Stderr, ui.MutedStyle.Render("Hint: run `todoc ls` to see ids"))
			return 2
		}
		ui.Fail("done: " + err.Error())
		return 1
	}
	updated, err := client.Update(context.Background(), id, model.ToggleComplete{IsCompleted: !current.IsCompleted})
	if err != nil {
		ui.Fail("done: " + err.Error())
		return 1
	}
	if updated.IsCompleted {
		ui.Ok("completed")
	} else {
		ui.Ok("reopened")
	}
	return 0
}

func doRemove(client *api.Client, id int64) int {
	if err := client.Delete(context.Background(), id); err != nil {
		if api.IsNotFound(err) {
			ui.Fail(fmt.Sprintf("rm: no item with id %d", id))
			return 2
		}
		ui.Fail("rm: " + err.Error())
		return 1
	}
	ui.Ok("removed")
	return 0
}
