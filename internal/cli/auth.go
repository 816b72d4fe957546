package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/idilsaglam/todoc/internal/api"
	"github.com/idilsaglam/todoc/internal/auth"
	"github.com/idilsaglam/todoc/internal/ui"
)

// ---------------------------------------------------
// Auth subcommands (use functions from internal/auth)
// ---------------------------------------------------

// doAuthLogin signs in against the server when a username is given;
// with no args it accepts a pasted token instead.
func doAuthLogin(client *api.Client, args []string) int {
	if len(args) > 0 {
		username := args[0]
		fmt.Printf("Password for %s: ", username)
		var password string
		if _, err := fmt.Scanln(&password); err != nil {
			ui.Fail("read password: " + err.Error())
			return 1
		}
		token, err := client.Login(context.Background(), username, password)
		if err != nil {
			ui.Fail("login: " + err.Error())
			return 1
		}
		if err := auth.SetToken(token); err != nil {
			ui.Fail("save token: " + err.Error())
			return 1
		}
		ui.Ok("logged in as " + username)
		return 0
	}

	fmt.Print("Paste your token: ")
	var token string
	if _, err := fmt.Scanln(&token); err != nil {
		ui.Fail("read token: " + err.Error())
		return 1
	}
	if err := auth.SetToken(token); err != nil {
		ui.Fail("save token: " + err.Error())
		return 1
	}
	ui.Ok("logged in")
	return 0
}

func doAuthLogout() int {
	ti, _ := auth.GetToken()
	if ti != nil && ti.Source == "env" {
		ui.Ok("token is provided by " + auth.EnvToken + " env var (nothing to delete)")
		return 0
	}
	if err := auth.DeleteToken(); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.Ok("logged out")
	return 0
}

func doAuthStatus() int {
	ti, _ := auth.GetToken()
	if ti == nil {
		fmt.Println(ui.MutedStyle.Render("not logged in"))
		fmt.Println("Run: todoc auth login")
		return 0
	}
	fmt.Printf("source: %s\n", ti.Source)
	if ti.ExpiresAt != nil {
		fmt.Printf("expires: %s\n", ti.ExpiresAt.UTC().Format(time.RFC3339))
	} else {
		fmt.Println("expires: (unknown)")
	}
	fmt.Println("env override: " + auth.EnvToken)
	return 0
}

// doAuthWhoAmI introspects the stored JWT locally without verifying it;
// opaque tokens print basic info.
func doAuthWhoAmI() int {
	ti, _ := auth.GetToken()
	if ti == nil {
		ui.Fail("not logged in. Run: todoc auth login")
		return 2
	}
	claims, err := auth.Claims(ti.Token)
	if err != nil {
		fmt.Println("Opaque token (cannot introspect locally).")
		fmt.Println("source:", ti.Source)
		return 0
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		fmt.Println("subject:", sub)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		fmt.Println("expires:", exp.UTC().Format(time.RFC3339))
	}
	var rest []string
	for k := range claims {
		if k != "sub" && k != "exp" {
			rest = append(rest, k)
		}
	}
	if len(rest) > 0 {
		fmt.Println("other claims:", strings.Join(rest, ", "))
	}
	return 0
}
