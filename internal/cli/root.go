package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	if a.userID != "" {
		return fmt.Sprintf("(%s)", a.userID)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to FlixVault CLI (type 'help' for commands)")

	for {
		fmt.Printf("fv %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "login":
			a.login(ctx, args)
		case "token":
			a.loginWithToken(ctx)
		case "logout":
			a.logout(ctx)
		case "add":
			a.add(ctx, args)
		case "remove", "rm":
			a.remove(ctx, args)
		case "move", "mv":
			a.move(ctx, args)
		case "list", "ls":
			a.list(args)
		case "cats":
			a.categories()
		case "mkcat":
			a.createCategory(ctx, args)
		case "rmcat":
			a.deleteCategory(ctx, args)
		case "status":
			a.status(args)
		case "count":
			fmt.Println(a.library.TotalItems())
		case "sort":
			a.sortPreference(ctx, args)
		case "purge":
			a.purge(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("unknown command: %s\n", cmd)
		}
	}
}

func (a *App) help() {
	if a.isLoggedIn() {
		fmt.Println("Available commands: add, remove, move, list, cats, mkcat, rmcat, status, count, sort, purge, logout, exit")
	} else {
		fmt.Println("Available commands: login <user>, token, exit")
	}
}
