package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/flixvault/flixvault/internal/models"
)

// Command handlers print their own errors; the REPL loop stays resilient.

func (a *App) login(ctx context.Context, args []string) {
	userID := ""
	if len(args) > 0 {
		userID = args[0]
	} else {
		var err error
		userID, err = GetSimpleText(a.reader, "User id", os.Stdout)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	if err := a.library.Login(opCtx, userID); err != nil {
		fmt.Printf("login failed: %v\n", err)
		return
	}
	a.userID = userID
	fmt.Printf("logged in as %s, %d items\n", userID, a.library.TotalItems())
}

func (a *App) loginWithToken(ctx context.Context) {
	token, err := GetSecret("Session token", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	if err := a.library.LoginWithToken(opCtx, token); err != nil {
		fmt.Printf("login failed: %v\n", err)
		return
	}
	a.userID = a.library.UserID()
	fmt.Printf("logged in, %d items\n", a.library.TotalItems())
}

func (a *App) logout(ctx context.Context) {
	a.library.Logout(ctx)
	a.userID = ""
}

func (a *App) add(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Println("usage: add <category> <movie|series> <id> [title...]")
		return
	}
	id, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		fmt.Printf("bad item id: %v\n", err)
		return
	}
	item := models.MediaItem{
		ID:    id,
		Kind:  models.MediaKind(args[1]),
		Title: strings.Join(args[3:], " "),
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	if err := a.library.Add(opCtx, args[0], item); err != nil {
		fmt.Printf("add failed: %v\n", err)
	}
}

func (a *App) remove(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: remove <category> <id>")
		return
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Printf("bad item id: %v\n", err)
		return
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	if err := a.library.Remove(opCtx, args[0], id); err != nil {
		fmt.Printf("remove failed: %v\n", err)
	}
}

func (a *App) move(ctx context.Context, args []string) {
	if len(args) != 3 {
		fmt.Println("usage: move <from> <to> <id>")
		return
	}
	id, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		fmt.Printf("bad item id: %v\n", err)
		return
	}
	item, ok := a.itemIn(args[0], id)
	if !ok {
		fmt.Println("item not in source category")
		return
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	if err := a.library.Move(opCtx, args[0], args[1], item); err != nil {
		fmt.Printf("move failed: %v\n", err)
	}
}

func (a *App) itemIn(categoryID string, id int64) (models.MediaItem, bool) {
	for _, item := range a.library.Items(categoryID) {
		if item.ID == id {
			return item, true
		}
	}
	return models.MediaItem{}, false
}

func (a *App) list(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: list <category>")
		return
	}
	for _, item := range a.library.Items(args[0]) {
		fmt.Printf("%8d  %-6s  %s\n", item.ID, item.Kind, item.Title)
	}
}

func (a *App) categories() {
	for _, cat := range a.library.Categories() {
		fmt.Printf("%-10s  %-24s  %s\n", cat.Origin, cat.ID, cat.Label)
	}
}

func (a *App) createCategory(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: mkcat <name> [color]")
		return
	}
	color := "#888888"
	if len(args) > 1 {
		color = args[1]
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	cat, err := a.library.CreateCategory(opCtx, args[0], color)
	if err != nil {
		fmt.Printf("create failed: %v\n", err)
		return
	}
	fmt.Printf("created %s\n", cat.ID)
}

func (a *App) deleteCategory(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: rmcat <id>")
		return
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	if err := a.library.DeleteCategory(opCtx, args[0]); err != nil {
		fmt.Printf("delete failed: %v\n", err)
	}
}

func (a *App) status(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: status <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Printf("bad item id: %v\n", err)
		return
	}
	if categoryID, ok := a.library.StatusOf(id); ok {
		fmt.Println(categoryID)
	} else {
		fmt.Println("(none)")
	}
}

func (a *App) sortPreference(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println(a.library.SortPreference())
		return
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	if err := a.library.SetSortPreference(opCtx, args[0]); err != nil {
		fmt.Printf("sort failed: %v\n", err)
	}
}

func (a *App) purge(ctx context.Context) {
	if a.userID == "" {
		fmt.Println("not logged in")
		return
	}
	confirm, err := GetSimpleText(a.reader, "Delete ALL stored data for this user? (yes/no)", os.Stdout)
	if err != nil || confirm != "yes" {
		return
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	if err := a.store.Purge(opCtx, a.userID); err != nil {
		fmt.Printf("purge failed: %v\n", err)
		return
	}
	a.library.Logout(ctx)
	a.userID = ""
}
