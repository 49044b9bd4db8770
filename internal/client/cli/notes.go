package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
)

func (a *App) printNotes() {
	notes := a.dashboard.Notes()
	if len(notes) == 0 {
		printlnFn("No notes yet. Create one with 'add'.")
		return
	}
	for _, n := range notes {
		printlnFn(n.String())
		if n.Content != "" {
			printlnFn("    " + n.Content)
		}
	}
}

// List shows the notes fetched by the last load.
func (a *App) List(ctx context.Context) error {
	if !a.guard.Authorized(ctx) {
		return a.report(ctx, services.ErrLoginRequired)
	}
	a.printNotes()
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.dashboard.Refresh(ctx); err != nil {
		return a.report(ctx, err)
	}
	a.printNotes()
	return nil
}

func (a *App) Add(ctx context.Context) error {
	if !a.guard.Authorized(ctx) {
		return a.report(ctx, services.ErrLoginRequired)
	}
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	if err := a.dashboard.Create(ctx, models.NoteInput{Title: title, Content: content}); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Note created.")
	a.printNotes()
	return nil
}

// Edit updates a note. Empty answers keep the current title or content.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: edit <id>")
		return nil
	}
	if !a.guard.Authorized(ctx) {
		return a.report(ctx, services.ErrLoginRequired)
	}
	id := args[0]
	current, _ := a.dashboard.Find(id)

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", current.Title), a.out)
	if err != nil {
		return err
	}
	if title == "" {
		title = current.Title
	}
	content, err := getMultiline(a.reader, "Content (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = current.Content
	}

	if err := a.dashboard.Update(ctx, id, models.NoteInput{Title: title, Content: content}); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Note updated.")
	a.printNotes()
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: delete <id>")
		return nil
	}
	if err := a.dashboard.Delete(ctx, args[0]); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Note deleted.")
	return nil
}

// WhoAmI prints the stored session's identity and lifetime.
func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.dashboard.WhoAmI(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	c := id.Claims
	printlnFn("Name:   ", c.DisplayName())
	printlnFn("Email:  ", c.Email)
	printlnFn("Expires:", c.Expiry().Local().Format(time.RFC1123), fmt.Sprintf("(in %s)", c.Expiry().Sub(a.now()).Round(time.Second)))
	if !id.StoredAt.IsZero() {
		printlnFn("Stored: ", id.StoredAt.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	route, err := a.dashboard.Logout(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Logged out.")
	a.navigate(ctx, route)
	return nil
}
