package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const (
	defaultDisplayName = "User"

	msgFieldsRequired = "Both title and content are required."
	msgLoadFailed     = "Failed to load notes"
	msgCreateFailed   = "Failed to create note"
	msgUpdateFailed   = "Failed to update note"
	msgDeleteFailed   = "Failed to delete note"
)

// Dashboard is the protected notes screen. The note list is held in memory
// for display only; every change goes through the API and is followed by a
// reload.
type Dashboard struct {
	api   client.NotesAPI
	store session.Store
	guard *session.Guard
	now   func() time.Time
	log   logging.Logger

	user  string
	notes []models.Note
}

func NewDashboard(api client.NotesAPI, store session.Store, now func() time.Time, log logging.Logger) *Dashboard {
	if now == nil {
		now = time.Now
	}
	return &Dashboard{
		api:   api,
		store: store,
		guard: session.NewGuard(store, now),
		now:   now,
		log:   log.With("component", "dashboard"),
	}
}

// Open runs the entry check and loads the notes.
//
// With no stored token the result is RouteLogin. A stored token that cannot
// be decoded or has expired is cleared first. A failed initial load keeps
// the user on the dashboard and is reported as a *UserError.
func (d *Dashboard) Open(ctx context.Context) (Route, error) {
	token, err := d.store.Get(ctx)
	if errors.Is(err, common.ErrNoToken) {
		return RouteLogin, nil
	}
	if err != nil {
		d.log.Error(ctx, "read session token", "error", err)
		return RouteLogin, nil
	}

	claims, err := session.Validate(token, d.now())
	if err != nil {
		d.log.Info(ctx, "stored token rejected", "error", err)
		if cerr := d.store.Clear(ctx); cerr != nil {
			d.log.Error(ctx, "clear session token", "error", cerr)
		}
		return RouteLogin, nil
	}

	d.user = claims.DisplayName()
	if d.user == "" {
		d.user = defaultDisplayName
	}

	if err := d.load(ctx, token); err != nil {
		return RouteDashboard, err
	}
	return RouteDashboard, nil
}

// User is the display name derived on Open.
func (d *Dashboard) User() string {
	if d.user == "" {
		return defaultDisplayName
	}
	return d.user
}

// Notes returns the last loaded list.
func (d *Dashboard) Notes() []models.Note {
	return d.notes
}

// Find looks a note up in the last loaded list.
func (d *Dashboard) Find(id string) (models.Note, bool) {
	for _, n := range d.notes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Note{}, false
}

// Refresh reloads the note list.
func (d *Dashboard) Refresh(ctx context.Context) error {
	token, err := d.token(ctx)
	if err != nil {
		return err
	}
	return d.load(ctx, token)
}

func (d *Dashboard) Create(ctx context.Context, in models.NoteInput) error {
	if !in.Complete() {
		return userError(msgFieldsRequired, nil)
	}
	token, err := d.token(ctx)
	if err != nil {
		return err
	}
	if err := d.api.CreateNote(ctx, token, in); err != nil {
		d.log.Warn(ctx, "create note failed", "error", err)
		return userError(messageOr(err, msgCreateFailed), err)
	}
	d.log.Debug(ctx, "note created", "title", in.Title)
	return d.load(ctx, token)
}

func (d *Dashboard) Update(ctx context.Context, id string, in models.NoteInput) error {
	if !in.Complete() {
		return userError(msgFieldsRequired, nil)
	}
	token, err := d.token(ctx)
	if err != nil {
		return err
	}
	if err := d.api.UpdateNote(ctx, token, id, in); err != nil {
		d.log.Warn(ctx, "update note failed", "id", id, "error", err)
		return userError(messageOr(err, msgUpdateFailed), err)
	}
	d.log.Debug(ctx, "note updated", "id", id)
	return d.load(ctx, token)
}

func (d *Dashboard) Delete(ctx context.Context, id string) error {
	token, err := d.token(ctx)
	if err != nil {
		return err
	}
	if err := d.api.DeleteNote(ctx, token, id); err != nil {
		d.log.Warn(ctx, "delete note failed", "id", id, "error", err)
		return userError(messageOr(err, msgDeleteFailed), err)
	}
	d.log.Debug(ctx, "note deleted", "id", id)
	return d.load(ctx, token)
}

// Logout clears the stored token.
func (d *Dashboard) Logout(ctx context.Context) (Route, error) {
	d.notes = nil
	d.user = ""
	if err := d.store.Clear(ctx); err != nil {
		return RouteDashboard, err
	}
	d.log.Info(ctx, "logged out")
	return RouteLogin, nil
}

// Identity describes the current session for display.
type Identity struct {
	Claims   *session.Claims
	StoredAt time.Time
}

type storedAter interface {
	StoredAt(ctx context.Context) (time.Time, error)
}

// WhoAmI returns the claims of the stored token and, when the store keeps
// it, the time the token was written.
func (d *Dashboard) WhoAmI(ctx context.Context) (Identity, error) {
	claims, ok := d.guard.Claims(ctx)
	if !ok {
		return Identity{}, ErrLoginRequired
	}
	id := Identity{Claims: claims}
	if s, ok := d.store.(storedAter); ok {
		at, err := s.StoredAt(ctx)
		if err == nil {
			id.StoredAt = at
		}
	}
	return id, nil
}

// token passes the guard and returns the stored token.
func (d *Dashboard) token(ctx context.Context) (string, error) {
	if !d.guard.Authorized(ctx) {
		return "", ErrLoginRequired
	}
	token, err := d.store.Get(ctx)
	if err != nil {
		return "", ErrLoginRequired
	}
	return token, nil
}

func (d *Dashboard) load(ctx context.Context, token string) error {
	notes, err := d.api.ListNotes(ctx, token)
	if err != nil {
		d.log.Warn(ctx, "list notes failed", "error", err)
		return userError(messageOr(err, msgLoadFailed), err)
	}
	d.notes = notes
	return nil
}
