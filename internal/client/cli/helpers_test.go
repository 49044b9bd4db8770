package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "")
}

func captureOutput(t *testing.T) *output {
	t.Helper()
	o := &output{}
	old := printlnFn
	printlnFn = func(a ...any) (int, error) {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.lines = append(o.lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = old })
	return o
}

var testNow = time.Unix(1_700_000_000, 0)

func mint(t *testing.T, exp time.Time, claims jwt.MapClaims) string {
	t.Helper()
	c := jwt.MapClaims{"exp": exp.Unix()}
	for k, v := range claims {
		c[k] = v
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

type fakeAPI struct {
	sendOTPErr  error
	verifyToken string
	verifyErr   error
	notes       []models.Note
	mutateErr   error

	sent    []string
	created []models.NoteInput
	updated map[string]models.NoteInput
	deleted []string
}

func (f *fakeAPI) SendOTP(_ context.Context, email string) error {
	f.sent = append(f.sent, email)
	return f.sendOTPErr
}

func (f *fakeAPI) VerifyOTP(context.Context, string, string) (string, error) {
	return f.verifyToken, f.verifyErr
}

func (f *fakeAPI) GoogleLoginURL() string { return "http://api.test/api/auth/google" }

func (f *fakeAPI) ListNotes(context.Context, string) ([]models.Note, error) {
	return f.notes, nil
}

func (f *fakeAPI) CreateNote(_ context.Context, _ string, in models.NoteInput) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.created = append(f.created, in)
	f.notes = append(f.notes, models.Note{ID: fmt.Sprint(len(f.notes) + 1), Title: in.Title, Content: in.Content})
	return nil
}

func (f *fakeAPI) UpdateNote(_ context.Context, _ string, id string, in models.NoteInput) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	if f.updated == nil {
		f.updated = map[string]models.NoteInput{}
	}
	f.updated[id] = in
	return nil
}

func (f *fakeAPI) DeleteNote(_ context.Context, _ string, id string) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func testApp(t *testing.T, api *fakeAPI, store session.Store, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var prompts bytes.Buffer
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.CallbackAddr = "127.0.0.1:0"

	a := newApp(cfg, api, store, logging.NewNopLogger(), rdr(input), &prompts)
	a.now = func() time.Time { return testNow }
	return a, &prompts
}
