package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var now = time.Unix(1_700_000_000, 0)

func clock() time.Time { return now }

func nopLog() logging.Logger { return logging.NewNopLogger() }

func mint(t *testing.T, exp time.Time, extra jwt.MapClaims) string {
	t.Helper()
	claims := jwt.MapClaims{"exp": exp.Unix()}
	for k, v := range extra {
		claims[k] = v
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

// fakeAPI implements client.Client and records what it was asked.
type fakeAPI struct {
	SendOTPErr   error
	VerifyToken  string
	VerifyErr    error
	ListRet      []models.Note
	ListErr      error
	CreateErr    error
	UpdateErr    error
	DeleteErr    error
	beforeReturn func()

	SendOTPCalls  int
	VerifyCalls   int
	ListCalls     int
	CreateCalls   int
	UpdateCalls   int
	DeleteCalls   int
	LastEmail     string
	LastOTP       string
	LastToken     string
	LastNoteID    string
	LastNoteInput models.NoteInput
}

func (f *fakeAPI) hook() {
	if f.beforeReturn != nil {
		f.beforeReturn()
	}
}

func (f *fakeAPI) SendOTP(_ context.Context, email string) error {
	f.SendOTPCalls++
	f.LastEmail = email
	f.hook()
	return f.SendOTPErr
}

func (f *fakeAPI) VerifyOTP(_ context.Context, email, otp string) (string, error) {
	f.VerifyCalls++
	f.LastEmail, f.LastOTP = email, otp
	f.hook()
	return f.VerifyToken, f.VerifyErr
}

func (f *fakeAPI) GoogleLoginURL() string { return "http://api.test/api/auth/google" }

func (f *fakeAPI) ListNotes(_ context.Context, token string) ([]models.Note, error) {
	f.ListCalls++
	f.LastToken = token
	return f.ListRet, f.ListErr
}

func (f *fakeAPI) CreateNote(_ context.Context, token string, in models.NoteInput) error {
	f.CreateCalls++
	f.LastToken, f.LastNoteInput = token, in
	return f.CreateErr
}

func (f *fakeAPI) UpdateNote(_ context.Context, token, id string, in models.NoteInput) error {
	f.UpdateCalls++
	f.LastToken, f.LastNoteID, f.LastNoteInput = token, id, in
	return f.UpdateErr
}

func (f *fakeAPI) DeleteNote(_ context.Context, token, id string) error {
	f.DeleteCalls++
	f.LastToken, f.LastNoteID = token, id
	return f.DeleteErr
}

// brokenStore fails every write.
type brokenStore struct{}

var errDisk = errors.New("disk full")

func (brokenStore) Get(context.Context) (string, error) { return "", errDisk }
func (brokenStore) Set(context.Context, string) error   { return errDisk }
func (brokenStore) Clear(context.Context) error         { return errDisk }
