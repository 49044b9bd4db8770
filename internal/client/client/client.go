package client

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// AuthAPI covers the unauthenticated login endpoints.
type AuthAPI interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	GoogleLoginURL() string
}

// NotesAPI covers the bearer-authenticated notes endpoints.
type NotesAPI interface {
	ListNotes(ctx context.Context, token string) ([]models.Note, error)
	CreateNote(ctx context.Context, token string, in models.NoteInput) error
	UpdateNote(ctx context.Context, token, id string, in models.NoteInput) error
	DeleteNote(ctx context.Context, token, id string) error
}

// Client is the full REST surface of the notes backend.
type Client interface {
	AuthAPI
	NotesAPI
}
