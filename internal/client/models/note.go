package models

import (
	"fmt"
	"strings"
)

// Note is a single note as served by the API. The client never persists it.
type Note struct {
	ID      string `json:"_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// String renders a one-line overview for list output.
func (n Note) String() string {
	return fmt.Sprintf("[%s] %s", n.ID, n.Title)
}

// NoteInput is the body of create and update requests.
type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Complete reports whether both title and content are non-blank.
func (in NoteInput) Complete() bool {
	return strings.TrimSpace(in.Title) != "" && strings.TrimSpace(in.Content) != ""
}
