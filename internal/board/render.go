// internal/board/render.go
//
// Renders a round snapshot into an HTML page. Rendering happens into a
// buffer, so a failure never leaves a half-written response.

package board

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/robalobadob/words-without-friends/assets"
	"github.com/robalobadob/words-without-friends/internal/game"
)

// Renderer holds the parsed page templates.
type Renderer struct {
	tmpl *template.Template
}

// View is the data behind one page.
type View struct {
	Letters    string
	Candidates []game.Candidate
	Complete   bool
	Another    string // link target on the completion page
}

// NewView builds a view from a snapshot.
func NewView(s game.Snapshot, another string) View {
	if another == "" {
		another = "/"
	}
	return View{
		Letters:    s.Letters(),
		Candidates: s.Candidates,
		Complete:   s.Complete,
		Another:    another,
	}
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	t, err := assets.Templates(template.FuncMap{"blanks": blanks})
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: t}, nil
}

// Render returns the complete page for v, or the board when the round is
// still in progress.
func (r *Renderer) Render(v View) ([]byte, error) {
	name := "board"
	if v.Complete {
		name = "complete"
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blanks hides a word as one "_ " per letter.
func blanks(word string) string {
	return strings.Repeat("_ ", len(word))
}
