// assets/embed.go
//
// HTML templates compiled into the binary: the in-progress board and the
// round-complete page.

package assets

import (
	"embed"
	"html/template"
)

//go:embed board.html complete.html
var FS embed.FS

// Templates parses every embedded page with the given helper funcs.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("pages").Funcs(funcs).ParseFS(FS, "board.html", "complete.html")
}
