// internal/static/lookup.go
//
// Static-file lookup rooted at a configured directory. The game endpoint
// only needs to know whether a requested path names an existing regular
// file; it never streams file contents.

package static

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Info is the metadata returned for an existing file.
type Info struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Dir looks files up beneath Root.
type Dir struct {
	Root string
}

// New returns a Dir rooted at root. The root must be an existing directory.
func New(root string) (*Dir, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: root, Err: errors.New("not a directory")}
	}
	return &Dir{Root: root}, nil
}

// Lookup reports whether p names a regular file under the root. Paths that
// would escape the root are treated as missing.
func (d *Dir) Lookup(p string) (bool, Info) {
	clean := path.Clean("/" + strings.TrimPrefix(p, "/"))
	if clean == "/" {
		return false, Info{}
	}
	full := filepath.Join(d.Root, filepath.FromSlash(clean))
	st, err := os.Stat(full)
	if err != nil || !st.Mode().IsRegular() {
		return false, Info{}
	}
	return true, Info{Name: st.Name(), Size: st.Size(), ModTime: st.ModTime()}
}
