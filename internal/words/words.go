// internal/words/words.go
//
// Dictionary (word corpus) management for the round engine.
//
// Responsibilities:
//   - Load the dictionary from a file (one word per line) or fall back to the
//     embedded default list.
//   - Normalize entries: trim, lowercase, drop blanks, comments, non-alphabetic
//     entries and anything longer than MaxWordLen.
//   - Expose the ordered, immutable word list plus a few stats.
//
// A Corpus is never mutated after construction, so it is shared by every
// worker without locking.

package words

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxWordLen bounds dictionary entries; longer lines are skipped.
const MaxWordLen = 29

// ErrEmpty is returned when a source yields no usable words.
var ErrEmpty = errors.New("words: corpus is empty")

//go:embed default_words.txt
var embeddedWords string

// Corpus is an ordered, read-only dictionary.
type Corpus struct {
	words  []string
	source string
}

// Load reads the dictionary at path. An empty path selects the embedded
// default list.
func Load(path string) (*Corpus, error) {
	if path == "" {
		return Embedded()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c.source = path
	return c, nil
}

// Embedded returns the corpus compiled into the binary.
func Embedded() (*Corpus, error) {
	c, err := Read(strings.NewReader(embeddedWords))
	if err != nil {
		return nil, err
	}
	c.source = "embedded"
	return c, nil
}

// Read builds a corpus from r, one word per line.
func Read(r io.Reader) (*Corpus, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if w, ok := normalize(sc.Text()); ok {
			out = append(out, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return &Corpus{words: out, source: "reader"}, nil
}

// FromList builds a corpus from an in-memory list, applying the same
// normalization as file loading. Order is preserved.
func FromList(list []string) (*Corpus, error) {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if w, ok := normalize(s); ok {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return &Corpus{words: out, source: "list"}, nil
}

// Len is the number of words.
func (c *Corpus) Len() int { return len(c.words) }

// At returns the i-th word (lowercase).
func (c *Corpus) At(i int) string { return c.words[i] }

// Words exposes the underlying list. Callers must not modify it.
func (c *Corpus) Words() []string { return c.words }

// Source describes where the corpus came from (file path, "embedded", ...).
func (c *Corpus) Source() string { return c.source }

// CountLonger returns how many words are strictly longer than n letters.
func (c *Corpus) CountLonger(n int) int {
	cnt := 0
	for _, w := range c.words {
		if len(w) > n {
			cnt++
		}
	}
	return cnt
}

// normalize trims and lowercases a raw line and reports whether it is a
// usable dictionary word.
func normalize(line string) (string, bool) {
	w := strings.TrimSpace(strings.ToLower(line))
	if w == "" || strings.HasPrefix(w, "#") {
		return "", false
	}
	if len(w) > MaxWordLen || !isAlpha(w) {
		return "", false
	}
	return w, true
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
