// internal/game/select.go
//
// Master-word selection and candidate derivation. Both functions only read
// the (immutable) corpus and run without holding the engine lock.

package game

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"github.com/robalobadob/words-without-friends/internal/letters"
	"github.com/robalobadob/words-without-friends/internal/words"
)

var (
	// ErrCorpusExhausted means no word of the required length was found
	// within the configured number of attempts. It is a startup/config error.
	ErrCorpusExhausted = errors.New("game: no master-eligible word in corpus")

	// ErrEmptyCorpus is returned when the engine is built without words.
	ErrEmptyCorpus = errors.New("game: corpus is empty")
)

// Picker returns a uniformly random index in [0, n).
type Picker func(n int) (int, error)

// CryptoPicker draws indexes from crypto/rand.
func CryptoPicker(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// SelectMasterWord draws a random starting index and scans forward to the
// end of the corpus for a word with at least minLen letters. Each pass that
// reaches the end without a hit counts as one attempt; after attempts
// passes ErrCorpusExhausted is returned.
func SelectMasterWord(c *words.Corpus, minLen, attempts int, pick Picker) (string, error) {
	if c == nil || c.Len() == 0 {
		return "", ErrEmptyCorpus
	}
	n := c.Len()
	for attempt := 0; attempt < attempts; attempt++ {
		start, err := pick(n)
		if err != nil {
			return "", err
		}
		if start < 0 || start >= n {
			start = 0
		}
		for i := start; i < n; i++ {
			if w := c.At(i); len(w) >= minLen {
				return w, nil
			}
		}
	}
	return "", ErrCorpusExhausted
}

// DeriveCandidates returns every corpus word spellable from master's
// letters, uppercased, in corpus order, without duplicates. master itself
// is always included.
func DeriveCandidates(master string, c *words.Corpus) []Candidate {
	mp := letters.Of(master)
	seen := make(map[string]struct{})
	var out []Candidate
	add := func(w string) {
		u := strings.ToUpper(w)
		if _, dup := seen[u]; dup {
			return
		}
		seen[u] = struct{}{}
		out = append(out, Candidate{Word: u})
	}
	if c != nil {
		for _, w := range c.Words() {
			if letters.Of(w).SubsetOf(mp) {
				add(w)
			}
		}
	}
	// A forced master word might not be in the corpus; it still belongs to
	// its own round.
	if master != "" {
		add(master)
	}
	return out
}
