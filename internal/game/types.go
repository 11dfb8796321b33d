// internal/game/types.go
//
// Core type definitions for the round engine.
// Defines:
//   - Candidate: a dictionary word spellable from the master word, plus its found flag.
//   - Snapshot:  a consistent, caller-owned copy of the current round.
//   - Summary:   per-round statistics handed to the archive on rollover.
//   - GuessResult: what ApplyGuess did with one submission.

package game

import (
	"sort"
	"strings"
	"time"
)

// CheatToken is the normalized guess that marks every candidate found.
const CheatToken = "110"

// Candidate is one word of the current round.
type Candidate struct {
	Word  string `json:"word"`  // uppercase
	Found bool   `json:"found"`
}

// Snapshot is a point-in-time copy of a round. The Master and Candidates
// always belong to the same round (Seq).
type Snapshot struct {
	Seq        uint64      `json:"seq"`
	Master     string      `json:"-"` // uppercase; never serialized
	Candidates []Candidate `json:"candidates"`
	Found      int         `json:"found"`
	Complete   bool        `json:"complete"`
	StartedAt  time.Time   `json:"startedAt"`
}

// Letters returns the master word's letters uppercased and sorted in
// descending order, e.g. "TSCA" (the clue shown to players).
func (s Snapshot) Letters() string {
	b := []byte(strings.ToUpper(s.Master))
	sort.Slice(b, func(i, j int) bool { return b[i] > b[j] })
	return string(b)
}

// Summary describes a finished (or replaced) round.
type Summary struct {
	Seq        uint64    `json:"seq"`
	Master     string    `json:"master"`
	Candidates int       `json:"candidates"`
	Found      int       `json:"found"`
	Guesses    int       `json:"guesses"`
	Matched    int       `json:"matched"`
	Cheated    bool      `json:"cheated"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// GuessResult reports the effect of ApplyGuess.
type GuessResult struct {
	Normalized string // trimmed, uppercased guess
	Seq        uint64 // round the guess was applied to
	Cheat      bool   // the cheat token was used
	Matched    bool   // a candidate equals the guess (found now or already)
	Newly      bool   // the match flipped a candidate from unfound to found
}

// round is the engine's private, lock-guarded state.
type round struct {
	seq        uint64
	master     string
	candidates []Candidate
	index      map[string]int // word -> position in candidates
	startedAt  time.Time
	guesses    int
	matched    int
	cheated    bool
}

// complete reports whether no candidate is left unfound. An empty set is
// vacuously complete.
func (r *round) complete() bool {
	for _, c := range r.candidates {
		if !c.Found {
			return false
		}
	}
	return true
}

func (r *round) found() int {
	n := 0
	for _, c := range r.candidates {
		if c.Found {
			n++
		}
	}
	return n
}

func (r *round) snapshot() Snapshot {
	cands := make([]Candidate, len(r.candidates))
	copy(cands, r.candidates)
	return Snapshot{
		Seq:        r.seq,
		Master:     r.master,
		Candidates: cands,
		Found:      r.found(),
		Complete:   r.complete(),
		StartedAt:  r.startedAt,
	}
}

func (r *round) summary(finished time.Time) Summary {
	return Summary{
		Seq:        r.seq,
		Master:     r.master,
		Candidates: len(r.candidates),
		Found:      r.found(),
		Guesses:    r.guesses,
		Matched:    r.matched,
		Cheated:    r.cheated,
		StartedAt:  r.startedAt,
		FinishedAt: finished,
	}
}
