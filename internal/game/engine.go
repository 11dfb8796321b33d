// internal/game/engine.go
//
// Round engine shared by the dispatcher and every worker.
// Responsibilities:
//   - Pick a master word and derive its candidate set.
//   - Apply guesses (including the cheat token) to the current round.
//   - Report completion and roll the round over.
//
// Concurrency:
//   - All round state lives behind one RWMutex. Reads copy a Snapshot under
//     RLock; guesses and resets take the write lock.
//   - A new round is computed outside the lock and published with a single
//     pointer swap, so no caller ever sees a master word from one round with
//     candidates from another.
//   - The lock is never held across I/O.

package game

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/words-without-friends/internal/words"
)

const (
	defaultMinLength   = 7
	defaultMaxAttempts = 10
)

// Options tunes master-word selection. Zero values pick the defaults.
type Options struct {
	MinLength   int    // master words need at least this many letters (default 7)
	MaxAttempts int    // selection passes before ErrCorpusExhausted (default 10)
	Pick        Picker // random index source (default CryptoPicker)
	Now         func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MinLength <= 0 {
		o.MinLength = defaultMinLength
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultMaxAttempts
	}
	if o.Pick == nil {
		o.Pick = CryptoPicker
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Engine owns the current round.
type Engine struct {
	corpus *words.Corpus
	opts   Options

	mu  sync.RWMutex // guards cur and seq
	cur *round
	seq uint64
}

// New builds an engine and starts its first round. A corpus without any
// master-eligible word yields ErrCorpusExhausted.
func New(c *words.Corpus, opts Options) (*Engine, error) {
	if c == nil || c.Len() == 0 {
		return nil, ErrEmptyCorpus
	}
	e := &Engine{corpus: c, opts: opts.withDefaults()}
	if _, err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Corpus returns the dictionary the engine draws from.
func (e *Engine) Corpus() *words.Corpus { return e.corpus }

// MinLength is the effective master-word length floor.
func (e *Engine) MinLength() int { return e.opts.MinLength }

// NormalizeGuess strips trailing line endings and surrounding blanks and
// uppercases the rest.
func NormalizeGuess(raw string) string {
	return strings.ToUpper(strings.TrimSpace(strings.TrimRight(raw, "\r\n")))
}

// ApplyGuess normalizes raw and applies it to the current round. The cheat
// token marks every candidate found; any other value marks the candidate
// with the same text, if there is one. Unmatched guesses have no effect.
func (e *Engine) ApplyGuess(raw string) GuessResult {
	g := NormalizeGuess(raw)

	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.cur
	res := GuessResult{Normalized: g, Seq: r.seq}
	r.guesses++

	if g == CheatToken {
		for i := range r.candidates {
			r.candidates[i].Found = true
		}
		r.cheated = true
		res.Cheat = true
		return res
	}

	if i, ok := r.index[g]; ok {
		res.Matched = true
		res.Newly = !r.candidates[i].Found
		r.candidates[i].Found = true
		r.matched++
	}
	return res
}

// IsComplete reports whether every candidate of the current round is found.
func (e *Engine) IsComplete() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cur.complete()
}

// Snapshot copies the current round.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cur.snapshot()
}

// Reset unconditionally replaces the current round with a freshly selected
// one. It returns the summary of the replaced round (zero on first call).
func (e *Engine) Reset() (Summary, error) {
	master, err := SelectMasterWord(e.corpus, e.opts.MinLength, e.opts.MaxAttempts, e.opts.Pick)
	if err != nil {
		return Summary{}, err
	}
	return e.publish(e.build(master)), nil
}

// ResetIfComplete rolls the round over only if it is complete, checking and
// swapping atomically. It reports whether a reset happened.
func (e *Engine) ResetIfComplete() (Summary, bool, error) {
	e.mu.RLock()
	done, seq := e.cur.complete(), e.cur.seq
	e.mu.RUnlock()
	if !done {
		return Summary{}, false, nil
	}

	master, err := SelectMasterWord(e.corpus, e.opts.MinLength, e.opts.MaxAttempts, e.opts.Pick)
	if err != nil {
		return Summary{}, false, err
	}
	next := e.build(master)

	e.mu.Lock()
	// Someone else rolled over while we were computing.
	if e.cur.seq != seq {
		e.mu.Unlock()
		return Summary{}, false, nil
	}
	prev := e.swapLocked(next)
	e.mu.Unlock()

	logStarted(next)
	return prev, true, nil
}

// StartWith replaces the current round with one built on master, skipping
// random selection and the length floor. It is meant for tests and tooling.
func (e *Engine) StartWith(master string) Summary {
	return e.publish(e.build(strings.ToLower(master)))
}

// build computes a round for master. It only reads the corpus.
func (e *Engine) build(master string) *round {
	cands := DeriveCandidates(master, e.corpus)
	idx := make(map[string]int, len(cands))
	for i, c := range cands {
		idx[c.Word] = i
	}
	return &round{
		master:     strings.ToUpper(master),
		candidates: cands,
		index:      idx,
		startedAt:  e.opts.Now(),
	}
}

func (e *Engine) publish(next *round) Summary {
	e.mu.Lock()
	prev := e.swapLocked(next)
	e.mu.Unlock()

	logStarted(next)
	return prev
}

// swapLocked assigns the next sequence number and installs next. Caller
// holds e.mu.
func (e *Engine) swapLocked(next *round) Summary {
	var prev Summary
	if e.cur != nil {
		prev = e.cur.summary(e.opts.Now())
	}
	e.seq++
	next.seq = e.seq
	e.cur = next
	return prev
}

// logStarted runs after the swap; seq and candidates are immutable by then.
func logStarted(r *round) {
	log.Debug().Uint64("round", r.seq).Int("candidates", len(r.candidates)).Msg("round started")
}
