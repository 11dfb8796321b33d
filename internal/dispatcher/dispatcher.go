// internal/dispatcher/dispatcher.go
//
// Game endpoint: accept loop plus one worker per admitted connection.
// Responsibilities:
//   - Admission: claim a worker slot per connection or reply "server full"
//     from the accept loop itself, never spawning a worker for it.
//   - Rollover: after every accept, replace a completed round before the new
//     connection is served. Only this loop resets rounds.
//   - Archive: record the summary of each replaced round.
//
// Notes:
//   - Each worker owns its connection and releases its slot exactly once on
//     every exit path (deferred).
//   - Connections are half-closed and drained before Close (conn.go).
//   - Run returns when ctx is cancelled, after in-flight workers finish.

package dispatcher

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/words-without-friends/internal/board"
	"github.com/robalobadob/words-without-friends/internal/game"
	"github.com/robalobadob/words-without-friends/internal/slots"
	"github.com/robalobadob/words-without-friends/internal/static"
	"github.com/robalobadob/words-without-friends/internal/store"
	"github.com/robalobadob/words-without-friends/internal/wire"
)

const maxAcceptBackoff = time.Second

// Lookuper reports whether a request path names an existing static file.
type Lookuper interface {
	Lookup(path string) (bool, static.Info)
}

// Deps are the collaborators a Dispatcher drives.
type Deps struct {
	Engine   *game.Engine
	Pool     *slots.Pool
	Files    Lookuper
	Renderer *board.Renderer
	Archive  store.Store // optional
}

// Timeouts bound connection I/O. Zero values pick the defaults.
type Timeouts struct {
	Read      time.Duration // default 10s
	Write     time.Duration // default 10s
	FullWrite time.Duration // default 1s
	Drain     time.Duration // default 1s; unread input discarded before close
}

func (t Timeouts) withDefaults() Timeouts {
	if t.Read <= 0 {
		t.Read = 10 * time.Second
	}
	if t.Write <= 0 {
		t.Write = 10 * time.Second
	}
	if t.FullWrite <= 0 {
		t.FullWrite = time.Second
	}
	if t.Drain <= 0 {
		t.Drain = time.Second
	}
	return t
}

// Dispatcher serves the game on one listener.
type Dispatcher struct {
	ln       net.Listener
	engine   *game.Engine
	pool     *slots.Pool
	files    Lookuper
	renderer *board.Renderer
	archive  store.Store
	timeouts Timeouts

	wg      sync.WaitGroup
	another atomic.Pointer[string] // first static path served, used by the completion page
}

// New wires a Dispatcher. It does not start accepting.
func New(ln net.Listener, deps Deps, t Timeouts) *Dispatcher {
	return &Dispatcher{
		ln:       ln,
		engine:   deps.Engine,
		pool:     deps.Pool,
		files:    deps.Files,
		renderer: deps.Renderer,
		archive:  deps.Archive,
		timeouts: t.withDefaults(),
	}
}

// Addr is the listening address.
func (d *Dispatcher) Addr() net.Addr { return d.ln.Addr() }

// Run accepts connections until ctx is cancelled. It only returns an error
// when a round cannot be replaced (see game.ErrCorpusExhausted).
func (d *Dispatcher) Run(ctx context.Context) error {
	defer d.wg.Wait()
	defer d.ln.Close()
	stop := context.AfterFunc(ctx, func() { _ = d.ln.Close() })
	defer stop()

	log.Info().Str("addr", d.ln.Addr().String()).Int("slots", d.pool.Cap()).Msg("accepting connections")

	var backoff time.Duration
	for {
		conn, err := d.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				log.Info().Msg("listener closed, waiting for workers")
				return nil
			}
			backoff = nextBackoff(backoff)
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("accept failed")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			continue
		}
		backoff = 0

		if err := d.rollover(ctx); err != nil {
			_ = conn.Close()
			return err
		}
		d.admit(conn)
	}
}

func nextBackoff(cur time.Duration) time.Duration {
	if cur == 0 {
		return 5 * time.Millisecond
	}
	if cur *= 2; cur > maxAcceptBackoff {
		cur = maxAcceptBackoff
	}
	return cur
}

// rollover replaces a completed round and archives the old one.
func (d *Dispatcher) rollover(ctx context.Context) error {
	prev, reset, err := d.engine.ResetIfComplete()
	if err != nil {
		log.Error().Err(err).Msg("round rollover failed")
		return err
	}
	if !reset {
		return nil
	}
	log.Info().
		Uint64("round", prev.Seq).
		Int("candidates", prev.Candidates).
		Int("guesses", prev.Guesses).
		Bool("cheated", prev.Cheated).
		Msg("round complete")
	if d.archive != nil {
		if err := d.archive.Save(ctx, prev); err != nil {
			log.Warn().Err(err).Uint64("round", prev.Seq).Msg("archive round")
		}
	}
	return nil
}

// admit hands conn to a worker, or turns it away when no slot is free.
func (d *Dispatcher) admit(conn net.Conn) {
	h, err := d.pool.TryAcquire()
	if err != nil {
		log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("server full, rejecting")
		_ = conn.SetWriteDeadline(time.Now().Add(d.timeouts.FullWrite))
		if err := wire.Full(conn); err != nil {
			log.Debug().Err(err).Msg("write full response")
		}
		// Draining may take up to FullWrite; keep it off the accept loop.
		// It never touches the round or a slot.
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			closeDrained(conn, d.timeouts.FullWrite)
		}()
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer h.Release()
		defer closeDrained(conn, d.timeouts.Drain)
		d.serve(conn, h)
	}()
}
