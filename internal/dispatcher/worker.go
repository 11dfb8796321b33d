// internal/dispatcher/worker.go
//
// Per-connection worker: read one request line, apply a guess if there is
// one, and answer with exactly one response.

package dispatcher

import (
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/words-without-friends/internal/board"
	"github.com/robalobadob/words-without-friends/internal/slots"
	"github.com/robalobadob/words-without-friends/internal/wire"
)

// serve handles a single admitted connection. The caller drains and closes
// conn and releases the slot.
func (d *Dispatcher) serve(conn net.Conn, h *slots.Handle) {
	logger := connLogger(conn, h)

	_ = conn.SetReadDeadline(time.Now().Add(d.timeouts.Read))
	req, err := wire.ReadRequest(conn)
	_ = conn.SetWriteDeadline(time.Now().Add(d.timeouts.Write))
	switch {
	case err == nil:
	case errors.Is(err, wire.ErrBadRequest), errors.Is(err, wire.ErrMethodNotAllowed):
		logger.Info().Err(err).Msg("bad request")
		logWrite(logger, wire.BadRequest(conn))
		return
	case errors.Is(err, wire.ErrNoRequest):
		logger.Debug().Msg("peer closed without a request")
		return
	default:
		// Timed out or reset; nothing to answer.
		logger.Debug().Err(err).Msg("read request")
		return
	}
	logger = logger.With().Str("kind", req.Kind.String()).Str("path", req.Path).Logger()

	found := false
	switch req.Kind {
	case wire.KindGuess:
		if req.HasMove() {
			res := d.engine.ApplyGuess(req.Move)
			logger.Debug().
				Str("guess", res.Normalized).
				Uint64("round", res.Seq).
				Bool("matched", res.Matched).
				Bool("cheat", res.Cheat).
				Msg("guess applied")
		}
	case wire.KindFetch:
		found, _ = d.files.Lookup(req.Path)
		if found {
			p := "/" + req.Path
			d.another.CompareAndSwap(nil, &p)
		}
	}

	snap := d.engine.Snapshot()
	if req.Kind == wire.KindFetch && !found && !snap.Complete {
		logger.Info().Msg("not found")
		logWrite(logger, wire.NotFound(conn))
		return
	}

	body, err := d.renderer.Render(board.NewView(snap, d.anotherPath()))
	if err != nil {
		logger.Warn().Err(err).Msg("render failed, closing without response")
		return
	}
	logWrite(logger, wire.OK(conn, body))
}

func (d *Dispatcher) anotherPath() string {
	if p := d.another.Load(); p != nil {
		return *p
	}
	return "/"
}

// logWrite notes a failed write; the peer may have closed already.
func logWrite(logger zerolog.Logger, err error) {
	if err != nil {
		logger.Debug().Err(err).Msg("write response")
	}
}

func connLogger(conn net.Conn, h *slots.Handle) zerolog.Logger {
	return log.With().
		Str("remote", conn.RemoteAddr().String()).
		Int("slot", h.Slot()).
		Str("task", h.Task()).
		Logger()
}
