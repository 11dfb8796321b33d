// internal/httpserver/server.go
//
// Admin/ops HTTP surface for the game server.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Diagnostics: "/", "/health", "/debug/words".
//   - Live view: GET /status (round progress and slot usage).
//   - Archive: mounted under /rounds (see routes_rounds.go).
//
// Notes:
//   - Every route is read-only. The round is only ever changed by the game
//     endpoint.
//   - The master word of the live round is never exposed.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/words-without-friends/internal/game"
	"github.com/robalobadob/words-without-friends/internal/slots"
	"github.com/robalobadob/words-without-friends/internal/store"
)

// Server bundles the router and the components it reports on.
type Server struct {
	r      *chi.Mux
	engine *game.Engine
	pool   *slots.Pool
	store  store.Store
	http   *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(e *game.Engine, p *slots.Pool, st store.Store) *Server {
	s := &Server{r: chi.NewRouter(), engine: e, pool: p, store: st}
	s.http = &http.Server{Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"words-without-friends","endpoints":["/health","/status","/debug/words","/rounds"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleWords)
	s.r.Get("/status", s.handleStatus)

	s.mountRounds(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.http.Addr = addr
	log.Info().Str("addr", addr).Msg("admin server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops a server started with Start.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ handlers -----------------------------------

type wordsRes struct {
	Source   string `json:"source"`
	Words    int    `json:"words"`
	Eligible int    `json:"eligible"` // words long enough to be a master word
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	c := s.engine.Corpus()
	_ = json.NewEncoder(w).Encode(wordsRes{
		Source:   c.Source(),
		Words:    c.Len(),
		Eligible: c.CountLonger(s.engine.MinLength() - 1),
	})
}

type statusRes struct {
	Round      uint64       `json:"round"`
	Letters    string       `json:"letters"`
	Candidates int          `json:"candidates"`
	Found      int          `json:"found"`
	Complete   bool         `json:"complete"`
	StartedAt  time.Time    `json:"startedAt"`
	Slots      int          `json:"slots"`
	Busy       int          `json:"busy"`
	Workers    []slots.Info `json:"workers"`
}

// handleStatus reports the live round without revealing its master word.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.engine.Snapshot()
	_ = json.NewEncoder(w).Encode(statusRes{
		Round:      snap.Seq,
		Letters:    snap.Letters(),
		Candidates: len(snap.Candidates),
		Found:      snap.Found,
		Complete:   snap.Complete,
		StartedAt:  snap.StartedAt,
		Slots:      s.pool.Cap(),
		Busy:       s.pool.Busy(),
		Workers:    s.pool.Snapshot(),
	})
}

// writeError sends {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
