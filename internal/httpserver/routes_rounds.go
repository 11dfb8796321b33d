// internal/httpserver/routes_rounds.go
//
// HTTP routes for the round archive.
// Exposes two endpoints under /rounds:
//   - GET /rounds        → most recent finished rounds (?limit=N, default 20, max 100)
//   - GET /rounds/{seq}  → one finished round by sequence number
//
// Only replaced rounds are archived, so the live round is never listed here.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/words-without-friends/internal/store"
)

const (
	defaultRoundsLimit = 20
	maxRoundsLimit     = 100
)

// mountRounds registers all /rounds routes.
func (s *Server) mountRounds(r chi.Router) {
	r.Route("/rounds", func(r chi.Router) {
		r.Get("/", s.handleRecentRounds)
		r.Get("/{seq}", s.handleRound)
	})
}

// handleRecentRounds lists archived rounds, newest first.
func (s *Server) handleRecentRounds(w http.ResponseWriter, r *http.Request) {
	limit := defaultRoundsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxRoundsLimit)
	}

	list, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list rounds")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(list)
}

// handleRound returns one archived round.
func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	seq, err := strconv.ParseUint(chi.URLParam(r, "seq"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_seq")
		return
	}
	sum, err := s.store.Get(r.Context(), seq)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Uint64("round", seq).Msg("get round")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(sum)
}
