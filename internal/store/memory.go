// internal/store/memory.go
//
// Round archive: summaries of rounds that have been replaced.
//
// Two implementations satisfy Store:
//   - memory (this file): bounded, RWMutex-guarded, lost on restart.
//   - sqlite (sqlite.go): append-only table in a local SQLite file.
//
// The archive is an audit trail only. The live round is never restored
// from it.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/words-without-friends/internal/game"
)

// ErrNotFound is returned by Get for an unknown round.
var ErrNotFound = errors.New("store: round not found")

// DefaultMemoryLimit is how many summaries the memory store keeps.
const DefaultMemoryLimit = 256

// Store defines the persistence interface for finished rounds.
type Store interface {
	// Save records a round summary. Saving the same Seq twice keeps the first.
	Save(ctx context.Context, s game.Summary) error

	// Recent returns up to limit summaries, newest first.
	Recent(ctx context.Context, limit int) ([]game.Summary, error)

	// Get retrieves one summary by round sequence number.
	Get(ctx context.Context, seq uint64) (game.Summary, error)

	// Close releases resources.
	Close() error
}

// memory is an in-memory ring of recent summaries.
type memory struct {
	mu     sync.RWMutex // guards rounds and bySeq
	limit  int
	rounds []game.Summary // oldest first
	bySeq  map[uint64]int // seq -> index into rounds
}

// NewMemoryStore constructs a Store keeping at most limit summaries
// (DefaultMemoryLimit when limit <= 0).
func NewMemoryStore(limit int) Store {
	if limit <= 0 {
		limit = DefaultMemoryLimit
	}
	return &memory{limit: limit, bySeq: make(map[uint64]int)}
}

func (m *memory) Save(ctx context.Context, s game.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.bySeq[s.Seq]; dup {
		return nil
	}
	m.rounds = append(m.rounds, s)
	if len(m.rounds) > m.limit {
		m.rounds = append([]game.Summary(nil), m.rounds[len(m.rounds)-m.limit:]...)
	}
	m.reindex()
	return nil
}

func (m *memory) reindex() {
	m.bySeq = make(map[uint64]int, len(m.rounds))
	for i, r := range m.rounds {
		m.bySeq[r.Seq] = i
	}
}

func (m *memory) Recent(ctx context.Context, limit int) ([]game.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.rounds) {
		limit = len(m.rounds)
	}
	out := make([]game.Summary, 0, limit)
	for i := len(m.rounds) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.rounds[i])
	}
	return out, nil
}

func (m *memory) Get(ctx context.Context, seq uint64) (game.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i, ok := m.bySeq[seq]; ok {
		return m.rounds[i], nil
	}
	return game.Summary{}, ErrNotFound
}

func (m *memory) Close() error { return nil }
