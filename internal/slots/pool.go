// internal/slots/pool.go
//
// Fixed-capacity worker slot pool used for admission control.
//
// Characteristics:
//   - N slots created up front; each is free or busy with a task ID.
//   - TryAcquire never blocks: it scans for a free slot under the mutex and
//     flips it, or fails with ErrFull.
//   - A Handle releases its slot at most once, no matter how many times
//     Release is called.

package slots

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrFull is returned by TryAcquire when every slot is busy.
var ErrFull = errors.New("slots: pool is full")

// Pool is a fixed set of worker slots.
type Pool struct {
	mu    sync.Mutex // guards slots and busy
	slots []slot
	busy  int
}

type slot struct {
	busy  bool
	task  uuid.UUID
	since time.Time
}

// Info describes a busy slot.
type Info struct {
	Slot  int       `json:"slot"`
	Task  string    `json:"task"`
	Since time.Time `json:"since"`
}

// New creates a pool with n slots. n below 1 is treated as 1.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{slots: make([]slot, n)}
}

// TryAcquire claims the first free slot.
func (p *Pool) TryAcquire() (*Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.slots {
		if p.slots[i].busy {
			continue
		}
		task := uuid.New()
		p.slots[i] = slot{busy: true, task: task, since: time.Now()}
		p.busy++
		return &Handle{pool: p, index: i, task: task}, nil
	}
	return nil, ErrFull
}

// Cap is the number of slots.
func (p *Pool) Cap() int { return len(p.slots) }

// Busy is the number of slots currently held.
func (p *Pool) Busy() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

// Snapshot lists the busy slots in slot order.
func (p *Pool) Snapshot() []Info {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Info, 0, p.busy)
	for i, s := range p.slots {
		if s.busy {
			out = append(out, Info{Slot: i, Task: s.task.String(), Since: s.since})
		}
	}
	return out
}

func (p *Pool) release(i int, task uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// A stale handle must not free a slot that was handed to someone else.
	if !p.slots[i].busy || p.slots[i].task != task {
		return
	}
	p.slots[i] = slot{}
	p.busy--
}

// Handle is an acquired slot.
type Handle struct {
	pool  *Pool
	index int
	task  uuid.UUID
	once  sync.Once
}

// Slot is the slot index.
func (h *Handle) Slot() int { return h.index }

// Task is the identifier of the task occupying the slot.
func (h *Handle) Task() string { return h.task.String() }

// Release returns the slot to the pool. Extra calls are no-ops.
func (h *Handle) Release() {
	h.once.Do(func() { h.pool.release(h.index, h.task) })
}
