// Package progress carries transfer state from a background worker to a
// polling consumer. State is only ever read or written as a whole snapshot.
package progress

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// ErrTransferRunning is returned when a transfer is started while another
// one on the same tracker has not finished.
var ErrTransferRunning = errors.New("a transfer is already running")

// Outcome is the terminal result of a transfer. Err is empty on success.
type Outcome struct {
	Path string `json:"path,omitempty"`
	Err  string `json:"error,omitempty"`
}

func (o Outcome) Succeeded() bool {
	return o.Err == ""
}

type Snapshot struct {
	ID          string   `json:"id"`
	Completed   int      `json:"completed"`
	Total       int      `json:"total"`
	CurrentItem string   `json:"current_item"`
	Running     bool     `json:"running"`
	Outcome     *Outcome `json:"outcome,omitempty"`
}

// Fraction is Completed/Total in [0, 1], or 0 before a total is known.
func (s Snapshot) Fraction() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// Tracker is the shared progress state of at most one transfer at a time.
type Tracker struct {
	mu    sync.Mutex
	state Snapshot

	// OnUpdate, when set, is called after every mutation as a repaint hint.
	// It runs on the mutating goroutine and must not block.
	OnUpdate func()

	logger *slog.Logger
}

func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{logger: logger}
}

// Begin resets the tracker for a new transfer and marks it running.
func (t *Tracker) Begin() (string, error) {
	t.mu.Lock()
	if t.state.Running {
		t.mu.Unlock()
		return "", ErrTransferRunning
	}
	id := uuid.NewString()
	t.state = Snapshot{ID: id, Running: true}
	t.mu.Unlock()

	t.notify()
	return id, nil
}

// SetTotal records the number of items the transfer will process.
func (t *Tracker) SetTotal(total int) {
	t.mu.Lock()
	t.state.Total = total
	t.mu.Unlock()
	t.notify()
}

// Advance counts one more processed item and names it as current.
func (t *Tracker) Advance(item string) {
	t.mu.Lock()
	t.state.Completed++
	// Files created between the counting pass and the writing pass would
	// otherwise push Completed past Total.
	if t.state.Completed > t.state.Total {
		t.state.Total = t.state.Completed
	}
	t.state.CurrentItem = item
	t.mu.Unlock()
	t.notify()
}

// Finish ends the running transfer and stores its outcome.
func (t *Tracker) Finish(path string, err error) {
	outcome := &Outcome{Path: path}
	if err != nil {
		outcome = &Outcome{Err: err.Error()}
	}

	t.mu.Lock()
	t.state.Running = false
	t.state.Outcome = outcome
	id := t.state.ID
	t.mu.Unlock()

	if err != nil {
		t.logger.Error("transfer failed", "transfer_id", id, "error", err)
	} else {
		t.logger.Info("transfer finished", "transfer_id", id, "path", path)
	}
	t.notify()
}

// Snapshot copies the whole state under one lock acquisition.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.state
	if s.Outcome != nil {
		o := *s.Outcome
		s.Outcome = &o
	}
	return s
}

// TakeOutcome returns the outcome of a finished transfer and clears it, so
// each result is observed once.
func (t *Tracker) TakeOutcome() (Outcome, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Running || t.state.Outcome == nil {
		return Outcome{}, false
	}
	o := *t.state.Outcome
	t.state.Outcome = nil
	return o, true
}

// Go starts job on a background goroutine as the tracker's single transfer.
// The returned channel is closed once the outcome has been stored.
func (t *Tracker) Go(job func(t *Tracker) (string, error)) (string, <-chan struct{}, error) {
	id, err := t.Begin()
	if err != nil {
		return "", nil, err
	}
	t.logger.Info("transfer started", "transfer_id", id)

	done := make(chan struct{})
	go func() {
		defer close(done)
		path, err := job(t)
		t.Finish(path, err)
	}()
	return id, done, nil
}

func (t *Tracker) notify() {
	if t.OnUpdate != nil {
		t.OnUpdate()
	}
}
