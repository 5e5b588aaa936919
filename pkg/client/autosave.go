package client

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultAutosaveDelay is the quiet period after the last edit before a save.
const DefaultAutosaveDelay = 650 * time.Millisecond

// Updater applies a patch to a fund. *Client implements it.
type Updater interface {
	Update(ctx context.Context, id string, p Patch) (Fund, error)
}

// AutosaveOption configures an Autosaver.
type AutosaveOption func(*Autosaver)

// WithDelay sets the quiet period. Non-positive values keep the default.
func WithDelay(d time.Duration) AutosaveOption {
	return func(a *Autosaver) {
		if d > 0 {
			a.delay = d
		}
	}
}

// WithOnSave registers a callback invoked after every timer-driven save.
func WithOnSave(fn func(Fund, error)) AutosaveOption {
	return func(a *Autosaver) {
		a.onSave = fn
	}
}

// WithSaveTimeout bounds each timer-driven save. Default: 10s.
func WithSaveTimeout(d time.Duration) AutosaveOption {
	return func(a *Autosaver) {
		a.timeout = d
	}
}

// Autosaver debounces edits to one fund. Every Mark restarts the quiet
// timer and merges into the pending patch; when the timer fires the pending
// patch is sent as a single update. Saves never run concurrently.
type Autosaver struct {
	u       Updater
	id      string
	delay   time.Duration
	timeout time.Duration
	onSave  func(Fund, error)

	mu      sync.Mutex
	pending Patch
	timer   *time.Timer
	closed  bool

	saveMu sync.Mutex
}

// NewAutosaver creates an Autosaver for the fund id.
func NewAutosaver(u Updater, id string, opts ...AutosaveOption) *Autosaver {
	a := &Autosaver{u: u, id: id, delay: DefaultAutosaveDelay, timeout: defaultTimeout}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Autosaver returns an Autosaver that saves through c.
func (c *Client) Autosaver(id string, opts ...AutosaveOption) *Autosaver {
	return NewAutosaver(c, id, opts...)
}

// Mark records an edit and restarts the quiet timer. It is a no-op after Close.
func (a *Autosaver) Mark(p Patch) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed || p.IsEmpty() {
		return
	}
	a.pending = a.pending.Merge(p)
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.fire)
}

// Pending reports whether edits are waiting to be saved.
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.pending.IsEmpty()
}

// Flush cancels the timer and saves pending edits now.
// With nothing pending it returns (Fund{}, nil) without calling the server.
func (a *Autosaver) Flush(ctx context.Context) (Fund, error) {
	a.mu.Lock()
	a.stopTimer()
	a.mu.Unlock()
	return a.save(ctx)
}

// Close flushes pending edits and rejects further Marks.
func (a *Autosaver) Close(ctx context.Context) (Fund, error) {
	a.mu.Lock()
	a.closed = true
	a.stopTimer()
	a.mu.Unlock()
	return a.save(ctx)
}

func (a *Autosaver) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	f, err := a.save(ctx)
	if a.onSave != nil {
		a.onSave(f, err)
	}
}

// save sends the pending patch. A save that failed for a transient reason puts
// its edits back under any newer ones so the next Mark or Flush retries them;
// rejected edits (validation, missing fund) are dropped.
func (a *Autosaver) save(ctx context.Context) (Fund, error) {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	a.mu.Lock()
	p := a.pending
	a.pending = Patch{}
	a.mu.Unlock()

	if p.IsEmpty() {
		return Fund{}, nil
	}

	f, err := a.u.Update(ctx, a.id, p)
	if err != nil {
		if !errors.Is(err, ErrValidation) && !errors.Is(err, ErrNotFound) {
			a.mu.Lock()
			a.pending = p.Merge(a.pending)
			a.mu.Unlock()
		}
		return Fund{}, err
	}
	return f, nil
}

// stopTimer must be called with mu held.
func (a *Autosaver) stopTimer() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
