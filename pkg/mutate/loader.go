package mutate

import (
	"context"
	"sync"

	"todoboard/pkg/api"
	"todoboard/pkg/todo"
)

// Result is the outcome of one list load
type Result struct {
	Generation uint64
	Items      []todo.Item
	Err        error
}

// Loader fetches the list. Starting a load cancels the one in flight, and results
// of superseded loads are flagged so callers keep only the newest.
type Loader struct {
	remote Remote

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	pending bool
}

// NewLoader creates a loader reading from remote
func NewLoader(remote Remote) *Loader {
	return &Loader{remote: remote}
}

// Begin registers a new load and returns its generation and context
func (l *Loader) Begin(parent context.Context) (uint64, context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	l.gen++
	l.cancel = cancel
	l.pending = true
	return l.gen, ctx
}

// Fetch runs the load registered by Begin
func (l *Loader) Fetch(ctx context.Context, gen uint64) Result {
	items, err := l.remote.List(ctx, api.ListOptions{})

	l.mu.Lock()
	if gen == l.gen {
		l.pending = false
		if l.cancel != nil {
			l.cancel()
			l.cancel = nil
		}
	}
	l.mu.Unlock()

	return Result{Generation: gen, Items: items, Err: err}
}

// Load is Begin followed by Fetch
func (l *Loader) Load(parent context.Context) Result {
	gen, ctx := l.Begin(parent)
	return l.Fetch(ctx, gen)
}

// IsCurrent reports whether r belongs to the newest load
func (l *Loader) IsCurrent(r Result) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return r.Generation == l.gen
}

// Loading reports whether the newest load has not finished yet
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Stop cancels any load in flight
func (l *Loader) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.pending = false
}
