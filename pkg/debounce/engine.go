// Package debounce decouples typing latency from network writes: field edits
// accumulate in a per-entry batch and flush as one update after an idle
// window.
package debounce

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay is the idle window before a batch flushes.
const DefaultDelay = 900 * time.Millisecond

// Flusher receives the accumulated batch for one entry as a single update.
type Flusher interface {
	Flush(ctx context.Context, id string, fields map[string]any) error
}

// FlusherFunc adapts a function to the Flusher interface.
type FlusherFunc func(ctx context.Context, id string, fields map[string]any) error

// Flush implements Flusher.
func (f FlusherFunc) Flush(ctx context.Context, id string, fields map[string]any) error {
	return f(ctx, id, fields)
}

// Option customises engine construction.
type Option func(*Engine)

// WithDelay overrides the idle window.
func WithDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.delay = d
		}
	}
}

// WithErrorHandler installs a callback for failed flushes. Failures never
// roll back local state; the callback exists so the UI can surface them.
func WithErrorHandler(fn func(id string, err error)) Option {
	return func(e *Engine) { e.onError = fn }
}

type batch struct {
	fields map[string]any
	timer  *time.Timer
	gen    uint64
}

// Engine holds one pending batch and at most one live timer per entry ID.
// Edits to a field already pending overwrite it (last-write-wins) without
// disturbing the rest of the batch. Restarting the timer keeps the merged
// fields: merge-then-restart, never discard-then-restart.
type Engine struct {
	mu      sync.Mutex
	delay   time.Duration
	flusher Flusher
	onError func(id string, err error)
	pending map[string]*batch
	gen     uint64
	wg      sync.WaitGroup
}

// NewEngine returns an engine flushing through f.
func NewEngine(f Flusher, opts ...Option) *Engine {
	e := &Engine{
		delay:   DefaultDelay,
		flusher: f,
		pending: make(map[string]*batch),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stage merges fields into the pending batch for id and (re)starts its
// timer. Any previous timer for the same id is cancelled; its batched
// fields are kept.
func (e *Engine) Stage(id string, fields map[string]any) {
	if len(fields) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.pending[id]
	if !ok {
		b = &batch{fields: make(map[string]any, len(fields))}
		e.pending[id] = b
	}
	for k, v := range fields {
		b.fields[k] = v
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	e.gen++
	b.gen = e.gen
	gen := e.gen
	b.timer = time.AfterFunc(e.delay, func() {
		e.fire(id, gen)
	})
}

// fire flushes the batch for id if the timer generation is still current.
// A stale generation means the batch was re-staged, cancelled, or already
// flushed; firing then would double-deliver.
func (e *Engine) fire(id string, gen uint64) {
	e.mu.Lock()
	b, ok := e.pending[id]
	if !ok || b.gen != gen {
		e.mu.Unlock()
		return
	}
	fields := b.fields
	delete(e.pending, id)
	e.wg.Add(1)
	e.mu.Unlock()

	defer e.wg.Done()
	if err := e.flusher.Flush(context.Background(), id, fields); err != nil && e.onError != nil {
		e.onError(id, err)
	}
}

// Cancel drops the pending timer and batch for id without flushing. Used
// when a structural reassignment makes the staged fields meaningless.
func (e *Engine) Cancel(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.pending[id]; ok {
		if b.timer != nil {
			b.timer.Stop()
		}
		delete(e.pending, id)
	}
}

// Flush sends the batch for id immediately, if one is pending.
func (e *Engine) Flush(ctx context.Context, id string) error {
	e.mu.Lock()
	b, ok := e.pending[id]
	if !ok {
		e.mu.Unlock()
		return nil
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	fields := b.fields
	delete(e.pending, id)
	e.mu.Unlock()

	if err := e.flusher.Flush(ctx, id, fields); err != nil {
		if e.onError != nil {
			e.onError(id, err)
		}
		return err
	}
	return nil
}

// FlushAll drains every pending batch, typically on shutdown. The first
// error is returned after all batches have been attempted.
func (e *Engine) FlushAll(ctx context.Context) error {
	e.mu.Lock()
	ids := make([]string, 0, len(e.pending))
	for id := range e.pending {
		ids = append(ids, id)
	}
	e.mu.Unlock()

	var first error
	for _, id := range ids {
		if err := e.Flush(ctx, id); err != nil && first == nil {
			first = err
		}
	}
	e.wait()
	return first
}

// Pending reports whether id has an unflushed batch.
func (e *Engine) Pending(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.pending[id]
	return ok
}

func (e *Engine) wait() {
	e.wg.Wait()
}
