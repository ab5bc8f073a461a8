// Package fetch keeps the last fetched snapshot of one API resource and
// re-fetches it on demand. Only the most recently started request may change
// the visible state; results of superseded requests are dropped.
package fetch

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Getter loads the resource addressed by path.
type Getter[T any] func(ctx context.Context, path string) (T, error)

// State is what a renderer sees. Data always holds the last successful
// result (or the initial value); Err is the message of the last failure.
type State[T any] struct {
	Data      T
	IsLoading bool
	Err       error
}

type options struct {
	onChange func()
	log      logrus.FieldLogger
}

type Option func(*options)

// OnChange registers fn to run after every applied state change. It is
// called without the resource lock held, from the fetching goroutine.
func OnChange(fn func()) Option {
	return func(o *options) { o.onChange = fn }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

type Resource[T any] struct {
	ctx  context.Context
	get  Getter[T]
	opts options

	mu     sync.Mutex
	path   string
	state  State[T]
	gen    uint64
	closed bool

	wg sync.WaitGroup
}

// Use creates a resource and starts the first fetch for path. An empty path
// leaves the resource idle with its initial value until SetPath is called.
func Use[T any](ctx context.Context, get Getter[T], path string, initial T, opts ...Option) *Resource[T] {
	r := &Resource[T]{
		ctx:   ctx,
		get:   get,
		path:  path,
		state: State[T]{Data: initial},
		opts:  options{log: logrus.StandardLogger()},
	}
	for _, opt := range opts {
		opt(&r.opts)
	}
	if path != "" {
		r.Refetch()
	}
	return r
}

// Snapshot returns a copy of the current state.
func (r *Resource[T]) Snapshot() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Resource[T]) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Refetch starts a new request for the current path. Any request still in
// flight becomes stale.
func (r *Resource[T]) Refetch() {
	r.mu.Lock()
	if r.closed || r.path == "" {
		r.mu.Unlock()
		return
	}
	r.gen++
	gen, path := r.gen, r.path
	r.state.IsLoading = true
	r.state.Err = nil
	r.mu.Unlock()

	r.notify()

	r.wg.Add(1)
	go r.run(gen, path)
}

// SetPath switches the resource to path and fetches it. Setting the same
// path again is a no-op; use Refetch to reload.
func (r *Resource[T]) SetPath(path string) {
	r.mu.Lock()
	if r.closed || path == r.path {
		r.mu.Unlock()
		return
	}
	r.path = path
	if path == "" {
		// invalidate whatever is in flight for the old path
		r.gen++
		r.state.IsLoading = false
		r.mu.Unlock()
		r.notify()
		return
	}
	r.mu.Unlock()
	r.Refetch()
}

func (r *Resource[T]) run(gen uint64, path string) {
	defer r.wg.Done()

	data, err := r.get(r.ctx, path)

	r.mu.Lock()
	if r.closed || gen != r.gen {
		r.mu.Unlock()
		r.opts.log.WithFields(logrus.Fields{"path": path, "generation": gen}).Debug("dropping stale result")
		return
	}
	if err != nil {
		r.state.Err = err
	} else {
		r.state.Data = data
		r.state.Err = nil
	}
	r.state.IsLoading = false
	r.mu.Unlock()

	r.notify()
}

func (r *Resource[T]) notify() {
	if r.opts.onChange != nil {
		r.opts.onChange()
	}
}

// Close stops the resource from applying any further results.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

// Wait blocks until every request started so far has returned.
func (r *Resource[T]) Wait() {
	r.wg.Wait()
}

// Load fetches path once and waits for the outcome. It is the one-shot form
// used by CLI commands that render a single snapshot.
func Load[T any](ctx context.Context, get Getter[T], path string, initial T) State[T] {
	r := Use(ctx, get, path, initial)
	r.Wait()
	return r.Snapshot()
}
