// Package controller implements the shared view-controller state machine
// behind every resource list.
//
// One generic Pager replaces the per-resource copies so that fetch,
// loading, and failure semantics are identical across workflows,
// executions, credentials, templates, webhooks, and variables. A failed
// fetch always preserves the last successful data.
package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/notify"
)

// State is the controller lifecycle: idle until the first load, loading
// during a fetch, then ready or errored. Every refetch re-enters loading.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateErrored
)

var (
	// ErrDeclined is returned when the user refuses the confirmation
	// prompt of a destructive mutation. No network call was made.
	ErrDeclined = errors.New("declined by user")

	// ErrStaleResponse marks a fetch whose result arrived after the
	// controller moved on; the result was discarded, not applied.
	ErrStaleResponse = errors.New("stale response discarded")
)

// FetchFunc loads one page of a resource. Unpaginated resources ignore the
// page argument and return a zero Page.
type FetchFunc[T any] func(ctx context.Context, page int) ([]T, api.Page, error)

// Pager drives a paged resource view.
type Pager[T any] struct {
	mu sync.Mutex

	fetch FetchFunc[T]

	state      State
	items      []T
	page       api.Page
	current    int
	generation uint64
	lastErr    error
}

// NewPager creates a Pager starting at page 1 in the idle state.
func NewPager[T any](fetch FetchFunc[T]) *Pager[T] {
	return &Pager[T]{
		fetch:   fetch,
		current: 1,
	}
}

// Load performs the mount-time fetch of the current page.
func (p *Pager[T]) Load(ctx context.Context) error {
	return p.fetchPage(ctx, p.CurrentPage())
}

// Refresh refetches the current page, replacing the list and pagination
// envelope wholesale.
func (p *Pager[T]) Refresh(ctx context.Context) error {
	return p.fetchPage(ctx, p.CurrentPage())
}

// SetPage moves to page n and fetches it.
func (p *Pager[T]) SetPage(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}

	return p.fetchPage(ctx, n)
}

// Next fetches the following page when the envelope says one exists.
func (p *Pager[T]) Next(ctx context.Context) error {
	p.mu.Lock()
	ok := p.page.HasNext()
	n := p.current + 1
	p.mu.Unlock()

	if !ok {
		return nil
	}

	return p.fetchPage(ctx, n)
}

// Prev fetches the preceding page when the envelope says one exists.
func (p *Pager[T]) Prev(ctx context.Context) error {
	p.mu.Lock()
	ok := p.page.HasPrev()
	n := p.current - 1
	p.mu.Unlock()

	if !ok {
		return nil
	}

	return p.fetchPage(ctx, n)
}

// Invalidate marks every in-flight fetch stale. Called on view teardown so
// a late response cannot update a dismissed view.
func (p *Pager[T]) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
}

func (p *Pager[T]) fetchPage(ctx context.Context, n int) error {
	p.mu.Lock()
	p.state = StateLoading
	p.generation++
	gen := p.generation
	p.mu.Unlock()

	items, page, err := p.fetch(ctx, n)

	p.mu.Lock()

	if gen != p.generation {
		p.mu.Unlock()

		return ErrStaleResponse
	}

	if err != nil {
		// Keep the previous successful data in place.
		p.state = StateErrored
		p.lastErr = err
		p.mu.Unlock()

		notify.Error(ctx, err.Error())

		return err
	}

	if page.CurrentPage == 0 {
		page.CurrentPage = n
	}

	p.state = StateReady
	p.lastErr = nil
	p.items = items
	p.page = page
	p.current = page.CurrentPage
	p.mu.Unlock()

	return nil
}

// Mutation is one user action against the resource.
type Mutation struct {
	// Success is the notification text published when the call succeeds.
	Success string

	// Action performs the remote call.
	Action func(ctx context.Context) error

	// Destructive actions require Confirm to return true before any call
	// is issued.
	Destructive bool
	Confirm     func() bool
}

// Mutate runs a mutation: confirm when destructive, await the call,
// publish exactly one success or error notification, and refetch the
// current page only on success. The in-memory list is never updated
// optimistically.
func (p *Pager[T]) Mutate(ctx context.Context, m Mutation) error {
	if m.Destructive {
		if m.Confirm == nil || !m.Confirm() {
			return ErrDeclined
		}
	}

	if err := m.Action(ctx); err != nil {
		notify.Error(ctx, err.Error())

		return err
	}

	if m.Success != "" {
		notify.Success(ctx, m.Success)
	}

	return p.Refresh(ctx)
}

// State returns the current lifecycle state.
func (p *Pager[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// Items returns a copy of the displayed list.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]T, len(p.items))
	copy(out, p.items)

	return out
}

// Page returns the last pagination envelope.
func (p *Pager[T]) Page() api.Page {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.page
}

// CurrentPage returns the page the controller points at.
func (p *Pager[T]) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.current
}

// Err returns the failure of the most recent fetch, nil when it succeeded.
func (p *Pager[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.lastErr
}
