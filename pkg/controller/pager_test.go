package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aipilotbyjd/n8njdfront/pkg/api"
	"github.com/aipilotbyjd/n8njdfront/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// busContext installs a fresh notification bus and returns a collector of
// everything published on it.
func busContext(t *testing.T) (context.Context, func() []notify.Notification) {
	t.Helper()

	bus := notify.NewBus(slog.Default())
	t.Cleanup(func() { _ = bus.Close() })

	ctx := notify.WithBus(t.Context(), bus)

	var (
		mu  sync.Mutex
		got []notify.Notification
	)

	notifications, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	go func() {
		for n := range notifications {
			mu.Lock()
			got = append(got, n)
			mu.Unlock()
		}
	}()

	return ctx, func() []notify.Notification {
		// Give the in-process pubsub a moment to drain.
		time.Sleep(50 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()

		out := make([]notify.Notification, len(got))
		copy(out, got)

		return out
	}
}

func pageEnvelope(current, last int) api.Page {
	prev := "p"
	next := "n"

	page := api.Page{CurrentPage: current, LastPage: last}
	if current > 1 {
		page.PrevPageURL = &prev
	}

	if current < last {
		page.NextPageURL = &next
	}

	return page
}

func TestPager_LoadReachesReady(t *testing.T) {
	ctx, _ := busContext(t)

	pager := NewPager(func(_ context.Context, page int) ([]string, api.Page, error) {
		return []string{"a", "b"}, pageEnvelope(page, 3), nil
	})

	assert.Equal(t, StateIdle, pager.State())

	require.NoError(t, pager.Load(ctx))

	assert.Equal(t, StateReady, pager.State())
	assert.Equal(t, []string{"a", "b"}, pager.Items())
	assert.Equal(t, 1, pager.Page().CurrentPage)
}

func TestPager_CurrentPageTracksFetchedPage(t *testing.T) {
	ctx, _ := busContext(t)

	pager := NewPager(func(_ context.Context, page int) ([]int, api.Page, error) {
		return []int{page}, pageEnvelope(page, 5), nil
	})

	require.NoError(t, pager.SetPage(ctx, 4))

	assert.Equal(t, 4, pager.CurrentPage())
	assert.Equal(t, 4, pager.Page().CurrentPage)
	assert.Equal(t, []int{4}, pager.Items())
}

func TestPager_NextPrevRespectEnvelope(t *testing.T) {
	ctx, _ := busContext(t)

	var fetched []int

	pager := NewPager(func(_ context.Context, page int) ([]int, api.Page, error) {
		fetched = append(fetched, page)

		return nil, pageEnvelope(page, 2), nil
	})

	require.NoError(t, pager.Load(ctx))
	require.NoError(t, pager.Next(ctx))
	assert.Equal(t, 2, pager.CurrentPage())

	// Already on the last page: no fetch issued.
	require.NoError(t, pager.Next(ctx))
	assert.Equal(t, []int{1, 2}, fetched)

	require.NoError(t, pager.Prev(ctx))
	assert.Equal(t, 1, pager.CurrentPage())

	// Already on the first page: no fetch issued.
	require.NoError(t, pager.Prev(ctx))
	assert.Equal(t, []int{1, 2, 1}, fetched)
}

func TestPager_FailedFetchPreservesLastGoodData(t *testing.T) {
	ctx, published := busContext(t)

	fail := false

	pager := NewPager(func(_ context.Context, page int) ([]string, api.Page, error) {
		if fail {
			return nil, api.Page{}, errors.New("boom")
		}

		return []string{"kept"}, pageEnvelope(page, 1), nil
	})

	require.NoError(t, pager.Load(ctx))

	fail = true
	err := pager.Refresh(ctx)
	require.Error(t, err)

	assert.Equal(t, StateErrored, pager.State())
	assert.Equal(t, []string{"kept"}, pager.Items())
	assert.EqualError(t, pager.Err(), "boom")

	got := published()
	require.Len(t, got, 1)
	assert.Equal(t, notify.SeverityError, got[0].Severity)
}

func TestPager_MutateSuccessRefetchesOnce(t *testing.T) {
	ctx, published := busContext(t)

	fetches := 0

	pager := NewPager(func(_ context.Context, page int) ([]string, api.Page, error) {
		fetches++

		return nil, pageEnvelope(page, 1), nil
	})

	require.NoError(t, pager.Load(ctx))
	require.Equal(t, 1, fetches)

	err := pager.Mutate(ctx, Mutation{
		Success: "Workflow deleted",
		Action:  func(context.Context) error { return nil },
	})
	require.NoError(t, err)

	assert.Equal(t, 2, fetches)

	got := published()
	require.Len(t, got, 1)
	assert.Equal(t, notify.SeveritySuccess, got[0].Severity)
	assert.Equal(t, "Workflow deleted", got[0].Message)
}

func TestPager_MutateFailurePublishesOneErrorNoRefetch(t *testing.T) {
	ctx, published := busContext(t)

	fetches := 0

	pager := NewPager(func(_ context.Context, page int) ([]string, api.Page, error) {
		fetches++

		return nil, pageEnvelope(page, 1), nil
	})

	require.NoError(t, pager.Load(ctx))

	err := pager.Mutate(ctx, Mutation{
		Success: "never shown",
		Action:  func(context.Context) error { return errors.New("delete failed") },
	})
	require.Error(t, err)

	assert.Equal(t, 1, fetches)

	got := published()
	require.Len(t, got, 1)
	assert.Equal(t, notify.SeverityError, got[0].Severity)
	assert.Equal(t, "delete failed", got[0].Message)
}

func TestPager_DestructiveMutationRequiresConfirmation(t *testing.T) {
	ctx, published := busContext(t)

	calls := 0

	pager := NewPager(func(_ context.Context, page int) ([]string, api.Page, error) {
		return nil, pageEnvelope(page, 1), nil
	})

	err := pager.Mutate(ctx, Mutation{
		Destructive: true,
		Confirm:     func() bool { return false },
		Action: func(context.Context) error {
			calls++

			return nil
		},
	})

	assert.ErrorIs(t, err, ErrDeclined)
	assert.Zero(t, calls)
	assert.Empty(t, published())
}

func TestPager_DestructiveMutationWithoutConfirmCallbackDeclines(t *testing.T) {
	ctx, _ := busContext(t)

	pager := NewPager(func(_ context.Context, page int) ([]string, api.Page, error) {
		return nil, api.Page{}, nil
	})

	err := pager.Mutate(ctx, Mutation{
		Destructive: true,
		Action:      func(context.Context) error { t.Fatal("must not be called"); return nil },
	})

	assert.ErrorIs(t, err, ErrDeclined)
}

func TestPager_ConfirmedDestructiveMutationRuns(t *testing.T) {
	ctx, published := busContext(t)

	calls := 0

	pager := NewPager(func(_ context.Context, page int) ([]string, api.Page, error) {
		return nil, pageEnvelope(page, 1), nil
	})

	err := pager.Mutate(ctx, Mutation{
		Success:     "Workflow deleted",
		Destructive: true,
		Confirm:     func() bool { return true },
		Action: func(context.Context) error {
			calls++

			return nil
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	got := published()
	require.Len(t, got, 1)
	assert.Equal(t, "Workflow deleted", got[0].Message)
}

func TestPager_StaleResponseDiscarded(t *testing.T) {
	ctx, _ := busContext(t)

	release := make(chan struct{})

	pager := NewPager(func(_ context.Context, page int) ([]string, api.Page, error) {
		if page == 1 {
			<-release

			return []string{"stale"}, pageEnvelope(1, 2), nil
		}

		return []string{"fresh"}, pageEnvelope(page, 2), nil
	})

	done := make(chan error, 1)

	go func() { done <- pager.Load(ctx) }()

	// Let the slow fetch start, then supersede it.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, pager.SetPage(ctx, 2))

	close(release)

	err := <-done
	assert.ErrorIs(t, err, ErrStaleResponse)
	assert.Equal(t, []string{"fresh"}, pager.Items())
	assert.Equal(t, 2, pager.CurrentPage())
}

func TestPager_InvalidateDiscardsInFlightFetch(t *testing.T) {
	ctx, _ := busContext(t)

	release := make(chan struct{})

	pager := NewPager(func(context.Context, int) ([]string, api.Page, error) {
		<-release

		return []string{"late"}, api.Page{}, nil
	})

	done := make(chan error, 1)

	go func() { done <- pager.Load(ctx) }()

	time.Sleep(20 * time.Millisecond)
	pager.Invalidate()
	close(release)

	err := <-done
	assert.ErrorIs(t, err, ErrStaleResponse)
	assert.Empty(t, pager.Items())
}
