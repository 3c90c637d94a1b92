package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer-panel/internal/domain"
)

type filterCall struct {
	search  string
	filters map[string]interface{}
}

type fakeAPI struct {
	mu          sync.Mutex
	filterCalls []filterCall
	detailCalls []string

	results []domain.CustomerSummary
	payload *domain.DetailPayload
	err     error

	// When set, calls block until the channel is closed.
	gate chan struct{}
}

func (f *fakeAPI) CustomerDetails(_ context.Context, _ int64, tab string) (*domain.DetailPayload, error) {
	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, tab)
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.payload, f.err
}

func (f *fakeAPI) FilterCustomers(_ context.Context, search string, filters map[string]interface{}) ([]domain.CustomerSummary, error) {
	f.mu.Lock()
	f.filterCalls = append(f.filterCalls, filterCall{search: search, filters: filters})
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.results, f.err
}

func (f *fakeAPI) SearchCustomers(ctx context.Context, search string) ([]domain.CustomerSummary, error) {
	return f.FilterCustomers(ctx, search, nil)
}

func (f *fakeAPI) filterCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filterCalls)
}

func (f *fakeAPI) lastFilterCall() filterCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filterCalls[len(f.filterCalls)-1]
}

func TestListViewDebouncesKeystrokes(t *testing.T) {
	api := &fakeAPI{results: []domain.CustomerSummary{{ID: 5, DisplayName: "John Smith"}}}
	v := NewListView(api, DefaultStrings(), nil)
	v.SetDelays(20*time.Millisecond, 50*time.Millisecond)

	for _, term := range []string{"j", "jo", "joh", "john", "john s"} {
		v.SetSearch(term)
	}

	assert.Eventually(t, func() bool {
		return v.State() == ListRendered
	}, time.Second, 5*time.Millisecond)

	// Only the final keystroke's value reaches the server.
	require.Equal(t, 1, api.filterCallCount())
	assert.Equal(t, "john s", api.lastFilterCall().search)
	// The rendered row highlights the matched prefix of the name.
	assert.Contains(t, v.Fragment(), "<mark>John S</mark>mith")
	assert.True(t, v.ControlsEnabled())
}

func TestListViewErrorReenablesControls(t *testing.T) {
	api := &fakeAPI{err: errors.New("boom")}
	v := NewListView(api, DefaultStrings(), nil)
	v.SetDelays(time.Millisecond, time.Millisecond)

	v.Refresh()

	assert.Eventually(t, func() bool {
		return v.State() == ListErrored
	}, time.Second, 5*time.Millisecond)
	assert.True(t, v.ControlsEnabled())
	assert.Contains(t, v.Fragment(), DefaultStrings().Error)
}

func TestListViewDisablesControlsWhileFiltering(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{gate: gate}
	v := NewListView(api, DefaultStrings(), nil)
	v.SetDelays(time.Millisecond, time.Millisecond)

	v.Refresh()
	assert.Eventually(t, func() bool {
		return v.State() == ListFiltering && !v.ControlsEnabled()
	}, time.Second, time.Millisecond)

	close(gate)
	assert.Eventually(t, func() bool {
		return v.State() == ListRendered && v.ControlsEnabled()
	}, time.Second, time.Millisecond)
}

func TestListViewRerunsPendingRefresh(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{gate: gate}
	v := NewListView(api, DefaultStrings(), nil)
	v.SetDelays(time.Millisecond, time.Millisecond)

	v.Refresh()
	assert.Eventually(t, func() bool {
		return api.filterCallCount() == 1
	}, time.Second, time.Millisecond)

	// Arrives while the first request is in flight.
	v.Refresh()

	api.mu.Lock()
	api.gate = nil
	api.mu.Unlock()
	close(gate)

	assert.Eventually(t, func() bool {
		return api.filterCallCount() == 2 && v.State() == ListRendered
	}, time.Second, time.Millisecond)
}

func TestListViewEmptyResultRendersNoDataRow(t *testing.T) {
	api := &fakeAPI{}
	rendered := make(chan string, 1)
	v := NewListView(api, DefaultStrings(), func(fragment string) { rendered <- fragment })
	v.SetDelays(time.Millisecond, time.Millisecond)

	v.Refresh()

	select {
	case fragment := <-rendered:
		assert.Contains(t, fragment, DefaultStrings().NoData)
	case <-time.After(time.Second):
		t.Fatal("no render callback")
	}
}

func TestListViewFilterThrottleCoalesces(t *testing.T) {
	api := &fakeAPI{}
	v := NewListView(api, DefaultStrings(), nil)
	v.SetDelays(10*time.Millisecond, 60*time.Millisecond)

	// The first change fires immediately; the burst behind it coalesces into
	// one trailing request.
	v.SetFilter("course_status", "completed")
	v.SetFilter("course_status", "in-progress")
	v.SetFilter("certificate_status", "has-certificates")

	assert.Eventually(t, func() bool {
		return api.filterCallCount() == 2 && v.State() == ListRendered
	}, time.Second, 5*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 2, api.filterCallCount())

	last := api.lastFilterCall()
	assert.Equal(t, "in-progress", last.filters["course_status"])
	assert.Equal(t, "has-certificates", last.filters["certificate_status"])
}
