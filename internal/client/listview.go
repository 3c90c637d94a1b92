package client

import (
	"context"
	"sync"
	"time"

	"customer-panel/internal/domain"
)

// ListState tracks the customer list view lifecycle.
type ListState int

const (
	ListIdle ListState = iota
	ListFiltering
	ListRendered
	ListErrored
)

// Default coalescing delays. Free-text input is debounced (only the final
// value within the window fires), structured filter changes are throttled
// (at most one request per window, trailing change still applied).
const (
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultFilterThrottle = 500 * time.Millisecond
)

// ListView is the stateful customer table. Filter controls are disabled while
// a request is in flight; input arriving meanwhile is deferred through the
// debounce/throttle timers rather than queued.
type ListView struct {
	mu sync.Mutex

	api      API
	strings  Strings
	onRender func(fragment string)

	searchDebounce time.Duration
	filterThrottle time.Duration

	state           ListState
	controlsEnabled bool
	search          string
	filters         map[string]interface{}
	fragment        string

	debounceTimer *time.Timer
	throttleTimer *time.Timer
	lastIssued    time.Time
	pending       bool
}

// NewListView creates an idle ListView with the default delays. onRender may
// be nil.
func NewListView(api API, strings Strings, onRender func(fragment string)) *ListView {
	if onRender == nil {
		onRender = func(string) {}
	}
	return &ListView{
		api:             api,
		strings:         strings,
		onRender:        onRender,
		searchDebounce:  DefaultSearchDebounce,
		filterThrottle:  DefaultFilterThrottle,
		state:           ListIdle,
		controlsEnabled: true,
		filters:         make(map[string]interface{}),
	}
}

// SetDelays overrides the debounce/throttle windows. Used by tests and by
// hosts with different input cadence.
func (v *ListView) SetDelays(searchDebounce, filterThrottle time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.searchDebounce = searchDebounce
	v.filterThrottle = filterThrottle
}

// State returns the current lifecycle state.
func (v *ListView) State() ListState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// ControlsEnabled reports whether the filter controls accept input.
func (v *ListView) ControlsEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.controlsEnabled
}

// Fragment returns the last rendered markup.
func (v *ListView) Fragment() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fragment
}

// SetSearch records a keystroke. The request fires once input pauses for the
// debounce window, with the final value only.
func (v *ListView) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search = term
	if v.debounceTimer != nil {
		v.debounceTimer.Stop()
	}
	v.debounceTimer = time.AfterFunc(v.searchDebounce, v.refresh)
}

// SetFilter records a structured filter change, throttled: the first change in
// a window fires immediately, later ones coalesce into one trailing request.
func (v *ListView) SetFilter(key string, value interface{}) {
	v.mu.Lock()
	if value == nil || value == "" {
		delete(v.filters, key)
	} else {
		v.filters[key] = value
	}

	since := time.Since(v.lastIssued)
	if since >= v.filterThrottle {
		v.mu.Unlock()
		v.refresh()
		return
	}
	if v.throttleTimer == nil {
		v.throttleTimer = time.AfterFunc(v.filterThrottle-since, func() {
			v.mu.Lock()
			v.throttleTimer = nil
			v.mu.Unlock()
			v.refresh()
		})
	}
	v.mu.Unlock()
}

// Refresh issues a filter request immediately, unless one is already in
// flight, in which case it runs again as soon as the current one settles.
func (v *ListView) Refresh() {
	v.refresh()
}

func (v *ListView) refresh() {
	v.mu.Lock()
	if v.state == ListFiltering {
		v.pending = true
		v.mu.Unlock()
		return
	}
	v.state = ListFiltering
	v.controlsEnabled = false
	v.lastIssued = time.Now()
	search := v.search
	filters := make(map[string]interface{}, len(v.filters))
	for k, val := range v.filters {
		filters[k] = val
	}
	v.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		results, err := v.api.FilterCustomers(ctx, search, filters)
		v.settle(search, results, err)
	}()
}

// settle applies a filter result. Every path leaves the controls enabled
// again so the view never gets stuck disabled.
func (v *ListView) settle(search string, results []domain.CustomerSummary, err error) {
	v.mu.Lock()
	if err != nil {
		v.state = ListErrored
		v.fragment = renderNotice(v.strings.Error)
	} else {
		v.state = ListRendered
		v.fragment = RenderCustomerRows(results, search, v.strings)
	}
	v.controlsEnabled = true
	rerun := v.pending
	v.pending = false
	fragment := v.fragment
	v.mu.Unlock()

	v.onRender(fragment)
	if rerun {
		v.refresh()
	}
}
