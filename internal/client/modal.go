package client

import (
	"context"
	"sync"

	"customer-panel/internal/domain"
)

// ModalState tracks the customer-detail modal lifecycle.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpening
	ModalTabLoading
	ModalTabLoaded
	ModalClosing
)

// DefaultTab is the tab shown when the modal opens.
const DefaultTab = "basic-info"

// Modal is the stateful customer-detail view. At most one tab fetch is in
// flight at a time: a tab switch during a load is ignored, and a response
// arriving for a tab that is no longer active is dropped instead of clobbering
// newer content.
type Modal struct {
	mu sync.Mutex

	api      API
	strings  Strings
	onRender func(fragment string)

	state      ModalState
	customerID int64
	title      string
	currentTab string
	fragment   string
}

// NewModal creates a closed Modal. onRender receives every fragment the modal
// wants shown; it may be nil.
func NewModal(api API, strings Strings, onRender func(fragment string)) *Modal {
	if onRender == nil {
		onRender = func(string) {}
	}
	return &Modal{api: api, strings: strings, onRender: onRender, state: ModalClosed}
}

// State returns the current lifecycle state.
func (m *Modal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Title returns the modal title for the open customer.
func (m *Modal) Title() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.title
}

// CurrentTab returns the active tab name.
func (m *Modal) CurrentTab() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTab
}

// Fragment returns the last rendered markup.
func (m *Modal) Fragment() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fragment
}

// Open opens the modal for a customer and loads the default tab. An already
// open modal is closed first.
func (m *Modal) Open(customerID int64, customerName string) {
	m.mu.Lock()
	if m.state != ModalClosed {
		m.resetLocked()
	}
	m.state = ModalOpening
	m.customerID = customerID
	m.title = m.strings.CustomerDetails + ": " + customerName
	m.mu.Unlock()

	m.loadTab(DefaultTab)
}

// SwitchTab loads another tab. Switches are ignored while a tab fetch is in
// flight; callers retry once the current load settles.
func (m *Modal) SwitchTab(tab string) {
	m.mu.Lock()
	if m.state != ModalTabLoaded {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.loadTab(tab)
}

// Close dismisses the modal and resets its state. A late response from a fetch
// still in flight is dropped by the stale check.
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == ModalClosed {
		return
	}
	m.state = ModalClosing
	m.resetLocked()
}

func (m *Modal) resetLocked() {
	m.state = ModalClosed
	m.customerID = 0
	m.title = ""
	m.currentTab = ""
	m.fragment = ""
}

func (m *Modal) loadTab(tab string) {
	m.mu.Lock()
	if m.state == ModalTabLoading {
		m.mu.Unlock()
		return
	}
	m.state = ModalTabLoading
	m.currentTab = tab
	customerID := m.customerID
	m.fragment = renderNotice(m.strings.Loading)
	m.onRender(m.fragment)
	m.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		payload, err := m.api.CustomerDetails(ctx, customerID, tab)
		m.settleTab(tab, customerID, payload, err)
	}()
}

// settleTab applies a fetch result. The tab and customer must still be the
// active ones, otherwise the response is stale and gets dropped.
func (m *Modal) settleTab(tab string, customerID int64, payload *domain.DetailPayload, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != ModalTabLoading || m.currentTab != tab || m.customerID != customerID {
		return
	}

	if err != nil {
		m.fragment = renderNotice(m.strings.Error)
		m.state = ModalTabLoaded
		m.onRender(m.fragment)
		return
	}

	fragment, renderErr := renderTab(tab, payload, m.strings)
	if renderErr != nil {
		fragment = renderNotice(m.strings.Error)
	}
	m.fragment = fragment
	m.state = ModalTabLoaded
	m.onRender(m.fragment)
}
