// Package visibility tracks whether the user is looking at the app.
//
// The terminal's focus reporting feeds the monitor: focused means visible,
// unfocused means the user is elsewhere and cues should degrade to desktop
// notifications. Terminals without focus reporting never call Set, so the
// monitor stays at its initial value.
package visibility

import "sync"

// Monitor is a concurrency-safe visibility flag with change subscription.
type Monitor struct {
	mu      sync.Mutex
	visible bool
	nextID  int
	subs    map[int]func(visible bool)
}

// NewMonitor creates a Monitor with the given initial visibility.
func NewMonitor(visible bool) *Monitor {
	return &Monitor{
		visible: visible,
		subs:    make(map[int]func(bool)),
	}
}

// Visible reports the current visibility.
func (m *Monitor) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// Set updates visibility and notifies subscribers on change. Callbacks run
// synchronously on the caller's goroutine, outside the monitor lock.
func (m *Monitor) Set(visible bool) {
	m.mu.Lock()
	if m.visible == visible {
		m.mu.Unlock()
		return
	}
	m.visible = visible
	cbs := make([]func(bool), 0, len(m.subs))
	for _, cb := range m.subs {
		cbs = append(cbs, cb)
	}
	m.mu.Unlock()

	for _, cb := range cbs {
		cb(visible)
	}
}

// OnChange registers a callback for visibility changes and returns its
// cancel function. Cancel is idempotent.
func (m *Monitor) OnChange(cb func(visible bool)) (cancel func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = cb
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}
