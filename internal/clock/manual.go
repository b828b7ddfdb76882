package clock

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Manual is a Clock and Delayer driven entirely by Advance() calls.
// It exists for tests: countdowns and ritual delays can be stepped
// deterministically without real sleeping.
//
// Tick delivery from Advance is synchronous with respect to the manual
// clock itself: a single Advance that crosses several ticker intervals
// delivers one tick per crossed interval, in order.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
	waiters []*manualWaiter
}

// NewManual creates a Manual clock starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// NewTicker returns a ticker fed by Advance.
func (m *Manual) NewTicker(d time.Duration) Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &manualTicker{
		// Buffered so Advance never blocks when the consumer is slow;
		// matches real ticker semantics of dropping ticks on a full channel.
		ch:       make(chan time.Time, 64),
		interval: d,
		next:     m.now.Add(d),
		clock:    m,
	}
	m.tickers = append(m.tickers, t)
	return t
}

// Sleep blocks until the manual clock advances past d, or ctx is canceled.
func (m *Manual) Sleep(ctx context.Context, d time.Duration) error {
	m.mu.Lock()
	w := &manualWaiter{
		ch:       make(chan struct{}),
		deadline: m.now.Add(d),
	}
	if d <= 0 {
		m.mu.Unlock()
		return nil
	}
	m.waiters = append(m.waiters, w)
	m.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.ch:
		return nil
	}
}

// Advance moves the clock forward by d, firing any tickers and waking any
// sleepers whose deadlines are crossed. Ticks are delivered in time order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)

	// Fire ticker crossings in chronological order so interleaved tickers
	// observe a consistent timeline.
	for {
		earliest := time.Time{}
		var chosen *manualTicker
		for _, t := range m.tickers {
			if t.stopped {
				continue
			}
			if !t.next.After(target) && (chosen == nil || t.next.Before(earliest)) {
				earliest = t.next
				chosen = t
			}
		}
		if chosen == nil {
			break
		}
		m.now = chosen.next
		chosen.next = chosen.next.Add(chosen.interval)
		select {
		case chosen.ch <- m.now:
		default:
			// Consumer is behind; drop the tick like a real ticker would.
		}
	}

	m.now = target

	// Wake sleepers whose deadlines have passed, earliest first.
	sort.Slice(m.waiters, func(i, j int) bool {
		return m.waiters[i].deadline.Before(m.waiters[j].deadline)
	})
	remaining := m.waiters[:0]
	var woken []*manualWaiter
	for _, w := range m.waiters {
		if w.deadline.After(target) {
			remaining = append(remaining, w)
			continue
		}
		woken = append(woken, w)
	}
	m.waiters = remaining
	m.mu.Unlock()

	for _, w := range woken {
		close(w.ch)
	}
}

// TickerCount returns the number of live (unstopped) tickers.
// Tests use this to wait for a component to register its ticker before
// advancing the clock.
func (m *Manual) TickerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tickers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// SleeperCount returns the number of goroutines currently blocked in Sleep.
func (m *Manual) SleeperCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.waiters)
}

// manualTicker is a Ticker fed by Manual.Advance.
type manualTicker struct {
	ch       chan time.Time
	interval time.Duration
	next     time.Time
	stopped  bool
	clock    *Manual
}

func (t *manualTicker) Chan() <-chan time.Time {
	return t.ch
}

func (t *manualTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.stopped = true
}

// manualWaiter tracks one pending Sleep call.
type manualWaiter struct {
	ch       chan struct{}
	deadline time.Time
}

// Ensure Manual implements both interfaces.
var (
	_ Clock   = (*Manual)(nil)
	_ Delayer = (*Manual)(nil)
)
