package offline

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Listener is invoked when connectivity returns after an offline period.
type Listener func()

// Monitor tracks reachability of the sync endpoint and notifies listeners
// when connectivity is regained. Repeated reports of the same state are
// collapsed; listeners fire only on the offline-to-online edge.
type Monitor struct {
	mu           sync.Mutex
	online       bool
	lastOnlineAt time.Time
	listeners    map[string]Listener
	logger       *zap.Logger
}

// NewMonitor creates a monitor in the given initial state.
func NewMonitor(initiallyOnline bool, logger *zap.Logger) *Monitor {
	m := &Monitor{
		online:    initiallyOnline,
		listeners: make(map[string]Listener),
		logger:    logger,
	}
	if initiallyOnline {
		m.lastOnlineAt = time.Now()
	}
	return m
}

// Online reports whether the monitor currently considers the network up.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// LastOnlineAt returns the time of the most recent transition to online.
// The zero time means the monitor has never been online.
func (m *Monitor) LastOnlineAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastOnlineAt
}

// Subscribe registers a named listener fired on every offline-to-online
// transition. Registering the same name again replaces the listener.
func (m *Monitor) Subscribe(name string, fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners[name] = fn
}

// Unsubscribe removes a named listener.
func (m *Monitor) Unsubscribe(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.listeners, name)
}

// HandleOnline records that connectivity is available. Listeners run
// outside the lock so they may call back into the monitor.
func (m *Monitor) HandleOnline() {
	m.mu.Lock()
	if m.online {
		m.mu.Unlock()
		return
	}
	m.online = true
	m.lastOnlineAt = time.Now()
	fns := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	m.logger.Info("connectivity regained", zap.Int("listeners", len(fns)))
	for _, fn := range fns {
		fn()
	}
}

// HandleOffline records that connectivity is lost.
func (m *Monitor) HandleOffline() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.online {
		return
	}
	m.online = false
	m.logger.Info("connectivity lost")
}
