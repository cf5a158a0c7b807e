package timerview

import (
	"sync"
	"time"

	"streamraiser-backend/internal/features/redeem/models"
)

// DefaultInterval is the refresh cadence while a timer is running.
const DefaultInterval = 100 * time.Millisecond

// Monitor periodically re-projects one displayed timed redeem. It ticks only
// while the timer is running; Sync must be called after any action that may
// change the running state, and Close when the timer leaves the screen so the
// goroutine is released.
type Monitor struct {
	get      func() *models.Redeem
	emit     func(Projection)
	interval time.Duration

	mu     sync.Mutex
	stop   chan struct{}
	closed bool
}

// NewMonitor wires a monitor to a record source and a sink. An interval of
// zero or less falls back to DefaultInterval.
func NewMonitor(get func() *models.Redeem, emit func(Projection), interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{get: get, emit: emit, interval: interval}
}

// Sync emits one immediate snapshot and starts or stops the periodic refresh
// to match the current running state.
func (m *Monitor) Sync() {
	r := m.get()
	if r == nil {
		m.pause()
		return
	}
	snap, err := Snapshot(r, time.Now())
	if err != nil {
		m.pause()
		return
	}
	m.emit(snap)

	if snap.IsRunning {
		m.resume()
	} else {
		m.pause()
	}
}

// Close stops any refresh permanently.
func (m *Monitor) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.pause()
}

func (m *Monitor) resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || m.stop != nil {
		return
	}
	stop := make(chan struct{})
	m.stop = stop
	go m.run(stop)
}

func (m *Monitor) pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
}

// release clears the stop channel only if it still belongs to this run, so a
// self-stopping run cannot tear down a newer one.
func (m *Monitor) release(stop chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop == stop {
		m.stop = nil
	}
}

func (m *Monitor) run(stop chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r := m.get()
			if r == nil {
				m.release(stop)
				return
			}
			snap, err := Snapshot(r, time.Now())
			if err != nil {
				m.release(stop)
				return
			}
			m.emit(snap)
			if !snap.IsRunning {
				// Stop refreshing the moment the run ends.
				m.release(stop)
				return
			}
		}
	}
}
