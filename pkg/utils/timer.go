package utils

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one timed step of a pipeline.
type Phase struct {
	Name     string
	Duration time.Duration
}

// PhaseTimer times a single phase. Stop is safe to call more than once.
type PhaseTimer struct {
	timer *Timer
	index int
	start time.Time
	once  sync.Once
}

// Stop records the phase duration and returns it.
func (pt *PhaseTimer) Stop() time.Duration {
	pt.once.Do(func() {
		d := pt.timer.clock.Since(pt.start)
		pt.timer.mu.Lock()
		pt.timer.phases[pt.index].Duration = d
		pt.timer.mu.Unlock()
	})
	pt.timer.mu.Lock()
	defer pt.timer.mu.Unlock()
	return pt.timer.phases[pt.index].Duration
}

// Timer records the phases of one pipeline run in start order.
type Timer struct {
	mu     sync.Mutex
	name   string
	clock  Clock
	start  time.Time
	phases []Phase
	logger Logger
}

// TimerOption configures a Timer instance.
type TimerOption func(*Timer)

// WithLogger sets the logger that PrintSummary writes to at debug level.
func WithLogger(logger Logger) TimerOption {
	return func(t *Timer) {
		t.logger = logger
	}
}

// WithClock sets a custom clock for testability.
func WithClock(clock Clock) TimerOption {
	return func(t *Timer) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// NewTimer creates a new Timer with the given name and options.
func NewTimer(name string, opts ...TimerOption) *Timer {
	t := &Timer{
		name:   name,
		clock:  NewRealClock(),
		phases: make([]Phase, 0, 4),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.start = t.clock.Now()
	return t
}

// Start starts timing a new phase.
func (t *Timer) Start(name string) *PhaseTimer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name})
	return &PhaseTimer{timer: t, index: len(t.phases) - 1, start: t.clock.Now()}
}

// Phases returns a copy of the recorded phases in start order.
func (t *Timer) Phases() []Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Phase(nil), t.phases...)
}

// Durations returns phase durations keyed by name. A repeated phase name
// accumulates.
func (t *Timer) Durations() map[string]time.Duration {
	out := make(map[string]time.Duration)
	for _, p := range t.Phases() {
		out[p.Name] += p.Duration
	}
	return out
}

// Total returns the time elapsed since the timer was created.
func (t *Timer) Total() time.Duration {
	return t.clock.Since(t.start)
}

// Summary formats the phases on one line, e.g. "load: parse=3ms decode=1ms".
func (t *Timer) Summary() string {
	var sb strings.Builder
	sb.WriteString(t.name)
	sb.WriteString(":")
	for _, p := range t.Phases() {
		fmt.Fprintf(&sb, " %s=%v", p.Name, p.Duration)
	}
	return sb.String()
}

// PrintSummary logs the summary at debug level when a logger is set.
func (t *Timer) PrintSummary() {
	if t.logger == nil {
		return
	}
	t.logger.Debug("%s total=%v", t.Summary(), t.Total())
}
