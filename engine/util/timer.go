package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TimerState accumulates the durations of one named section in milliseconds.
type TimerState struct {
	name           string
	lastDuration   float64
	totalDuration  float64
	executionCount int64
	minDuration    float64
	maxDuration    float64
}

func newTimerState(name string) *TimerState {
	return &TimerState{name: name, minDuration: math.MaxFloat64}
}

func (t *TimerState) add(durationInMS float64) {
	t.lastDuration = durationInMS
	t.totalDuration += durationInMS
	t.executionCount++
	t.minDuration = math.Min(t.minDuration, durationInMS)
	t.maxDuration = math.Max(t.maxDuration, durationInMS)
}

func (t *TimerState) Count() int64 {
	return t.executionCount
}

func (t *TimerState) Average() float64 {
	if t.executionCount == 0 {
		return 0
	}
	return t.totalDuration / float64(t.executionCount)
}

func (t *TimerState) Max() float64 {
	return t.maxDuration
}

func (t *TimerState) String() string {
	return fmt.Sprintf("%s %.2fms (avg %.2f, max %.2f)", t.name, t.lastDuration, t.Average(), t.maxDuration)
}

// Timer measures named sections, for example text layout and upload per frame.
type Timer struct {
	states     map[string]*TimerState
	timerNames []string
	now        func() time.Time
}

func NewTimer() *Timer {
	return &Timer{
		states: make(map[string]*TimerState),
		now:    time.Now,
	}
}

// GetState returns the section name, or nil before its first Start.
func (t *Timer) GetState(name string) *TimerState {
	return t.states[name]
}

func (t *Timer) Reset() {
	for _, name := range t.timerNames {
		t.states[name] = newTimerState(name)
	}
}

// String lists the sections in the order they were first started.
func (t *Timer) String() string {
	parts := make([]string, 0, len(t.timerNames))
	for _, name := range t.timerNames {
		parts = append(parts, t.states[name].String())
	}
	return strings.Join(parts, "  ")
}

// Start begins measuring name and returns the function that ends the
// measurement and reports its duration in milliseconds.
func (t *Timer) Start(name string) func() float64 {
	state, ok := t.states[name]
	if !ok {
		t.timerNames = append(t.timerNames, name)
		state = newTimerState(name)
		t.states[name] = state
	}
	start := t.now()
	return func() float64 {
		durationInMS := float64(t.now().Sub(start).Microseconds()) / 1000.0
		state.add(durationInMS)
		return durationInMS
	}
}
