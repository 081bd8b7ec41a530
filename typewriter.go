package main

import (
	"time"

	"github.com/solarlune/gocoro"
)

// Typewriter reveals a string one rune at a time. The reveal runs as a
// coroutine stepped from the frame loop.
type Typewriter struct {
	coroutine gocoro.Coroutine
	text      []rune
	delay     time.Duration
	visible   int
	changed   bool
}

func NewTypewriter(text string, delay time.Duration) *Typewriter {
	return &Typewriter{
		text:  []rune(text),
		delay: delay,
	}
}

// Start (re)starts the reveal from an empty string. A reveal still in
// progress is stopped first.
func (t *Typewriter) Start() error {
	if t.coroutine.Running() {
		t.coroutine.Stop()
	}
	t.visible = 0
	t.changed = true
	t.coroutine = gocoro.NewCoroutine()
	return t.coroutine.Run(t.revealScript)
}

func (t *Typewriter) revealScript(exe *gocoro.Execution) {
	for t.visible < len(t.text) {
		if err := exe.YieldTime(t.delay); err != nil {
			return
		}
		if t.visible < len(t.text) {
			t.visible++
			t.changed = true
		}
	}
}

// Skip reveals the whole string.
func (t *Typewriter) Skip() {
	if t.visible != len(t.text) {
		t.visible = len(t.text)
		t.changed = true
	}
}

func (t *Typewriter) Done() bool {
	return t.visible == len(t.text)
}

// Update steps the coroutine and reports the visible prefix and whether it
// changed since the last call.
func (t *Typewriter) Update() (string, bool) {
	if t.coroutine.Running() {
		t.coroutine.Update()
	}
	changed := t.changed
	t.changed = false
	return string(t.text[:t.visible]), changed
}
