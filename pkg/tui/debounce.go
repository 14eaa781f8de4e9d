package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debouncer implements a trailing-edge debounce on top of tea.Tick.
// Every trigger bumps the generation; a tick that arrives carrying a
// stale generation is dropped, so only the last trigger within the
// window takes effect. cancel without retrigger orphans any pending
// tick, which is how timers are torn down on unmount.
type debouncer struct {
	gen   int
	delay time.Duration
}

// trigger schedules a new trailing tick and invalidates pending ones.
// mk builds the message delivered when the window elapses.
func (d *debouncer) trigger(mk func(gen int) tea.Msg) tea.Cmd {
	d.gen++
	gen := d.gen
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return mk(gen)
	})
}

// current reports whether a received generation is still live.
func (d *debouncer) current(gen int) bool {
	return gen == d.gen
}

// cancel invalidates any pending tick.
func (d *debouncer) cancel() {
	d.gen++
}
