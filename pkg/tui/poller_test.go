package tui

import (
	"errors"
	"testing"

	"github.com/entwurf/entwurf-cli/pkg/models"
)

func TestPollerTerminalStatusStopsPolling(t *testing.T) {
	tests := []struct {
		name   string
		status models.ProcessingStatus
	}{
		{"done", models.StatusDone},
		{"failed", models.StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{company: models.Company{ID: 3, ProcessingStatus: tt.status}}
			p := newReadinessPoller()
			p.gen++ // as start() would, without scheduling real ticks
			p.checking = true
			liveGen := p.gen

			p.handleStatus(statusCheckedMsg{gen: liveGen, status: tt.status})

			if p.checking {
				t.Error("checking still true after terminal status")
			}
			if p.status != tt.status {
				t.Errorf("status = %q, want %q", p.status, tt.status)
			}

			// A tick from the finished loop must not probe again.
			if cmd := p.handleTick(pollTickMsg{gen: liveGen}, backend, 3); cmd != nil {
				t.Error("tick after terminal status scheduled another probe")
			}
			if backend.probes != 0 {
				t.Errorf("network probes after terminal status: %d", backend.probes)
			}
		})
	}
}

func TestPollerNonTerminalKeepsChecking(t *testing.T) {
	p := newReadinessPoller()
	p.gen++
	p.checking = true

	p.handleStatus(statusCheckedMsg{gen: p.gen, status: models.StatusProcessing})
	if !p.checking {
		t.Error("checking dropped on a non-terminal status")
	}

	backend := &fakeBackend{company: models.Company{ID: 3, ProcessingStatus: models.StatusProcessing}}
	if cmd := p.handleTick(pollTickMsg{gen: p.gen}, backend, 3); cmd == nil {
		t.Error("live tick did not re-arm the loop")
	}
}

func TestPollerStaleGenerationIsIgnored(t *testing.T) {
	p := newReadinessPoller()
	p.gen++
	p.checking = true
	stale := p.gen

	// Restart: the previous loop's messages are orphaned.
	p.gen++

	p.handleStatus(statusCheckedMsg{gen: stale, status: models.StatusDone})
	if !p.checking {
		t.Error("stale status message stopped the live loop")
	}
	if p.status == models.StatusDone {
		t.Error("stale status message was recorded")
	}

	backend := &fakeBackend{}
	if cmd := p.handleTick(pollTickMsg{gen: stale}, backend, 3); cmd != nil {
		t.Error("stale tick re-armed the loop")
	}
}

func TestPollerProbeErrorKeepsPolling(t *testing.T) {
	p := newReadinessPoller()
	p.gen++
	p.checking = true

	p.handleStatus(statusCheckedMsg{gen: p.gen, err: errors.New("probe failed")})
	if !p.checking {
		t.Error("transient probe error ended the loop")
	}
}

func TestPollerStopIsUnconditional(t *testing.T) {
	p := newReadinessPoller()
	p.gen++
	p.checking = true
	old := p.gen

	p.stop()
	if p.checking {
		t.Error("stop left checking true")
	}
	backend := &fakeBackend{}
	if cmd := p.handleTick(pollTickMsg{gen: old}, backend, 3); cmd != nil {
		t.Error("tick after stop re-armed the loop")
	}
}
