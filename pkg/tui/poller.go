package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entwurf/entwurf-cli/pkg/models"
)

const pollInterval = 2 * time.Second

// readinessPoller tracks the company's preprocessing status and drives
// the fixed-cadence polling loop. It never transitions the editor mode
// itself; the editor decides what a terminal status means.
//
// The generation counter makes start idempotent under overlapping
// calls: starting again orphans every tick of the previous loop.
type readinessPoller struct {
	gen      int
	checking bool
	status   models.ProcessingStatus
	interval time.Duration
}

func newReadinessPoller() readinessPoller {
	return readinessPoller{interval: pollInterval}
}

// start begins a polling loop: one immediate out-of-band check plus a
// recurring tick. Both the immediate check and the first tick fire;
// the doubled first read is harmless and keeps the loop simple.
func (p *readinessPoller) start(client Backend, companyID int) tea.Cmd {
	p.gen++
	p.checking = true
	return tea.Batch(
		checkStatusCmd(client, companyID, p.gen),
		p.tick(),
	)
}

// stop cancels the active loop unconditionally (session teardown).
func (p *readinessPoller) stop() {
	p.gen++
	p.checking = false
}

// tick schedules the next cadence message for the current loop.
func (p *readinessPoller) tick() tea.Cmd {
	gen := p.gen
	return tea.Tick(p.interval, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

// handleTick processes a cadence message: stale or stopped loops get
// nothing, a live loop probes again and re-arms.
func (p *readinessPoller) handleTick(msg pollTickMsg, client Backend, companyID int) tea.Cmd {
	if msg.gen != p.gen || !p.checking {
		return nil
	}
	return tea.Batch(
		checkStatusCmd(client, companyID, p.gen),
		p.tick(),
	)
}

// handleStatus records a probe result. On a terminal status the loop
// ends: checking drops to false and pending ticks are orphaned.
func (p *readinessPoller) handleStatus(msg statusCheckedMsg) {
	if msg.gen != p.gen {
		return
	}
	if msg.err != nil {
		// A failed probe is not a failed company; keep polling.
		return
	}
	p.status = msg.status
	if p.status.Terminal() {
		p.gen++
		p.checking = false
	}
}

// checkStatusCmd performs one readiness probe. An absent status is
// normalized to pending by the client.
func checkStatusCmd(client Backend, companyID int, gen int) tea.Cmd {
	return func() tea.Msg {
		company, err := client.GetCompany(context.Background(), companyID)
		if err != nil {
			return statusCheckedMsg{gen: gen, err: err}
		}
		return statusCheckedMsg{gen: gen, status: company.ProcessingStatus}
	}
}
