package pages

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/MrJinPro/SVOD/internal/jobs"
	"github.com/MrJinPro/SVOD/pkg/models"
)

// IntegrationPage imports reference data and archived events from the
// agency database. It keeps the payload of the last successful sync.
type IntegrationPage struct {
	// EventsLimit is the raw text of the limit field.
	EventsLimit string

	poller *jobs.Poller

	mu             sync.Mutex
	lastResult     models.SyncResult
	syncingObjects bool
	syncingEvents  bool
}

func NewIntegrationPage(p *jobs.Poller) *IntegrationPage {
	return &IntegrationPage{EventsLimit: strconv.Itoa(jobs.DefaultEventsLimit), poller: p}
}

// ParseLimit reads the limit field: non-numbers and 0 mean the default,
// everything else is clamped.
func ParseLimit(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return jobs.DefaultEventsLimit
	}
	return jobs.ClampEventsLimit(n)
}

// SyncObjects runs the objects import to completion and returns the
// message to show on success.
func (p *IntegrationPage) SyncObjects(ctx context.Context, onStarted func(jobID string)) (string, error) {
	p.setBusy(&p.syncingObjects, true)
	defer p.setBusy(&p.syncingObjects, false)

	out, err := p.poller.SyncObjects(ctx, onStarted)
	if err != nil {
		return "", err
	}
	p.setResult(out.Result)
	return jobs.ObjectsDoneMessage(out.Result), nil
}

func (p *IntegrationPage) SyncEvents(ctx context.Context) (string, error) {
	p.setBusy(&p.syncingEvents, true)
	defer p.setBusy(&p.syncingEvents, false)

	res, err := p.poller.SyncEvents(ctx, ParseLimit(p.EventsLimit))
	if err != nil {
		return "", err
	}
	p.setResult(res)
	return jobs.EventsDoneMessage(res), nil
}

func (p *IntegrationPage) setBusy(flag *bool, v bool) {
	p.mu.Lock()
	*flag = v
	p.mu.Unlock()
}

func (p *IntegrationPage) setResult(res models.SyncResult) {
	p.mu.Lock()
	p.lastResult = res
	p.mu.Unlock()
}

// Busy reports which imports are running.
func (p *IntegrationPage) Busy() (objects, events bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.syncingObjects, p.syncingEvents
}

func (p *IntegrationPage) LastResult() models.SyncResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastResult
}

// LastResultJSON pretty-prints the last result, or returns "" before any sync.
func (p *IntegrationPage) LastResultJSON() string {
	res := p.LastResult()
	if res == nil {
		return ""
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
