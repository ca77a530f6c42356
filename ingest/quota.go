// Package ingest implements the ingestion core: channel resolution, the
// uploads-feed walker, batched detail hydration, the orchestrator that ties
// them to the store, and the keyword search path.
package ingest

import (
	"sync"

	"github.com/researchaccelerator-hub/youtube-tracker/errs"
	"github.com/researchaccelerator-hub/youtube-tracker/telemetry"
)

// Quota unit costs per Data API method.
const (
	CostSearch        = 100
	CostChannels      = 1
	CostPlaylistItems = 1
	CostVideos        = 1
)

// QuotaTracker enforces a unit budget across the API calls of this process.
// It is passed through the call chain rather than held as package state, and
// checks the budget before spending so a call that would overshoot is never
// issued.
type QuotaTracker struct {
	mu     sync.Mutex
	budget int
	spent  int
}

// NewQuotaTracker returns a tracker with the given unit budget. A budget of
// zero or less disables enforcement.
func NewQuotaTracker(budget int) *QuotaTracker {
	return &QuotaTracker{budget: budget}
}

// Spend records cost units, failing with a quota error when the budget
// would be exceeded.
func (t *QuotaTracker) Spend(cost int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.budget > 0 && t.spent+cost > t.budget {
		return errs.QuotaExceededf("quota budget exceeded: %d spent, %d requested, %d budget", t.spent, cost, t.budget)
	}
	t.spent += cost
	telemetry.QuotaUnitsSpent.Add(float64(cost))
	return nil
}

// Spent returns the units spent so far.
func (t *QuotaTracker) Spent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.spent
}
