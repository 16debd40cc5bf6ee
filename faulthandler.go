package cryptoengine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
)

// faultState is the health state of a worker pool derived from recent
// recovered panics and item faults (modeled on the tick/threshold/state
// idiom of the teacher's HSMMonitor in crypto/hsm_monitor.go, re-purposed
// here from HSM reachability to worker-goroutine stability).
type faultState int32

const (
	faultStateHealthy faultState = iota
	faultStateDegraded
)

func (s faultState) String() string {
	if s == faultStateDegraded {
		return "DEGRADED"
	}
	return "HEALTHY"
}

// faultHandler tracks recovered per-item panics across a rolling window and
// flips to a degraded state once a threshold is crossed within the window,
// logging the transition. It never stops worker goroutines itself — that
// decision belongs to the pipeline owner watching State().
type faultHandler struct {
	mu         sync.Mutex
	window     time.Duration
	threshold  int
	events     []time.Time
	state      atomic.Int32
	logger     Logger
}

func newFaultHandler(window time.Duration, threshold int, logger Logger) *faultHandler {
	return &faultHandler{window: window, threshold: threshold, logger: logger}
}

// State returns the handler's current health state.
func (h *faultHandler) State() faultState {
	return faultState(h.state.Load())
}

// Record registers a single recovered fault (panic or item-level error)
// and re-evaluates the rolling-window threshold.
func (h *faultHandler) Record(source string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	h.events = append(h.events, now)
	cutoff := now.Add(-h.window)
	kept := h.events[:0]
	for _, t := range h.events {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	h.events = kept

	current := faultState(h.state.Load())
	if current == faultStateHealthy && len(h.events) >= h.threshold {
		h.state.Store(int32(faultStateDegraded))
		if h.logger != nil {
			h.logger.Warn("worker pool entering degraded state",
				"source", source, "faultCount", len(h.events), "window", h.window.String())
		}
	}
	if h.logger != nil {
		h.logger.Debug("recovered fault", "source", source, "error", err)
	}
}

// Reset clears the rolling window and returns the handler to healthy.
func (h *faultHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = nil
	h.state.Store(int32(faultStateHealthy))
}

// recoverInto runs fn, recovering a panic into err (and recording it) so a
// single bad item cannot take down an entire worker goroutine (spec §4.5
// "continues processing subsequent items" past a per-item failure).
func (h *faultHandler) recoverInto(source string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newErr(KindBadIO, fmt.Sprintf("recovered panic in %s: %v", source, r))
			h.Record(source, err)
		}
	}()
	err = fn()
	if err != nil {
		h.Record(source, err)
	}
	return err
}

// aggregateFaults combines zero or more per-item faults from a drained
// batch into a single diagnostic error, or nil if there were none
// (grounded on go-multierror's batch-aggregation idiom).
func aggregateFaults(errs []error) error {
	var merr *multierror.Error
	for _, e := range errs {
		if e != nil {
			merr = multierror.Append(merr, e)
		}
	}
	if merr == nil {
		return nil
	}
	return merr.ErrorOrNil()
}
