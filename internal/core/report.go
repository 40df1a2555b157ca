package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// Outcome is the per-item result of a reconciliation.
type Outcome string

const (
	OutcomeSatisfied Outcome = "satisfied" // already in desired state
	OutcomeChanged   Outcome = "changed"   // corrective action applied
	OutcomeFailed    Outcome = "failed"    // action attempted, failed
	OutcomeSkipped   Outcome = "skipped"   // condition not met
)

// ReportItem records the outcome of a single descriptor.
type ReportItem struct {
	Type    string
	Name    string
	Outcome Outcome
	Message string
	Diff    string
	Err     error
}

// Report collects the outcomes of one reconciliation run. A failed item
// never aborts the run; callers inspect Err() afterwards.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Items      []ReportItem
}

func NewReport() *Report {
	return &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}
}

func (r *Report) Add(item ReportItem) {
	r.Items = append(r.Items, item)
}

func (r *Report) Finish() {
	r.FinishedAt = time.Now()
}

// Count returns how many items ended with the given outcome.
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, item := range r.Items {
		if item.Outcome == outcome {
			n++
		}
	}
	return n
}

// Changed reports whether any item mutated the system.
func (r *Report) Changed() bool {
	return r.Count(OutcomeChanged) > 0
}

// Err aggregates the errors of all failed items, nil when clean.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, item := range r.Items {
		if item.Outcome != OutcomeFailed {
			continue
		}
		err := item.Err
		if err == nil {
			err = fmt.Errorf("%s %s failed", item.Type, item.Name)
		}
		result = multierror.Append(result, fmt.Errorf("[%s] %s: %w", item.Type, item.Name, err))
	}
	return result.ErrorOrNil()
}
