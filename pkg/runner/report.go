package runner

import (
	"time"

	"github.com/aretw0/sitepush/pkg/domain"
)

// StepStatus is the outcome of one planned writer.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
	StepSkipped   StepStatus = "skipped"
)

// Step records one planned writer.
type Step struct {
	Domain   domain.Domain
	Status   StepStatus
	Started  time.Time
	Duration time.Duration
	Err      error
}

// Report describes what a run did. Steps follow plan order.
type Report struct {
	RunID    string
	URI      string
	State    State
	Steps    []Step
	Started  time.Time
	Finished time.Time
	Err      error
}

func newReport(runID, uri string, planned []domain.Domain) *Report {
	steps := make([]Step, len(planned))
	for i, d := range planned {
		steps[i] = Step{Domain: d, Status: StepPending}
	}
	return &Report{
		RunID:   runID,
		URI:     uri,
		State:   StateRunning,
		Steps:   steps,
		Started: time.Now(),
	}
}

func (r *Report) clone() *Report {
	if r == nil {
		return nil
	}
	out := *r
	out.Steps = append([]Step(nil), r.Steps...)
	return &out
}

func (r *Report) filter(status ...StepStatus) []domain.Domain {
	var out []domain.Domain
	for _, s := range r.Steps {
		for _, want := range status {
			if s.Status == want {
				out = append(out, s.Domain)
				break
			}
		}
	}
	return out
}

// Attempted returns the domains whose writer was invoked.
func (r *Report) Attempted() []domain.Domain {
	return r.filter(StepSucceeded, StepFailed)
}

// Succeeded returns the domains written successfully.
func (r *Report) Succeeded() []domain.Domain {
	return r.filter(StepSucceeded)
}

// Skipped returns the planned domains never invoked.
func (r *Report) Skipped() []domain.Domain {
	return r.filter(StepSkipped, StepPending)
}

// Failed returns the domain that stopped the run, if any.
func (r *Report) Failed() (domain.Domain, bool) {
	failed := r.filter(StepFailed)
	if len(failed) == 0 {
		return "", false
	}
	return failed[0], true
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.Finished.IsZero() {
		return time.Since(r.Started)
	}
	return r.Finished.Sub(r.Started)
}
