package pipeline

import (
	"context"
	"errors"
	"math"
	"sync"

	"vouch/internal/model"
)

var (
	// ErrNotReady is returned by Report while a run is still executing.
	ErrNotReady = errors.New("verification still in progress")

	// ErrCancelled is returned by Report for a run that was cancelled
	// before completion.
	ErrCancelled = errors.New("verification cancelled")
)

// RunState is the coarse lifecycle of a whole run.
type RunState string

const (
	RunActive    RunState = "active"
	RunDone      RunState = "done"
	RunCancelled RunState = "cancelled"
)

// Run is the handle for one in-flight verification. All reads go through
// accessors that copy state under the run lock; the two agent goroutines
// are the only writers.
type Run struct {
	ID       string
	Request  model.VerificationRequest
	Industry model.Industry

	mu      sync.Mutex
	state   RunState
	steps   []model.VerificationStep
	agents  map[model.AgentName]*model.AgentState
	results stepResults
	report  *model.VerificationReport
	failure error

	evidence *model.EvidenceSet

	cancel  context.CancelFunc
	verDone chan struct{} // closed when the Verification agent finishes its steps
	done    chan struct{} // closed when the run reaches a final state
}

// stepResults holds intermediate products shared across steps. Written
// by whichever agent owns the producing step, read only after the
// evidence barrier.
type stepResults struct {
	compliance model.RegulatoryCompliance
	purpose    model.BusinessPurpose
	legitimacy int
	risks      []string
}

// State returns the run's coarse lifecycle state.
func (r *Run) State() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Steps returns a snapshot of all steps in plan order.
func (r *Run) Steps() []model.VerificationStep {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.VerificationStep, len(r.steps))
	copy(out, r.steps)
	return out
}

// Agents returns a snapshot of both agent states.
func (r *Run) Agents() []model.AgentState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.AgentState, 0, len(r.agents))
	for _, name := range []model.AgentName{model.AgentVerification, model.AgentPurpose} {
		if a, ok := r.agents[name]; ok {
			out = append(out, *a)
		}
	}
	return out
}

// Report returns the final report. It never blocks: callers get
// ErrNotReady while the run is active and ErrCancelled after a cancel.
func (r *Run) Report() (*model.VerificationReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.state {
	case RunCancelled:
		return nil, ErrCancelled
	case RunDone:
		if r.failure != nil {
			return nil, r.failure
		}
		return r.report, nil
	}
	return nil, ErrNotReady
}

// Cancel stops the run. In-flight steps keep their current status and
// remaining steps are never started; no report is produced. Cancelling
// a finished run is a no-op.
func (r *Run) Cancel() {
	r.cancel()
}

// Wait blocks until the run reaches a final state or ctx is done.
func (r *Run) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns a channel closed when the run reaches a final state.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

func (r *Run) stepIndex(id string) int {
	for i := range r.steps {
		if r.steps[i].ID == id {
			return i
		}
	}
	return -1
}

// setStep transitions one step and refreshes the owning agent's position
// and progress. Returns a copy of the updated step for observers.
func (r *Run) setStep(id string, status model.StepStatus, result string) model.VerificationStep {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.stepIndex(id)
	step := &r.steps[i]
	step.Status = status
	if result != "" {
		step.Result = result
	}

	agent := r.agents[step.Agent]
	if status == model.StepProcessing {
		agent.Status = model.AgentActive
		agent.CurrentStepID = step.ID
		agent.CurrentTask = step.DisplayName
	}
	owned, terminal := 0, 0
	for j := range r.steps {
		if r.steps[j].Agent != step.Agent {
			continue
		}
		owned++
		if r.steps[j].Status.Terminal() {
			terminal++
		}
	}
	if owned > 0 {
		agent.Progress = int(math.Round(float64(terminal) / float64(owned) * 100))
	}
	if terminal == owned {
		agent.Status = model.AgentCompleted
		agent.CurrentStepID = ""
		agent.CurrentTask = ""
	}
	return *step
}

func (r *Run) addEvidence(ev model.Evidence) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evidence.Add(ev)
}
