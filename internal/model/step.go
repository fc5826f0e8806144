package model

// StepStatus is the lifecycle state of a single pipeline step.
// Transitions are Pending -> Processing -> {Completed | Skipped} and a
// step never reverts. Evidence-source failures do not fail a step; they
// surface as degraded evidence content instead.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepProcessing StepStatus = "processing"
	StepCompleted  StepStatus = "completed"
	StepSkipped    StepStatus = "skipped"
)

// Terminal reports whether the status is final.
func (s StepStatus) Terminal() bool {
	return s == StepCompleted || s == StepSkipped
}

// AgentName identifies the logical worker that owns a step. This is a
// scheduling and attribution concept, not an AI model.
type AgentName string

const (
	AgentVerification AgentName = "verification"
	AgentPurpose      AgentName = "purpose"
)

func (a AgentName) String() string {
	switch a {
	case AgentVerification:
		return "Verification Agent"
	case AgentPurpose:
		return "Purpose Agent"
	}
	return string(a)
}

// AgentStatus is the lifecycle state of an agent.
type AgentStatus string

const (
	AgentIdle      AgentStatus = "idle"
	AgentActive    AgentStatus = "active"
	AgentCompleted AgentStatus = "completed"
	AgentFailed    AgentStatus = "failed"
)

// VerificationStep is one named unit of pipeline work. Agent ownership is
// fixed when the plan is built, never computed during execution.
type VerificationStep struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"name"`
	Agent       AgentName  `json:"agent"`
	Status      StepStatus `json:"status"`
	Result      string     `json:"result,omitempty"` // short human-readable outcome
}

// AgentState tracks one agent's position in the pipeline. Owned by the
// orchestrator; callers only ever see copies.
type AgentState struct {
	Name          AgentName   `json:"name"`
	Status        AgentStatus `json:"status"`
	CurrentStepID string      `json:"current_step_id,omitempty"`
	CurrentTask   string      `json:"current_task,omitempty"`
	Progress      int         `json:"progress"` // 0..100
}
