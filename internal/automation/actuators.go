package automation

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-screener/internal/types"
)

// Emailer delivers one templated email. Each call is a single idempotent
// notification; the engine never assumes delivery is transactional with
// other actuator calls.
type Emailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// ATSUpdater pushes a status change to the external applicant tracking
// system.
type ATSUpdater interface {
	UpdateStatus(ctx context.Context, candidateID, status string, metadata map[string]any) error
}

// Scheduler books an interview slot for a candidate.
type Scheduler interface {
	ScheduleInterview(ctx context.Context, candidateID string, params InterviewParams) error
}

// CandidateUpdater mutates the stored candidate record (tags and stage).
type CandidateUpdater interface {
	AddTag(ctx context.Context, candidateID, tag string) error
	MoveStage(ctx context.Context, candidateID, stage string) error
}

// InterviewParams describes one interview to schedule.
type InterviewParams struct {
	Type         string `json:"type"`
	ScheduledFor string `json:"scheduled_for,omitempty"`
	Interviewer  string `json:"interviewer,omitempty"`
}

// Actuators bundles the collaborators actions dispatch to. Any nil field
// makes the corresponding action type fail with an ActionExecutionError
// instead of panicking.
type Actuators struct {
	Email     Emailer
	ATS       ATSUpdater
	Calendar  Scheduler
	Candidate CandidateUpdater
}

// ActionExecutionError records one failed actuator call. Action failures are
// never fatal to a batch; they are attached to the action's audit entry.
type ActionExecutionError struct {
	RuleID     string
	ActionType types.ActionType
	Cause      error
}

func (e *ActionExecutionError) Error() string {
	return fmt.Sprintf("action %s of rule %s failed: %v", e.ActionType, e.RuleID, e.Cause)
}

func (e *ActionExecutionError) Unwrap() error {
	return e.Cause
}
