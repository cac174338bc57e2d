package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-screener/internal/automation"
)

// ActuatorStore records automation side effects in the database. It stands in
// for the external email, ATS, and calendar systems: every action lands as an
// audit row that downstream integrations drain asynchronously.
type ActuatorStore struct {
	db *DB
}

func NewActuatorStore(db *DB) *ActuatorStore {
	return &ActuatorStore{db: db}
}

// Actuators returns an actuator bundle backed entirely by this store.
func (s *ActuatorStore) Actuators() automation.Actuators {
	return automation.Actuators{
		Email:     s,
		ATS:       s,
		Calendar:  s,
		Candidate: s,
	}
}

// SendEmail queues one outbound email.
func (s *ActuatorStore) SendEmail(ctx context.Context, to, subject, body string) error {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO outbound_emails (recipient, subject, body, status)
		 VALUES ($1, $2, $3, 'queued')`,
		to, subject, body,
	)
	if err != nil {
		return &PersistenceError{Op: "queue email", Cause: err}
	}
	return nil
}

// UpdateStatus records an ATS status push for a candidate.
func (s *ActuatorStore) UpdateStatus(ctx context.Context, candidateID, status string, metadata map[string]any) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal ats metadata: %w", err)
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO ats_updates (candidate_id, status, metadata)
		 VALUES ($1, $2, $3)`,
		candidateID, status, metadataJSON,
	)
	if err != nil {
		return &PersistenceError{Op: "record ats update", Cause: err}
	}
	return nil
}

// ScheduleInterview records one interview booking request.
func (s *ActuatorStore) ScheduleInterview(ctx context.Context, candidateID string, params automation.InterviewParams) error {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO interviews (candidate_id, interview_type, scheduled_for, interviewer, status)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), 'requested')`,
		candidateID, params.Type, params.ScheduledFor, params.Interviewer,
	)
	if err != nil {
		return &PersistenceError{Op: "schedule interview", Cause: err}
	}
	return nil
}

// AddTag attaches a tag to a candidate. Duplicate tags are ignored.
func (s *ActuatorStore) AddTag(ctx context.Context, candidateID, tag string) error {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO candidate_tags (candidate_id, tag)
		 VALUES ($1, $2)
		 ON CONFLICT (candidate_id, tag) DO NOTHING`,
		candidateID, tag,
	)
	if err != nil {
		return &PersistenceError{Op: "add tag", Cause: err}
	}
	return nil
}

// MoveStage records a lifecycle stage change for a candidate.
func (s *ActuatorStore) MoveStage(ctx context.Context, candidateID, stage string) error {
	_, err := s.db.pool.Exec(ctx,
		`UPDATE candidates SET status = $1, updated_at = NOW() WHERE id = $2`,
		stage, candidateID,
	)
	if err != nil {
		return &PersistenceError{Op: "move stage", Cause: err}
	}
	return nil
}
