package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-screener/internal/types"
)

// AppendFeedback stores one learning feedback record. Records are append-only;
// there is no update path.
func (db *DB) AppendFeedback(ctx context.Context, record *types.LearningFeedbackRecord) error {
	skillsJSON, err := json.Marshal(record.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	areasJSON, err := json.Marshal(record.ImprovementAreas)
	if err != nil {
		return fmt.Errorf("failed to marshal improvement areas: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO learning_feedback (candidate_id, skills, experience_years,
		        predicted_outcome, actual_outcome, accuracy, improvement_areas, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		record.CandidateID, skillsJSON, record.ExperienceYears,
		record.PredictedOutcome, record.ActualOutcome, record.Accuracy,
		areasJSON, record.CreatedAt,
	)
	if err != nil {
		return &PersistenceError{Op: "append feedback", Cause: err}
	}
	return nil
}

// ListFeedback returns all learning feedback records in insertion order, used
// to seed the in-memory learning store at startup.
func (db *DB) ListFeedback(ctx context.Context) ([]types.LearningFeedbackRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT candidate_id, skills, experience_years, predicted_outcome,
		        actual_outcome, accuracy, improvement_areas, created_at
		 FROM learning_feedback ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "list feedback", Cause: err}
	}
	defer rows.Close()

	var records []types.LearningFeedbackRecord
	for rows.Next() {
		var r types.LearningFeedbackRecord
		var skillsJSON, areasJSON []byte
		if err := rows.Scan(&r.CandidateID, &skillsJSON, &r.ExperienceYears,
			&r.PredictedOutcome, &r.ActualOutcome, &r.Accuracy, &areasJSON,
			&r.CreatedAt); err != nil {
			return nil, &PersistenceError{Op: "scan feedback", Cause: err}
		}
		_ = json.Unmarshal(skillsJSON, &r.Skills)
		_ = json.Unmarshal(areasJSON, &r.ImprovementAreas)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "list feedback", Cause: err}
	}
	return records, nil
}
