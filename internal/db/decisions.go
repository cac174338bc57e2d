package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-screener/internal/types"
)

// PutDecision stores one screening decision, replacing any earlier decision
// for the same candidate.
func (db *DB) PutDecision(ctx context.Context, d *types.ScreeningDecision) error {
	reasoningJSON, err := json.Marshal(d.Reasoning)
	if err != nil {
		return fmt.Errorf("failed to marshal reasoning: %w", err)
	}
	nextStepsJSON, err := json.Marshal(d.NextSteps)
	if err != nil {
		return fmt.Errorf("failed to marshal next steps: %w", err)
	}
	tagsJSON, err := json.Marshal(d.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	biasFlagsJSON, err := json.Marshal(d.BiasFlags)
	if err != nil {
		return fmt.Errorf("failed to marshal bias flags: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO screening_decisions (candidate_id, overall_score, job_match_score,
		        decision, confidence, reasoning, next_steps, tags, bias_flags,
		        cultural_fit, growth_potential, processed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (candidate_id) DO UPDATE SET
		        overall_score = $2, job_match_score = $3, decision = $4,
		        confidence = $5, reasoning = $6, next_steps = $7, tags = $8,
		        bias_flags = $9, cultural_fit = $10, growth_potential = $11,
		        processed_at = $12`,
		d.CandidateID, d.OverallScore, d.JobMatchScore, string(d.Decision),
		d.Confidence, reasoningJSON, nextStepsJSON, tagsJSON, biasFlagsJSON,
		d.CulturalFit, d.GrowthPotential, d.ProcessedAt,
	)
	if err != nil {
		return &PersistenceError{Op: "put decision", Cause: err}
	}
	return nil
}

// GetDecision retrieves the stored decision for a candidate, or nil when none
// exists.
func (db *DB) GetDecision(ctx context.Context, candidateID string) (*types.ScreeningDecision, error) {
	var d types.ScreeningDecision
	var decision string
	var reasoningJSON, nextStepsJSON, tagsJSON, biasFlagsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT candidate_id, overall_score, job_match_score, decision, confidence,
		        reasoning, next_steps, tags, bias_flags, cultural_fit,
		        growth_potential, processed_at
		 FROM screening_decisions WHERE candidate_id = $1`,
		candidateID,
	).Scan(&d.CandidateID, &d.OverallScore, &d.JobMatchScore, &decision,
		&d.Confidence, &reasoningJSON, &nextStepsJSON, &tagsJSON, &biasFlagsJSON,
		&d.CulturalFit, &d.GrowthPotential, &d.ProcessedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "get decision", Cause: err}
	}

	d.Decision = types.ParseDecision(decision)
	_ = json.Unmarshal(reasoningJSON, &d.Reasoning)
	_ = json.Unmarshal(nextStepsJSON, &d.NextSteps)
	_ = json.Unmarshal(tagsJSON, &d.Tags)
	_ = json.Unmarshal(biasFlagsJSON, &d.BiasFlags)
	return &d, nil
}

// ListDecisions returns up to limit stored decisions, most recent first. A
// non-positive limit returns everything.
func (db *DB) ListDecisions(ctx context.Context, limit int) ([]types.ScreeningDecision, error) {
	query := `SELECT candidate_id, overall_score, job_match_score, decision, confidence,
	                 reasoning, next_steps, tags, bias_flags, cultural_fit,
	                 growth_potential, processed_at
	          FROM screening_decisions ORDER BY processed_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &PersistenceError{Op: "list decisions", Cause: err}
	}
	defer rows.Close()

	var decisions []types.ScreeningDecision
	for rows.Next() {
		var d types.ScreeningDecision
		var decision string
		var reasoningJSON, nextStepsJSON, tagsJSON, biasFlagsJSON []byte
		if err := rows.Scan(&d.CandidateID, &d.OverallScore, &d.JobMatchScore,
			&decision, &d.Confidence, &reasoningJSON, &nextStepsJSON, &tagsJSON,
			&biasFlagsJSON, &d.CulturalFit, &d.GrowthPotential, &d.ProcessedAt); err != nil {
			return nil, &PersistenceError{Op: "scan decision", Cause: err}
		}
		d.Decision = types.ParseDecision(decision)
		_ = json.Unmarshal(reasoningJSON, &d.Reasoning)
		_ = json.Unmarshal(nextStepsJSON, &d.NextSteps)
		_ = json.Unmarshal(tagsJSON, &d.Tags)
		_ = json.Unmarshal(biasFlagsJSON, &d.BiasFlags)
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "list decisions", Cause: err}
	}
	return decisions, nil
}
