// Package decision combines raw inference output, learning adjustment, and
// bias screening into the final ScreeningDecision for a candidate.
package decision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/assessment"
	"github.com/jonathan/resume-screener/internal/learning"
	"github.com/jonathan/resume-screener/internal/types"
)

// Assessor produces a raw assessment for one candidate. Satisfied by
// *assessment.Adapter.
type Assessor interface {
	Assess(ctx context.Context, in assessment.Input) (*assessment.RawAssessment, error)
}

// Writer persists finished decisions. Satisfied by *db.Store.
type Writer interface {
	PutDecision(ctx context.Context, d *types.ScreeningDecision) error
}

// Engine orchestrates one candidate through inference and learning
// adjustment. Every candidate that runs to completion yields exactly one
// decision record, degraded if necessary; only context cancellation leaves
// a candidate without one.
type Engine struct {
	assessor Assessor
	store    *learning.Store
	writer   Writer
	logger   *zap.Logger
	now      func() time.Time
}

// NewEngine creates a decision engine. writer may be nil when persistence is
// not configured; logger may be nil.
func NewEngine(assessor Assessor, store *learning.Store, writer Writer, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		assessor: assessor,
		store:    store,
		writer:   writer,
		logger:   logger,
		now:      time.Now,
	}
}

// Decide produces the ScreeningDecision for one candidate. Inference
// failures degrade to a review decision instead of propagating, so the
// decision is non-nil unless the context was cancelled; a cancelled context
// returns its error and nothing is persisted. Any other non-nil error is a
// persistence failure and the in-memory decision remains valid.
func (e *Engine) Decide(ctx context.Context, candidate *types.Candidate, job *types.JobRequirement, intakeText string) (*types.ScreeningDecision, error) {
	raw, err := e.assessor.Assess(ctx, assessment.Input{
		Candidate:        candidate,
		Job:              job,
		IntakeText:       intakeText,
		LearningPatterns: e.store.Patterns(),
	})

	var result *types.ScreeningDecision
	if err != nil {
		// A cancelled batch is not a failed candidate. Let the orchestrator
		// record the outcome instead of persisting an error decision.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		e.logger.Warn("inference failed, emitting degraded decision",
			zap.String("candidate_id", candidate.ID),
			zap.Error(err),
		)
		result = e.degradedDecision(candidate, err)
	} else {
		adjusted := e.store.Adjust(candidate, raw)
		result = &types.ScreeningDecision{
			CandidateID:     candidate.ID,
			OverallScore:    adjusted.OverallScore,
			JobMatchScore:   adjusted.JobMatchScore,
			Decision:        adjusted.Decision,
			Confidence:      adjusted.Confidence,
			Reasoning:       adjusted.Reasoning,
			NextSteps:       nextStepsFor(adjusted.Decision),
			Tags:            adjusted.Tags,
			BiasFlags:       adjusted.BiasFlags,
			CulturalFit:     adjusted.CulturalFit,
			GrowthPotential: adjusted.GrowthPotential,
			ProcessedAt:     e.now().UTC(),
		}
	}

	if e.writer != nil {
		if err := e.writer.PutDecision(ctx, result); err != nil {
			return result, fmt.Errorf("persisting decision for candidate %s: %w", candidate.ID, err)
		}
	}
	return result, nil
}

// degradedDecision is the single edge-case policy: score 0, review, and an
// explanatory reasoning entry.
func (e *Engine) degradedDecision(candidate *types.Candidate, cause error) *types.ScreeningDecision {
	return &types.ScreeningDecision{
		CandidateID:     candidate.ID,
		OverallScore:    0,
		JobMatchScore:   0,
		Decision:        types.DecisionReview,
		Confidence:      0,
		Reasoning:       []string{fmt.Sprintf("Error processing candidate: %v", cause)},
		NextSteps:       []string{"Manual review required", "Check data quality"},
		Tags:            []string{"Error", "Requires Review"},
		BiasFlags:       []string{},
		CulturalFit:     0,
		GrowthPotential: 0,
		ProcessedAt:     e.now().UTC(),
	}
}
