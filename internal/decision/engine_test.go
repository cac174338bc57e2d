package decision

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/assessment"
	"github.com/jonathan/resume-screener/internal/learning"
	"github.com/jonathan/resume-screener/internal/types"
)

type stubAssessor struct {
	raw *assessment.RawAssessment
	err error
}

func (s *stubAssessor) Assess(context.Context, assessment.Input) (*assessment.RawAssessment, error) {
	return s.raw, s.err
}

type captureWriter struct {
	decisions []*types.ScreeningDecision
	err       error
}

func (w *captureWriter) PutDecision(_ context.Context, d *types.ScreeningDecision) error {
	w.decisions = append(w.decisions, d)
	return w.err
}

func acceptAssessment(score float64) *assessment.RawAssessment {
	return &assessment.RawAssessment{
		OverallScore:    score,
		JobMatchScore:   score - 4,
		Decision:        types.DecisionAccept,
		Confidence:      85,
		Reasoning:       []string{"strong skills", "solid experience", "relevant education"},
		Tags:            []string{"Senior"},
		BiasFlags:       []string{},
		CulturalFit:     80,
		GrowthPotential: 75,
	}
}

func testCandidate() *types.Candidate {
	return &types.Candidate{ID: "cand_001", Name: "Sam Doe", Skills: []string{"Go"}, Experience: "7"}
}

func testJob() *types.JobRequirement {
	return &types.JobRequirement{ID: "job_001", Title: "Backend Engineer", ExperienceLevel: types.LevelSenior}
}

// Scenario A: raw score 92, accept, no matching history.
func TestDecide_AcceptWithoutHistory(t *testing.T) {
	engine := NewEngine(&stubAssessor{raw: acceptAssessment(92)}, learning.NewStore(nil), nil, nil)

	d, err := engine.Decide(context.Background(), testCandidate(), testJob(), "")
	require.NoError(t, err)

	assert.Equal(t, types.DecisionAccept, d.Decision)
	assert.Equal(t, 92.0, d.OverallScore)
	assert.Equal(t, "Schedule technical interview", d.NextSteps[0])
	assert.False(t, d.ProcessedAt.IsZero())
	// Learning baselines apply when no similar history exists.
	assert.Equal(t, 75.0, d.CulturalFit)
	assert.Equal(t, 70.0, d.GrowthPotential)
}

// Scenario C: transport error degrades to review, never propagates.
func TestDecide_InferenceErrorDegrades(t *testing.T) {
	assessor := &stubAssessor{err: &assessment.InferenceError{Kind: assessment.KindTransient, Message: "service unavailable"}}
	engine := NewEngine(assessor, learning.NewStore(nil), nil, nil)

	d, err := engine.Decide(context.Background(), testCandidate(), testJob(), "")
	require.NoError(t, err)

	assert.Equal(t, types.DecisionReview, d.Decision)
	assert.Equal(t, 0.0, d.OverallScore)
	assert.Equal(t, 0.0, d.JobMatchScore)
	assert.Equal(t, 0.0, d.Confidence)
	assert.Equal(t, []string{"Error", "Requires Review"}, d.Tags)
	require.Len(t, d.Reasoning, 1)
	assert.Contains(t, d.Reasoning[0], "Error processing candidate:")
}

func TestDecide_LearningBoostApplied(t *testing.T) {
	store := learning.NewStore([]types.LearningFeedbackRecord{
		{CandidateID: "hist", Skills: []string{"Go"}, ExperienceYears: 7, Accuracy: 0.9, ActualOutcome: "hired"},
	})
	engine := NewEngine(&stubAssessor{raw: acceptAssessment(92)}, store, nil, nil)

	d, err := engine.Decide(context.Background(), testCandidate(), testJob(), "")
	require.NoError(t, err)

	assert.Equal(t, 97.0, d.OverallScore)
	assert.Contains(t, d.Tags, learning.TagHighPotential)
}

func TestDecide_CancellationReturnsContextError(t *testing.T) {
	writer := &captureWriter{}
	assessor := &stubAssessor{err: fmt.Errorf("calling inference service: %w", context.Canceled)}
	engine := NewEngine(assessor, learning.NewStore(nil), writer, nil)

	d, err := engine.Decide(context.Background(), testCandidate(), testJob(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, d)
	assert.Empty(t, writer.decisions)
}

func TestDecide_DeadlineReturnsContextError(t *testing.T) {
	assessor := &stubAssessor{err: context.DeadlineExceeded}
	engine := NewEngine(assessor, learning.NewStore(nil), nil, nil)

	d, err := engine.Decide(context.Background(), testCandidate(), testJob(), "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, d)
}

func TestDecide_PersistsDecision(t *testing.T) {
	writer := &captureWriter{}
	engine := NewEngine(&stubAssessor{raw: acceptAssessment(70)}, learning.NewStore(nil), writer, nil)

	d, err := engine.Decide(context.Background(), testCandidate(), testJob(), "")
	require.NoError(t, err)
	require.Len(t, writer.decisions, 1)
	assert.Equal(t, d, writer.decisions[0])
}

func TestDecide_PersistenceErrorReturnsDecision(t *testing.T) {
	writer := &captureWriter{err: errors.New("connection refused")}
	engine := NewEngine(&stubAssessor{raw: acceptAssessment(70)}, learning.NewStore(nil), writer, nil)

	d, err := engine.Decide(context.Background(), testCandidate(), testJob(), "")
	require.Error(t, err)
	require.NotNil(t, d)
	assert.Equal(t, types.DecisionAccept, d.Decision)
}

func TestNextStepsFor_AllDecisions(t *testing.T) {
	assert.Len(t, nextStepsFor(types.DecisionAccept), 4)
	assert.Len(t, nextStepsFor(types.DecisionInterview), 4)
	assert.Len(t, nextStepsFor(types.DecisionReview), 4)
	assert.Len(t, nextStepsFor(types.DecisionReject), 4)
	assert.Equal(t, []string{"Manual review required"}, nextStepsFor(types.Decision("unknown")))
}
