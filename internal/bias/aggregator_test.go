package bias

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-screener/internal/types"
)

func TestReport_ZeroDecisions(t *testing.T) {
	report := Report(nil)

	assert.Zero(t, report.OverallBiasScore)
	assert.Zero(t, report.GenderBias)
	assert.Zero(t, report.AgeBias)
	assert.Zero(t, report.EducationBias)
	assert.Zero(t, report.FlaggedDecisions)
	assert.Empty(t, report.Recommendations)
}

func TestReport_CountsFlaggedDecisions(t *testing.T) {
	decisions := []types.ScreeningDecision{
		{CandidateID: "cand_001", BiasFlags: []string{"Possible gender bias in language"}},
		{CandidateID: "cand_002", BiasFlags: []string{}},
		{CandidateID: "cand_003", BiasFlags: []string{"Age-related phrasing", "Education pedigree weighting"}},
		{CandidateID: "cand_004"},
	}

	report := Report(decisions)

	assert.Equal(t, 2, report.FlaggedDecisions)
	assert.InDelta(t, 0.5, report.OverallBiasScore, 1e-9)
	assert.InDelta(t, 0.25, report.GenderBias, 1e-9)
	assert.InDelta(t, 0.25, report.AgeBias, 1e-9)
	assert.InDelta(t, 0.25, report.EducationBias, 1e-9)
}

func TestReport_RecommendationsForElevatedDimensions(t *testing.T) {
	decisions := []types.ScreeningDecision{
		{CandidateID: "cand_001", BiasFlags: []string{"gender", "age", "education"}},
		{CandidateID: "cand_002"},
	}

	report := Report(decisions)

	assert.Contains(t, report.Recommendations, "Review education requirements - may be too restrictive")
	assert.Contains(t, report.Recommendations, "Consider blind resume screening for initial rounds")
	assert.Contains(t, report.Recommendations, "Diversify interview panel composition")
	assert.Contains(t, report.Recommendations, "Audit flagged decisions manually before acting on them")
}

func TestReport_NoRecommendationsWhenClean(t *testing.T) {
	decisions := make([]types.ScreeningDecision, 20)
	for i := range decisions {
		decisions[i].CandidateID = "cand"
	}

	report := Report(decisions)
	assert.Empty(t, report.Recommendations)
	assert.Zero(t, report.FlaggedDecisions)
}

func TestMetrics_MergesSources(t *testing.T) {
	decisions := []types.ScreeningDecision{
		{CandidateID: "cand_001", BiasFlags: []string{"gender"}},
		{CandidateID: "cand_002"},
	}
	learning := types.PerformanceMetrics{AccuracyRate: 0.82, HiringSuccessRate: 0.4}

	metrics := Metrics(decisions, learning, 1500*time.Millisecond)

	assert.Equal(t, 2, metrics.TotalScreened)
	assert.InDelta(t, 0.82, metrics.AccuracyRate, 1e-9)
	assert.InDelta(t, 0.4, metrics.HiringSuccessRate, 1e-9)
	assert.InDelta(t, 1500, metrics.AvgProcessingTime, 1e-9)
	assert.InDelta(t, 0.5, metrics.BiasScore, 1e-9)
}
