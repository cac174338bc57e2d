package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-screener/internal/assessment"
	"github.com/jonathan/resume-screener/internal/types"
)

func feedbackRecord(skills []string, years int, accuracy float64, outcome string) types.LearningFeedbackRecord {
	return types.LearningFeedbackRecord{
		CandidateID:     "hist_001",
		Skills:          skills,
		ExperienceYears: years,
		ActualOutcome:   outcome,
		Accuracy:        accuracy,
	}
}

func TestAdjustmentFor_NoHistoryUsesBaselines(t *testing.T) {
	store := NewStore(nil)
	candidate := &types.Candidate{Skills: []string{"Go"}, Experience: "5"}

	adj := store.AdjustmentFor(candidate)

	assert.Equal(t, 0.0, adj.ScoreDelta)
	assert.Equal(t, 0.0, adj.MatchDelta)
	assert.Equal(t, 75.0, adj.CulturalFit)
	assert.Equal(t, 70.0, adj.GrowthPotential)
	assert.Empty(t, adj.AdditionalTags)
	assert.Empty(t, adj.BiasFlags)
}

func TestAdjustmentFor_HighAccuracyBoostsScores(t *testing.T) {
	store := NewStore([]types.LearningFeedbackRecord{
		feedbackRecord([]string{"Go", "PostgreSQL"}, 5, 0.9, "hired"),
		feedbackRecord([]string{"Go", "PostgreSQL"}, 5, 0.9, "hired"),
		feedbackRecord([]string{"Go", "PostgreSQL"}, 6, 0.9, "hired"),
	})
	candidate := &types.Candidate{Skills: []string{"Go", "PostgreSQL"}, Experience: "5 years"}

	adj := store.AdjustmentFor(candidate)

	assert.Equal(t, 5.0, adj.ScoreDelta)
	assert.Equal(t, 3.0, adj.MatchDelta)
	assert.Contains(t, adj.AdditionalTags, TagHighPotential)
	assert.Empty(t, adj.BiasFlags)
	// 75 + (0.9-0.7)*50 = 85, 70 + (0.9-0.7)*60 = 82
	assert.InDelta(t, 85.0, adj.CulturalFit, 0.001)
	assert.InDelta(t, 82.0, adj.GrowthPotential, 0.001)
}

func TestAdjustmentFor_LowAccuracyPenalizesAndFlags(t *testing.T) {
	store := NewStore([]types.LearningFeedbackRecord{
		feedbackRecord([]string{"Go", "PostgreSQL"}, 5, 0.4, "rejected"),
	})
	candidate := &types.Candidate{Skills: []string{"Go", "PostgreSQL"}, Experience: "5"}

	adj := store.AdjustmentFor(candidate)

	assert.Equal(t, -5.0, adj.ScoreDelta)
	assert.Equal(t, -3.0, adj.MatchDelta)
	assert.Contains(t, adj.BiasFlags, FlagReviewForBias)
	assert.Empty(t, adj.AdditionalTags)
}

func TestAdjustmentFor_DissimilarHistoryIgnored(t *testing.T) {
	store := NewStore([]types.LearningFeedbackRecord{
		feedbackRecord([]string{"Figma", "Illustrator"}, 2, 0.9, "hired"),
	})
	candidate := &types.Candidate{Skills: []string{"Go", "PostgreSQL"}, Experience: "8"}

	adj := store.AdjustmentFor(candidate)

	assert.Equal(t, 0, adj.SimilarRecords)
	assert.Equal(t, 0.0, adj.ScoreDelta)
}

func TestAdjust_CapsAtHundred(t *testing.T) {
	store := NewStore([]types.LearningFeedbackRecord{
		feedbackRecord([]string{"Go"}, 5, 0.9, "hired"),
	})
	candidate := &types.Candidate{Skills: []string{"Go"}, Experience: "5"}
	raw := &assessment.RawAssessment{OverallScore: 98, JobMatchScore: 99, Tags: []string{}, BiasFlags: []string{}}

	adjusted := store.Adjust(candidate, raw)

	assert.Equal(t, 100.0, adjusted.OverallScore)
	assert.Equal(t, 100.0, adjusted.JobMatchScore)
	// Input untouched
	assert.Equal(t, 98.0, raw.OverallScore)
}

func TestAdjust_MergesTagsWithoutDuplicates(t *testing.T) {
	store := NewStore([]types.LearningFeedbackRecord{
		feedbackRecord([]string{"Go"}, 5, 0.9, "hired"),
	})
	candidate := &types.Candidate{Skills: []string{"Go"}, Experience: "5"}
	raw := &assessment.RawAssessment{Tags: []string{"Senior", TagHighPotential}, BiasFlags: []string{}}

	adjusted := store.Adjust(candidate, raw)

	assert.Equal(t, []string{"Senior", TagHighPotential}, adjusted.Tags)
}

func TestAddFeedback_RecomputesMetrics(t *testing.T) {
	store := NewStore(nil)

	store.AddFeedback(feedbackRecord([]string{"Go"}, 5, 0.8, "hired"))
	store.AddFeedback(feedbackRecord([]string{"Go"}, 3, 0.6, "rejected"))

	accuracy, success := store.Metrics()
	assert.InDelta(t, 0.7, accuracy, 0.001)
	assert.InDelta(t, 0.5, success, 0.001)
	assert.Equal(t, 2, store.Len())
}

func TestPatterns_SummarizesHires(t *testing.T) {
	store := NewStore(nil)
	assert.Equal(t, "No learning data available yet", store.Patterns())

	store.AddFeedback(feedbackRecord([]string{"Go"}, 5, 0.8, "hired"))
	store.AddFeedback(feedbackRecord([]string{"Go"}, 2, 0.4, "rejected"))
	assert.Equal(t, "1 successful hires analyzed", store.Patterns())
}

func TestAdjustmentFor_ScenarioD_TwoCandidatesSameHistory(t *testing.T) {
	history := []types.LearningFeedbackRecord{
		feedbackRecord([]string{"Go", "PostgreSQL", "Docker"}, 5, 0.9, "hired"),
		feedbackRecord([]string{"Go", "PostgreSQL", "Docker"}, 5, 0.9, "hired"),
		feedbackRecord([]string{"Go", "PostgreSQL", "Docker"}, 6, 0.9, "hired"),
	}
	store := NewStore(history)

	for _, candidate := range []*types.Candidate{
		{ID: "cand_a", Skills: []string{"Go", "PostgreSQL", "Docker"}, Experience: "5"},
		{ID: "cand_b", Skills: []string{"go", "postgresql", "docker"}, Experience: "6 years"},
	} {
		adj := store.AdjustmentFor(candidate)
		assert.Equal(t, 3, adj.SimilarRecords, candidate.ID)
		assert.Equal(t, 5.0, adj.ScoreDelta, candidate.ID)
		assert.Contains(t, adj.AdditionalTags, TagHighPotential, candidate.ID)
	}
}
