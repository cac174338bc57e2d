package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-screener/internal/types"
)

func TestSimilarity_IdenticalProfiles(t *testing.T) {
	candidate := &types.Candidate{Skills: []string{"Go", "PostgreSQL"}, Experience: "5"}
	record := &types.LearningFeedbackRecord{Skills: []string{"go", "postgresql"}, ExperienceYears: 5}

	assert.InDelta(t, 1.0, Similarity(candidate, record), 0.001)
}

func TestSimilarity_Deterministic(t *testing.T) {
	candidate := &types.Candidate{Skills: []string{"Go", "Docker"}, Experience: "4"}
	record := &types.LearningFeedbackRecord{Skills: []string{"Go", "Kubernetes"}, ExperienceYears: 6}

	first := Similarity(candidate, record)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Similarity(candidate, record))
	}
}

func TestSimilarity_DisjointSkills(t *testing.T) {
	candidate := &types.Candidate{Skills: []string{"Go"}, Experience: "5"}
	record := &types.LearningFeedbackRecord{Skills: []string{"PHP"}, ExperienceYears: 5}

	// No skill overlap; only the experience component remains.
	assert.InDelta(t, experienceSimilarityWeight, Similarity(candidate, record), 0.001)
}

func TestJaccard_PartialOverlap(t *testing.T) {
	// {go, docker} vs {go, kubernetes}: intersection 1, union 3
	assert.InDelta(t, 1.0/3.0, jaccard([]string{"Go", "Docker"}, []string{"go", "Kubernetes"}), 0.001)
}

func TestJaccard_EmptySetsNotSimilar(t *testing.T) {
	assert.Equal(t, 0.0, jaccard(nil, []string{"Go"}))
	assert.Equal(t, 0.0, jaccard(nil, nil))
}

func TestExperienceSimilarity_LinearDecay(t *testing.T) {
	assert.Equal(t, 1.0, experienceSimilarity(5, 5))
	assert.InDelta(t, 0.5, experienceSimilarity(5, 10), 0.001)
	assert.Equal(t, 0.0, experienceSimilarity(0, 10))
	assert.Equal(t, 0.0, experienceSimilarity(0, 25))
}
