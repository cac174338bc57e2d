package learning

import (
	"math"

	"github.com/jonathan/resume-screener/internal/types"
)

// Similarity component weights and the selection threshold.
const (
	skillSimilarityWeight      = 0.7
	experienceSimilarityWeight = 0.3

	// similarityThreshold selects which historical records influence a
	// candidate's adjustment.
	similarityThreshold = 0.7

	// experienceDecayYears is the gap at which experience similarity
	// reaches zero.
	experienceDecayYears = 10.0
)

// Similarity computes a normalized [0,1] similarity between a candidate and
// a historical feedback record: Jaccard overlap of normalized skill sets
// weighted with experience distance. Deterministic for the same two inputs.
func Similarity(candidate *types.Candidate, record *types.LearningFeedbackRecord) float64 {
	skills := jaccard(candidate.Skills, record.Skills)
	experience := experienceSimilarity(candidate.ExperienceYears(), record.ExperienceYears)
	return skills*skillSimilarityWeight + experience*experienceSimilarityWeight
}

// jaccard computes |A∩B| / |A∪B| over normalized skill names. Two empty
// sets are not considered similar.
func jaccard(a, b []string) float64 {
	setA := toSkillSet(a)
	setB := toSkillSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for skill := range setA {
		if setB[skill] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func toSkillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		if normalized := types.NormalizeSkill(s); normalized != "" {
			set[normalized] = true
		}
	}
	return set
}

// experienceSimilarity maps the gap in years of experience into [0,1] with
// linear decay: identical experience scores 1, a ten-year gap scores 0.
func experienceSimilarity(a, b int) float64 {
	gap := math.Abs(float64(a - b))
	if gap >= experienceDecayYears {
		return 0
	}
	return 1 - gap/experienceDecayYears
}
