// Package matching provides deterministic candidate/job match scoring based
// on skill overlap and experience distance. It needs no model call, so it is
// used to seed screening prompts and to route candidates across open jobs.
package matching

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// Weights for the two match components.
const (
	skillOverlapWeight    = 0.7
	experienceMatchWeight = 0.3
)

// neutralMatchScore is returned when a job lists no required skills.
const neutralMatchScore = 50

// JobMatchScore computes a 0-100 match score between a candidate and a job.
// Skill comparison is case-insensitive and tolerates partial names in either
// direction ("react" matches "React.js").
func JobMatchScore(candidate *types.Candidate, job *types.JobRequirement) float64 {
	if len(job.RequiredSkills) == 0 {
		return neutralMatchScore
	}

	matching := 0
	for _, required := range job.RequiredSkills {
		req := types.NormalizeSkill(required)
		for _, skill := range candidate.Skills {
			s := types.NormalizeSkill(skill)
			if s == "" || req == "" {
				continue
			}
			if strings.Contains(req, s) || strings.Contains(s, req) {
				matching++
				break
			}
		}
	}

	skillMatch := float64(matching) / float64(len(job.RequiredSkills)) * 100
	experienceMatch := experienceMatchScore(candidate.ExperienceYears(), job.ExperienceLevel.RequiredYears())

	score := skillMatch*skillOverlapWeight + experienceMatch*experienceMatchWeight
	return types.ClampScore(score)
}

// experienceMatchScore bands a candidate's years against the required years.
func experienceMatchScore(candidateYears, requiredYears int) float64 {
	if requiredYears == 0 {
		return 100
	}
	have := float64(candidateYears)
	need := float64(requiredYears)
	switch {
	case have >= need:
		return 100
	case have >= need*0.8:
		return 80
	case have >= need*0.6:
		return 60
	default:
		return 40
	}
}

// JobMatch is one recommended job for a candidate.
type JobMatch struct {
	JobID string  `json:"job_id"`
	Score float64 `json:"score"`
}

// Routing is the smart-routing result for one candidate: its best job
// matches above the routing threshold.
type Routing struct {
	CandidateID     string     `json:"candidate_id"`
	RecommendedJobs []JobMatch `json:"recommended_jobs"`
	Confidence      float64    `json:"confidence"`
}

// routing thresholds
const (
	routingMinScore = 60
	routingTopN     = 3
)

// RouteCandidates scores every candidate against every open job and returns
// the top matches (score > 60, best three) per candidate. Confidence is the
// best match score, 0 when nothing clears the threshold.
func RouteCandidates(candidates []types.Candidate, jobs []types.JobRequirement) []Routing {
	results := make([]Routing, 0, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]

		var matches []JobMatch
		for j := range jobs {
			score := JobMatchScore(candidate, &jobs[j])
			if score > routingMinScore {
				matches = append(matches, JobMatch{JobID: jobs[j].ID, Score: score})
			}
		}

		sort.SliceStable(matches, func(a, b int) bool {
			return matches[a].Score > matches[b].Score
		})
		if len(matches) > routingTopN {
			matches = matches[:routingTopN]
		}

		confidence := 0.0
		if len(matches) > 0 {
			confidence = matches[0].Score
		}

		results = append(results, Routing{
			CandidateID:     candidate.ID,
			RecommendedJobs: matches,
			Confidence:      confidence,
		})
	}
	return results
}
