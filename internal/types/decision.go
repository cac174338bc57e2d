package types

import (
	"strings"
	"time"
)

// Decision is the terminal outcome assigned to a candidate for a job.
type Decision string

// The four allowed decision values.
const (
	DecisionAccept    Decision = "accept"
	DecisionReject    Decision = "reject"
	DecisionReview    Decision = "review"
	DecisionInterview Decision = "interview"
)

// ParseDecision normalizes a raw decision string. Unrecognized or missing
// values default to review so a malformed model response can never produce
// an out-of-vocabulary decision.
func ParseDecision(raw string) Decision {
	switch Decision(strings.ToLower(strings.TrimSpace(raw))) {
	case DecisionAccept:
		return DecisionAccept
	case DecisionReject:
		return DecisionReject
	case DecisionInterview:
		return DecisionInterview
	case DecisionReview:
		return DecisionReview
	default:
		return DecisionReview
	}
}

// ClampScore bounds a score into [0,100].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ScreeningDecision is the central output record: one per candidate per
// batch run. Immutable once produced by the decision engine.
type ScreeningDecision struct {
	CandidateID     string    `json:"candidate_id"`
	OverallScore    float64   `json:"overall_score"`
	JobMatchScore   float64   `json:"job_match_score"`
	Decision        Decision  `json:"decision"`
	Confidence      float64   `json:"confidence"`
	Reasoning       []string  `json:"reasoning"`
	NextSteps       []string  `json:"next_steps"`
	Tags            []string  `json:"tags"`
	BiasFlags       []string  `json:"bias_flags"`
	CulturalFit     float64   `json:"cultural_fit"`
	GrowthPotential float64   `json:"growth_potential"`
	ProcessedAt     time.Time `json:"processed_at"`
}

// HasTag reports whether the decision carries the given tag (exact match).
func (d *ScreeningDecision) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Field returns the value of a rule-addressable attribute. Only the four
// attributes enumerated for rule conditions are addressable; anything else
// returns nil.
func (d *ScreeningDecision) Field(name string) any {
	switch name {
	case "overallScore":
		return d.OverallScore
	case "jobMatchScore":
		return d.JobMatchScore
	case "decision":
		return string(d.Decision)
	case "confidence":
		return d.Confidence
	default:
		return nil
	}
}
