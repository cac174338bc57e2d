package types

import "time"

// LearningFeedbackRecord ties a predicted screening outcome to the actual
// hiring outcome. Records are append-only and never mutated; the learning
// store reads them to adjust scoring for future candidates.
type LearningFeedbackRecord struct {
	CandidateID      string    `json:"candidate_id" validate:"required"`
	Skills           []string  `json:"skills"`
	ExperienceYears  int       `json:"experience_years"`
	PredictedOutcome string    `json:"predicted_outcome"`
	ActualOutcome    string    `json:"actual_outcome"`
	Accuracy         float64   `json:"accuracy" validate:"gte=0,lte=1"`
	ImprovementAreas []string  `json:"improvement_areas,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// PerformanceMetrics is the running roll-up over screening activity and
// learning feedback.
type PerformanceMetrics struct {
	TotalScreened     int     `json:"total_screened"`
	AccuracyRate      float64 `json:"accuracy_rate"`
	AvgProcessingTime float64 `json:"avg_processing_time_ms"`
	BiasScore         float64 `json:"bias_score"`
	HiringSuccessRate float64 `json:"hiring_success_rate"`
}
