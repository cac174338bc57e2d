package types

// BiasReport is a derived view over persisted screening decisions. It is
// recomputed on demand and never stored as source of truth.
type BiasReport struct {
	OverallBiasScore float64  `json:"overall_bias_score"`
	GenderBias       float64  `json:"gender_bias"`
	AgeBias          float64  `json:"age_bias"`
	EducationBias    float64  `json:"education_bias"`
	Recommendations  []string `json:"recommendations"`
	FlaggedDecisions int      `json:"flagged_decisions"`
}
