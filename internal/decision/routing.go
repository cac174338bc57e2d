package decision

import "github.com/jonathan/resume-screener/internal/types"

// nextStepsFor maps a decision to its fixed next-steps template.
func nextStepsFor(d types.Decision) []string {
	switch d {
	case types.DecisionAccept:
		return []string{
			"Schedule technical interview",
			"Send to hiring manager",
			"Prepare interview questions",
			"Check references",
		}
	case types.DecisionInterview:
		return []string{
			"Schedule phone screening",
			"Send coding challenge",
			"Review portfolio",
			"Cultural fit assessment",
		}
	case types.DecisionReview:
		return []string{
			"Flag for manual review",
			"Request additional information",
			"Schedule brief call",
			"Check similar profiles",
		}
	case types.DecisionReject:
		return []string{
			"Send polite rejection email",
			"Add to talent pool for future",
			"Provide feedback if requested",
			"Update ATS status",
		}
	default:
		return []string{"Manual review required"}
	}
}
