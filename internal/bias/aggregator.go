// Package bias derives fairness and performance roll-ups from persisted
// screening decisions. All computation here is read-only and recomputable.
package bias

import (
	"strings"
	"time"

	"github.com/jonathan/resume-screener/internal/types"
)

// Recommendation thresholds. A dimension above its threshold earns one
// recommendation entry in the report.
const (
	dimensionWarnLevel = 0.10
	overallWarnLevel   = 0.25
)

// Report computes a BiasReport over a set of decisions. Zero decisions
// yield an all-zero report with no recommendations.
func Report(decisions []types.ScreeningDecision) types.BiasReport {
	report := types.BiasReport{Recommendations: []string{}}
	if len(decisions) == 0 {
		return report
	}

	var genderFlagged, ageFlagged, educationFlagged int
	for i := range decisions {
		flags := decisions[i].BiasFlags
		if len(flags) == 0 {
			continue
		}
		report.FlaggedDecisions++
		if anyFlagMentions(flags, "gender") {
			genderFlagged++
		}
		if anyFlagMentions(flags, "age") {
			ageFlagged++
		}
		if anyFlagMentions(flags, "education") {
			educationFlagged++
		}
	}

	total := float64(len(decisions))
	report.OverallBiasScore = float64(report.FlaggedDecisions) / total
	report.GenderBias = float64(genderFlagged) / total
	report.AgeBias = float64(ageFlagged) / total
	report.EducationBias = float64(educationFlagged) / total

	if report.EducationBias > dimensionWarnLevel {
		report.Recommendations = append(report.Recommendations,
			"Review education requirements - may be too restrictive")
	}
	if report.GenderBias > dimensionWarnLevel {
		report.Recommendations = append(report.Recommendations,
			"Consider blind resume screening for initial rounds")
	}
	if report.AgeBias > dimensionWarnLevel {
		report.Recommendations = append(report.Recommendations,
			"Diversify interview panel composition")
	}
	if report.OverallBiasScore > overallWarnLevel {
		report.Recommendations = append(report.Recommendations,
			"Audit flagged decisions manually before acting on them")
	}
	return report
}

// Metrics merges decision counts, learning-store accuracy figures, and batch
// timing into one PerformanceMetrics snapshot.
func Metrics(decisions []types.ScreeningDecision, learning types.PerformanceMetrics, avgProcessing time.Duration) types.PerformanceMetrics {
	return types.PerformanceMetrics{
		TotalScreened:     len(decisions),
		AccuracyRate:      learning.AccuracyRate,
		AvgProcessingTime: float64(avgProcessing.Milliseconds()),
		BiasScore:         Report(decisions).OverallBiasScore,
		HiringSuccessRate: learning.HiringSuccessRate,
	}
}

// anyFlagMentions reports whether any flag contains the keyword,
// case-insensitively.
func anyFlagMentions(flags []string, keyword string) bool {
	for _, flag := range flags {
		if strings.Contains(strings.ToLower(flag), keyword) {
			return true
		}
	}
	return false
}
