package assessment

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-screener/internal/matching"
	"github.com/jonathan/resume-screener/internal/types"
)

// buildScreeningPrompt constructs the single structured request sent to the
// inference service for one candidate. The response contract mirrors the
// RawAssessment schema exactly.
func buildScreeningPrompt(candidate *types.Candidate, job *types.JobRequirement, intakeText, learningPatterns string) string {
	var sb strings.Builder

	sb.WriteString("You are an autonomous AI hiring agent. Analyze this candidate and make a hiring decision.\n\n")

	sb.WriteString("CANDIDATE:\n")
	sb.WriteString(fmt.Sprintf("Name: %s\n", candidate.Name))
	sb.WriteString(fmt.Sprintf("Email: %s\n", candidate.Email))
	sb.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(candidate.Skills, ", ")))
	sb.WriteString(fmt.Sprintf("Experience: %s\n", candidate.Experience))
	sb.WriteString(fmt.Sprintf("Education: %s\n\n", candidate.Education))

	sb.WriteString("JOB REQUIREMENTS:\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Department: %s\n", job.Department))
	sb.WriteString(fmt.Sprintf("Required Skills: %s\n", strings.Join(job.RequiredSkills, ", ")))
	sb.WriteString(fmt.Sprintf("Experience Level: %s\n", job.ExperienceLevel))
	sb.WriteString(fmt.Sprintf("Computed Skill/Experience Match: %.0f/100\n", matching.JobMatchScore(candidate, job)))

	if intakeText != "" {
		sb.WriteString("\nINTAKE DOCUMENT:\n")
		sb.WriteString(intakeText)
		sb.WriteString("\n")
	}

	sb.WriteString("\nLEARNING DATA:\n")
	sb.WriteString(fmt.Sprintf("Previous successful hires had these patterns: %s\n\n", learningPatterns))

	sb.WriteString("Make an autonomous decision (accept/reject/review/interview) with:\n")
	sb.WriteString("1. Confidence score (0-100)\n")
	sb.WriteString("2. Detailed reasoning (3-5 points)\n")
	sb.WriteString("3. Specific next steps\n")
	sb.WriteString("4. Bias check - flag any potential bias in decision\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(`{
  "action": "accept|reject|review|interview",
  "confidence": 85,
  "reasoning": ["point1", "point2", "point3"],
  "nextSteps": ["step1", "step2"],
  "biasFlags": [],
  "overallScore": 85,
  "jobMatchScore": 90,
  "tags": ["Senior", "Remote Ready"],
  "culturalFit": 80,
  "growthPotential": 75
}
`)
	sb.WriteString("\nIMPORTANT: Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")

	return sb.String()
}
