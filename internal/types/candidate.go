// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"regexp"
	"strconv"
	"strings"
)

// CandidateStatus represents a candidate's position in the hiring lifecycle.
type CandidateStatus string

// Lifecycle states. Hired and Rejected are terminal.
const (
	StatusNew         CandidateStatus = "new"
	StatusReviewed    CandidateStatus = "reviewed"
	StatusShortlisted CandidateStatus = "shortlisted"
	StatusInterviewed CandidateStatus = "interviewed"
	StatusHired       CandidateStatus = "hired"
	StatusRejected    CandidateStatus = "rejected"
)

// IsTerminal reports whether no further transitions may leave this status.
func (s CandidateStatus) IsTerminal() bool {
	return s == StatusHired || s == StatusRejected
}

// Candidate represents one ingested candidate record. The record is immutable
// for the duration of a screening pass; only Status is mutated, and only by
// the lifecycle state machine.
type Candidate struct {
	ID         string          `json:"id" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	Email      string          `json:"email" validate:"omitempty,email"`
	Phone      string          `json:"phone,omitempty"`
	Skills     []string        `json:"skills"`
	Experience string          `json:"experience"` // "7" or free text like "7 years"
	Education  string          `json:"education,omitempty"`
	Location   string          `json:"location,omitempty"`
	Source     string          `json:"source,omitempty"` // sourcing channel (job board, referral, ...)
	Status     CandidateStatus `json:"status,omitempty"`
}

var yearsPattern = regexp.MustCompile(`(\d+)`)

// ExperienceYears extracts the number of years from the free-text experience
// field. Returns 0 when no number is present.
func (c *Candidate) ExperienceYears() int {
	return ExtractYears(c.Experience)
}

// ExtractYears pulls the first integer out of a free-text experience string.
func ExtractYears(experience string) int {
	match := yearsPattern.FindString(experience)
	if match == "" {
		return 0
	}
	years, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return years
}

// NormalizeSkill lowercases and trims a skill name for comparison.
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
