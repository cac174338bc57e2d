package types

// ExperienceLevel represents the seniority band a job requires.
type ExperienceLevel string

// Experience level bands.
const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelLead   ExperienceLevel = "lead"
)

// RequiredYears returns the minimum years of experience implied by a level.
func (l ExperienceLevel) RequiredYears() int {
	switch l {
	case LevelEntry:
		return 0
	case LevelMid:
		return 3
	case LevelSenior:
		return 6
	case LevelLead:
		return 9
	default:
		return 0
	}
}

// JobRequirement represents the job a batch of candidates is screened
// against. Immutable for the duration of a batch.
type JobRequirement struct {
	ID              string          `json:"id" validate:"required"`
	Title           string          `json:"title" validate:"required"`
	Department      string          `json:"department,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experience_level" validate:"omitempty,oneof=entry mid senior lead"`
	RequiredSkills  []string        `json:"required_skills"`
	PreferredSkills []string        `json:"preferred_skills,omitempty"`
	Description     string          `json:"description,omitempty"`
}
