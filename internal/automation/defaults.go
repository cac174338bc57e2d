package automation

import "github.com/jonathan/resume-screener/internal/types"

// DefaultRules returns the built-in rule set used when no rule snapshot is
// configured. Callers receive a fresh copy on every call.
func DefaultRules() []types.AutomationRule {
	return []types.AutomationRule{
		{
			ID:      "high_score_interview",
			Name:    "High Score Auto-Interview",
			Trigger: types.TriggerCandidateScreened,
			Conditions: []types.Condition{
				{Field: "overallScore", Operator: types.OpGreaterThan, Value: float64(85)},
				{Field: "decision", Operator: types.OpEquals, Value: "accept"},
			},
			Actions: []types.Action{
				{Type: types.ActionEmail, Parameters: map[string]any{"template": TemplateInterviewInvite, "subject": "Interview Invitation"}},
				{Type: types.ActionATSUpdate, Parameters: map[string]any{"status": "interview_scheduled"}},
				{Type: types.ActionAddTag, Parameters: map[string]any{"tag": "High Potential"}},
			},
			IsActive: true,
		},
		{
			ID:      "low_score_rejection",
			Name:    "Low Score Auto-Rejection",
			Trigger: types.TriggerCandidateScreened,
			Conditions: []types.Condition{
				{Field: "overallScore", Operator: types.OpLessThan, Value: float64(40)},
				{Field: "decision", Operator: types.OpEquals, Value: "reject"},
			},
			Actions: []types.Action{
				{Type: types.ActionEmail, Parameters: map[string]any{"template": TemplateRejection, "subject": "Application Status Update"}},
				{Type: types.ActionATSUpdate, Parameters: map[string]any{"status": "rejected"}},
				{Type: types.ActionMoveStage, Parameters: map[string]any{"stage": "rejected"}},
			},
			IsActive: true,
		},
		{
			ID:      "medium_score_review",
			Name:    "Medium Score Manual Review",
			Trigger: types.TriggerCandidateScreened,
			Conditions: []types.Condition{
				{Field: "overallScore", Operator: types.OpGreaterThan, Value: float64(60)},
				{Field: "overallScore", Operator: types.OpLessThan, Value: float64(85)},
			},
			Actions: []types.Action{
				{Type: types.ActionAddTag, Parameters: map[string]any{"tag": "Requires Review"}},
				{Type: types.ActionATSUpdate, Parameters: map[string]any{"status": "under_review"}},
			},
			IsActive: true,
		},
	}
}
