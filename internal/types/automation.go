package types

// RuleTrigger is the event type that makes a rule eligible for evaluation.
type RuleTrigger string

// Rule triggers.
const (
	TriggerCandidateScreened RuleTrigger = "candidate_screened"
	TriggerScoreThreshold    RuleTrigger = "score_threshold"
	TriggerTimeBased         RuleTrigger = "time_based"
	TriggerBulkComplete      RuleTrigger = "bulk_complete"
)

// Operator is a condition comparison operator.
type Operator string

// Condition operators.
const (
	OpEquals      Operator = "equals"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpContains    Operator = "contains"
)

// ActionType identifies which actuator an action invokes.
type ActionType string

// Action types.
const (
	ActionEmail             ActionType = "email"
	ActionATSUpdate         ActionType = "ats_update"
	ActionScheduleInterview ActionType = "schedule_interview"
	ActionAddTag            ActionType = "add_tag"
	ActionMoveStage         ActionType = "move_stage"
)

// Condition is one field comparison inside a rule. All conditions of a rule
// must hold for the rule to fire (AND semantics).
type Condition struct {
	Field    string   `json:"field" validate:"required,oneof=overallScore jobMatchScore decision confidence"`
	Operator Operator `json:"operator" validate:"required,oneof=equals greater_than less_than contains"`
	Value    any      `json:"value" validate:"required"`
}

// Action is a tagged variant: a type plus a parameter payload. Actions are
// data, not code, so rule sets can be stored and versioned independently of
// the engine binary.
type Action struct {
	Type       ActionType     `json:"type" validate:"required,oneof=email ats_update schedule_interview add_tag move_stage"`
	Parameters map[string]any `json:"parameters"`
}

// StringParam returns a string parameter, or fallback when absent or not a
// string.
func (a *Action) StringParam(key, fallback string) string {
	if v, ok := a.Parameters[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// AutomationRule is one externally authored automation rule. The engine
// treats the rule set as a read-only snapshot for the duration of a batch.
type AutomationRule struct {
	ID         string      `json:"id" validate:"required"`
	Name       string      `json:"name" validate:"required"`
	Trigger    RuleTrigger `json:"trigger" validate:"required,oneof=candidate_screened score_threshold time_based bulk_complete"`
	Conditions []Condition `json:"conditions" validate:"dive"`
	Actions    []Action    `json:"actions" validate:"min=1,dive"`
	IsActive   bool        `json:"is_active"`
}
