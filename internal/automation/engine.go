// Package automation evaluates rules against screening decisions and
// dispatches the resulting actions to external systems.
package automation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/types"
)

// ExecutedAction is the audit record for one dispatched action. Err is nil
// on success and an *ActionExecutionError on failure.
type ExecutedAction struct {
	RuleID   string
	RuleName string
	Action   types.Action
	Err      error
}

// Engine matches rules against decisions and runs their actions. It is
// stateless between calls; rule sets are passed in per evaluation so a
// batch sees one consistent snapshot.
type Engine struct {
	actuators Actuators
	logger    *zap.Logger
}

func NewEngine(actuators Actuators, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{actuators: actuators, logger: logger}
}

// Evaluate runs every active rule with the given trigger against the
// decision, in rule order, and returns an audit record per executed action.
// Action failures are recorded and logged, never fatal; evaluation always
// continues with the next action. The only error returned is context
// cancellation.
func (e *Engine) Evaluate(
	ctx context.Context,
	rules []types.AutomationRule,
	trigger types.RuleTrigger,
	candidate *types.Candidate,
	decision *types.ScreeningDecision,
) ([]ExecutedAction, error) {
	var executed []ExecutedAction

	for i := range rules {
		rule := &rules[i]
		if !rule.IsActive || rule.Trigger != trigger {
			continue
		}
		if !matches(rule, decision) {
			continue
		}

		e.logger.Info("automation rule matched",
			zap.String("rule_id", rule.ID),
			zap.String("rule_name", rule.Name),
			zap.String("candidate_id", candidate.ID),
		)

		for _, action := range rule.Actions {
			if err := ctx.Err(); err != nil {
				return executed, err
			}

			record := ExecutedAction{RuleID: rule.ID, RuleName: rule.Name, Action: action}
			if err := e.execute(ctx, rule, action, candidate, decision); err != nil {
				record.Err = &ActionExecutionError{RuleID: rule.ID, ActionType: action.Type, Cause: err}
				e.logger.Warn("automation action failed",
					zap.String("rule_id", rule.ID),
					zap.String("action", string(action.Type)),
					zap.String("candidate_id", candidate.ID),
					zap.Error(err),
				)
			}
			executed = append(executed, record)
		}
	}

	return executed, nil
}

// errMissingActuator marks actions whose backing system was not configured.
var errMissingActuator = errors.New("actuator not configured")

func (e *Engine) execute(
	ctx context.Context,
	rule *types.AutomationRule,
	action types.Action,
	candidate *types.Candidate,
	decision *types.ScreeningDecision,
) error {
	switch action.Type {
	case types.ActionEmail:
		if e.actuators.Email == nil {
			return fmt.Errorf("send_email: %w", errMissingActuator)
		}
		templateName := action.StringParam("template", TemplateHighScore)
		body, err := RenderEmail(templateName, candidate, decision)
		if err != nil {
			return err
		}
		subject := action.StringParam("subject", subjectFor(templateName))
		return e.actuators.Email.SendEmail(ctx, candidate.Email, subject, body)

	case types.ActionATSUpdate:
		if e.actuators.ATS == nil {
			return fmt.Errorf("update_ats: %w", errMissingActuator)
		}
		status := action.StringParam("status", "")
		if status == "" {
			return fmt.Errorf("update_ats: missing status parameter in rule %s", rule.ID)
		}
		return e.actuators.ATS.UpdateStatus(ctx, candidate.ID, status, map[string]any{
			"overall_score": decision.OverallScore,
			"decision":      string(decision.Decision),
		})

	case types.ActionScheduleInterview:
		if e.actuators.Calendar == nil {
			return fmt.Errorf("schedule_interview: %w", errMissingActuator)
		}
		return e.actuators.Calendar.ScheduleInterview(ctx, candidate.ID, InterviewParams{
			Type:         action.StringParam("type", "screening"),
			ScheduledFor: action.StringParam("scheduled_for", ""),
			Interviewer:  action.StringParam("interviewer", ""),
		})

	case types.ActionAddTag:
		if e.actuators.Candidate == nil {
			return fmt.Errorf("add_tag: %w", errMissingActuator)
		}
		tag := action.StringParam("tag", "")
		if tag == "" {
			return fmt.Errorf("add_tag: missing tag parameter in rule %s", rule.ID)
		}
		return e.actuators.Candidate.AddTag(ctx, candidate.ID, tag)

	case types.ActionMoveStage:
		if e.actuators.Candidate == nil {
			return fmt.Errorf("move_stage: %w", errMissingActuator)
		}
		stage := action.StringParam("stage", "")
		if stage == "" {
			return fmt.Errorf("move_stage: missing stage parameter in rule %s", rule.ID)
		}
		return e.actuators.Candidate.MoveStage(ctx, candidate.ID, stage)

	default:
		return fmt.Errorf("unknown action type %q in rule %s", action.Type, rule.ID)
	}
}

func subjectFor(templateName string) string {
	switch templateName {
	case TemplateRejection:
		return "Update on your application"
	case TemplateInterviewInvite:
		return "Interview invitation"
	default:
		return "Great news about your application"
	}
}
