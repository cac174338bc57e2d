// Package pipeline provides the high-level orchestration for batch candidate
// screening runs.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jonathan/resume-screener/internal/automation"
	"github.com/jonathan/resume-screener/internal/lifecycle"
	"github.com/jonathan/resume-screener/internal/types"
)

// Score bucket boundaries. A decision lands in exactly one bucket.
const (
	highScoreFloor   = 85
	mediumScoreFloor = 60
)

const (
	defaultConcurrency = 4
	defaultMinInterval = 200 * time.Millisecond
)

// Decider produces the final decision for one candidate. Satisfied by
// *decision.Engine.
type Decider interface {
	Decide(ctx context.Context, candidate *types.Candidate, job *types.JobRequirement, intakeText string) (*types.ScreeningDecision, error)
}

// RuleRunner dispatches automation for one finished decision. Satisfied by
// *automation.Engine.
type RuleRunner interface {
	Evaluate(ctx context.Context, rules []types.AutomationRule, trigger types.RuleTrigger, candidate *types.Candidate, decision *types.ScreeningDecision) ([]automation.ExecutedAction, error)
}

// Submission is one candidate queued for screening, paired with the raw
// intake text (resume body, application answers) fed to inference.
type Submission struct {
	Candidate  types.Candidate
	IntakeText string
}

// Options configures a batch run.
type Options struct {
	// Concurrency caps the number of in-flight screenings. Zero or negative
	// falls back to defaultConcurrency.
	Concurrency int
	// MinInterval is the minimum spacing between inference calls across all
	// workers. Zero or negative falls back to defaultMinInterval.
	MinInterval time.Duration
	// Rules is the automation rule snapshot applied to every decision of the
	// run. Nil means automation.DefaultRules().
	Rules []types.AutomationRule
}

// CandidateFailure records a non-fatal per-candidate problem: a persistence
// error after the decision was computed, or a candidate the run never
// screened because it was cancelled first.
type CandidateFailure struct {
	CandidateID string
	Err         error
}

// ScoreBuckets is the aggregate score distribution of a run.
type ScoreBuckets struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// BatchResult is everything a run produced. Every submission appears either
// in Decisions or in Failures; a cancelled run holds the decisions computed
// before the cutoff plus a failure entry per candidate never screened.
// Candidates carries the post-run lifecycle state of every screened
// candidate, index-aligned with Decisions.
type BatchResult struct {
	RunID      uuid.UUID
	Decisions  []types.ScreeningDecision
	Candidates []types.Candidate
	Actions    []automation.ExecutedAction
	Failures   []CandidateFailure
	Buckets    ScoreBuckets
}

// Runner executes batch screening runs.
type Runner struct {
	decider     Decider
	rules       RuleRunner
	ruleSet     []types.AutomationRule
	limiter     *rate.Limiter
	concurrency int
	logger      *zap.Logger
}

func NewRunner(decider Decider, rules RuleRunner, opts Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	interval := opts.MinInterval
	if interval <= 0 {
		interval = defaultMinInterval
	}
	ruleSet := opts.Rules
	if ruleSet == nil {
		ruleSet = automation.DefaultRules()
	}
	return &Runner{
		decider:     decider,
		rules:       rules,
		ruleSet:     ruleSet,
		limiter:     rate.NewLimiter(rate.Every(interval), 1),
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run screens every submission against the job, then applies automation and
// lifecycle transitions per decision. Every submission that finishes
// screening yields exactly one decision. When ctx is cancelled mid-run, Run
// returns the decisions computed so far together with the context error:
// those decisions still go through automation on a context detached from
// the cancellation, and every candidate that never screened is listed as a
// failure.
func (r *Runner) Run(ctx context.Context, job *types.JobRequirement, submissions []Submission) (*BatchResult, error) {
	runID := uuid.New()
	r.logger.Info("starting screening run",
		zap.String("run_id", runID.String()),
		zap.String("job_id", job.ID),
		zap.Int("candidates", len(submissions)),
		zap.Int("concurrency", r.concurrency),
	)

	decisions := make([]*types.ScreeningDecision, len(submissions))
	failures := make([]error, len(submissions))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i := range submissions {
		i := i
		g.Go(func() error {
			if err := r.limiter.Wait(gCtx); err != nil {
				// Cancelled before this candidate started. Record the error
				// rather than fabricating a decision.
				failures[i] = err
				return nil
			}

			sub := &submissions[i]
			d, err := r.decider.Decide(gCtx, &sub.Candidate, job, sub.IntakeText)
			decisions[i] = d
			if err != nil {
				failures[i] = err
			}
			return nil
		})
	}

	// Workers never return errors, so Wait only reflects group context
	// cancellation, which is handled below.
	_ = g.Wait()

	result := &BatchResult{RunID: runID}
	for i := range submissions {
		if decisions[i] == nil {
			// Never screened. Surface the candidate as an explicit failure
			// so the result accounts for the whole batch.
			cause := failures[i]
			if cause == nil {
				cause = ctx.Err()
			}
			result.Failures = append(result.Failures, CandidateFailure{
				CandidateID: submissions[i].Candidate.ID,
				Err:         cause,
			})
			continue
		}
		result.Decisions = append(result.Decisions, *decisions[i])
		result.Candidates = append(result.Candidates, submissions[i].Candidate)
		if failures[i] != nil {
			result.Failures = append(result.Failures, CandidateFailure{
				CandidateID: submissions[i].Candidate.ID,
				Err:         failures[i],
			})
		}
	}
	result.Buckets = bucketScores(result.Decisions)

	cancelErr := ctx.Err()
	if cancelErr != nil {
		r.logger.Warn("screening run cancelled",
			zap.String("run_id", runID.String()),
			zap.Int("completed", len(result.Decisions)),
			zap.Int("requested", len(submissions)),
		)
	}

	if r.rules != nil {
		autoCtx := ctx
		if cancelErr != nil {
			// Decisions computed before the cutoff still get their rule
			// evaluation, so actuator dispatch must outlive the cancelled
			// run context.
			autoCtx = context.WithoutCancel(ctx)
		}
		if err := r.runAutomation(autoCtx, result); err != nil {
			return result, err
		}
	}

	if cancelErr != nil {
		return result, fmt.Errorf("screening run %s cancelled: %w", runID, cancelErr)
	}

	r.logger.Info("screening run complete",
		zap.String("run_id", runID.String()),
		zap.Int("decisions", len(result.Decisions)),
		zap.Int("failures", len(result.Failures)),
		zap.Int("high", result.Buckets.High),
		zap.Int("medium", result.Buckets.Medium),
		zap.Int("low", result.Buckets.Low),
	)
	return result, nil
}

// runAutomation evaluates the rule snapshot against each decision in batch
// order and applies the lifecycle effect of every successful action.
func (r *Runner) runAutomation(ctx context.Context, result *BatchResult) error {
	for i := range result.Decisions {
		executed, err := r.rules.Evaluate(
			ctx, r.ruleSet, types.TriggerCandidateScreened,
			&result.Candidates[i], &result.Decisions[i],
		)
		result.Actions = append(result.Actions, executed...)
		if err != nil {
			return fmt.Errorf("automation for candidate %s: %w", result.Candidates[i].ID, err)
		}

		for _, record := range executed {
			if record.Err != nil {
				continue
			}
			result.Candidates[i] = lifecycle.Apply(result.Candidates[i], record.Action)
		}
	}
	return nil
}

func bucketScores(decisions []types.ScreeningDecision) ScoreBuckets {
	var b ScoreBuckets
	for i := range decisions {
		switch score := decisions[i].OverallScore; {
		case score >= highScoreFloor:
			b.High++
		case score >= mediumScoreFloor:
			b.Medium++
		default:
			b.Low++
		}
	}
	return b
}
