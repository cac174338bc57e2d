package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/automation"
	"github.com/jonathan/resume-screener/internal/types"
)

// scriptedDecider returns a canned score per candidate ID.
type scriptedDecider struct {
	mu         sync.Mutex
	scores     map[string]float64
	persistErr map[string]error
	calls      atomic.Int32
	delay      time.Duration
}

func (d *scriptedDecider) Decide(ctx context.Context, candidate *types.Candidate, _ *types.JobRequirement, _ string) (*types.ScreeningDecision, error) {
	d.calls.Add(1)
	if d.delay > 0 {
		select {
		case <-time.After(d.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	score := d.scores[candidate.ID]
	decision := types.DecisionReview
	switch {
	case score > 85:
		decision = types.DecisionAccept
	case score < 40:
		decision = types.DecisionReject
	}
	result := &types.ScreeningDecision{
		CandidateID:  candidate.ID,
		OverallScore: score,
		Decision:     decision,
		ProcessedAt:  time.Now().UTC(),
	}
	if err, ok := d.persistErr[candidate.ID]; ok {
		return result, err
	}
	return result, nil
}

// recordingRuleRunner emits one successful move_stage action per decision.
type recordingRuleRunner struct {
	mu    sync.Mutex
	seen  []string
	stage string
}

func (r *recordingRuleRunner) Evaluate(_ context.Context, _ []types.AutomationRule, _ types.RuleTrigger, candidate *types.Candidate, _ *types.ScreeningDecision) ([]automation.ExecutedAction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, candidate.ID)
	if r.stage == "" {
		return nil, nil
	}
	return []automation.ExecutedAction{{
		RuleID: "test_rule",
		Action: types.Action{Type: types.ActionMoveStage, Parameters: map[string]any{"stage": r.stage}},
	}}, nil
}

func submissionsFor(scores map[string]float64) []Submission {
	subs := make([]Submission, 0, len(scores))
	for i := 0; i < len(scores); i++ {
		id := fmt.Sprintf("cand_%03d", i)
		subs = append(subs, Submission{
			Candidate:  types.Candidate{ID: id, Name: "Candidate " + id, Status: types.StatusNew},
			IntakeText: "resume text",
		})
	}
	return subs
}

func testJob() *types.JobRequirement {
	return &types.JobRequirement{ID: "job_001", Title: "Backend Engineer"}
}

func TestRun_OneDecisionPerCandidate(t *testing.T) {
	scores := map[string]float64{"cand_000": 92, "cand_001": 70, "cand_002": 30}
	decider := &scriptedDecider{scores: scores}
	runner := NewRunner(decider, nil, Options{Concurrency: 2, MinInterval: time.Microsecond}, nil)

	result, err := runner.Run(context.Background(), testJob(), submissionsFor(scores))
	require.NoError(t, err)

	require.Len(t, result.Decisions, 3)
	assert.Equal(t, int32(3), decider.calls.Load())
	assert.NotEqual(t, result.RunID.String(), "00000000-0000-0000-0000-000000000000")

	byID := map[string]float64{}
	for _, d := range result.Decisions {
		byID[d.CandidateID] = d.OverallScore
	}
	assert.Equal(t, scores, byID)
}

func TestRun_ScoreBuckets(t *testing.T) {
	scores := map[string]float64{
		"cand_000": 92, // high
		"cand_001": 85, // high, boundary inclusive
		"cand_002": 84, // medium
		"cand_003": 60, // medium, boundary inclusive
		"cand_004": 59, // low
	}
	decider := &scriptedDecider{scores: scores}
	runner := NewRunner(decider, nil, Options{Concurrency: 2, MinInterval: time.Microsecond}, nil)

	result, err := runner.Run(context.Background(), testJob(), submissionsFor(scores))
	require.NoError(t, err)

	assert.Equal(t, ScoreBuckets{High: 2, Medium: 2, Low: 1}, result.Buckets)
}

func TestRun_PersistenceFailureKeepsDecision(t *testing.T) {
	scores := map[string]float64{"cand_000": 92, "cand_001": 70}
	decider := &scriptedDecider{
		scores:     scores,
		persistErr: map[string]error{"cand_001": errors.New("connection reset")},
	}
	runner := NewRunner(decider, nil, Options{Concurrency: 1, MinInterval: time.Microsecond}, nil)

	result, err := runner.Run(context.Background(), testJob(), submissionsFor(scores))
	require.NoError(t, err)

	assert.Len(t, result.Decisions, 2)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "cand_001", result.Failures[0].CandidateID)
}

func TestRun_CancellationReturnsComputedDecisions(t *testing.T) {
	scores := map[string]float64{}
	for i := 0; i < 8; i++ {
		scores[fmt.Sprintf("cand_%03d", i)] = 75
	}
	decider := &scriptedDecider{scores: scores, delay: 30 * time.Millisecond}
	rules := &recordingRuleRunner{stage: "shortlisted"}
	runner := NewRunner(decider, rules, Options{Concurrency: 1, MinInterval: time.Microsecond}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := runner.Run(ctx, testJob(), submissionsFor(scores))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NotNil(t, result)
	assert.Greater(t, len(result.Decisions), 0)
	assert.Less(t, len(result.Decisions), len(scores))

	// Decisions computed before the cutoff still go through automation and
	// their lifecycle transitions apply.
	assert.Len(t, rules.seen, len(result.Decisions))
	assert.Len(t, result.Actions, len(result.Decisions))
	for _, c := range result.Candidates {
		assert.Equal(t, types.StatusShortlisted, c.Status)
	}
}

func TestRun_CancellationListsUnscreenedCandidatesAsFailures(t *testing.T) {
	scores := map[string]float64{}
	for i := 0; i < 8; i++ {
		scores[fmt.Sprintf("cand_%03d", i)] = 75
	}
	decider := &scriptedDecider{scores: scores, delay: 30 * time.Millisecond}
	runner := NewRunner(decider, nil, Options{Concurrency: 1, MinInterval: time.Microsecond}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := runner.Run(ctx, testJob(), submissionsFor(scores))
	require.Error(t, err)

	// Every candidate has exactly one outcome: a decision or a failure.
	assert.Equal(t, len(scores), len(result.Decisions)+len(result.Failures))

	outcomes := map[string]bool{}
	for _, d := range result.Decisions {
		outcomes[d.CandidateID] = true
	}
	for _, f := range result.Failures {
		assert.False(t, outcomes[f.CandidateID], "candidate %s has two outcomes", f.CandidateID)
		outcomes[f.CandidateID] = true
		assert.ErrorIs(t, f.Err, context.DeadlineExceeded)
	}
	assert.Len(t, outcomes, len(scores))
}

func TestRun_AutomationAndLifecyclePerDecision(t *testing.T) {
	scores := map[string]float64{"cand_000": 92, "cand_001": 70}
	decider := &scriptedDecider{scores: scores}
	rules := &recordingRuleRunner{stage: "shortlisted"}
	runner := NewRunner(decider, rules, Options{Concurrency: 2, MinInterval: time.Microsecond}, nil)

	result, err := runner.Run(context.Background(), testJob(), submissionsFor(scores))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"cand_000", "cand_001"}, rules.seen)
	assert.Len(t, result.Actions, 2)
	for _, c := range result.Candidates {
		assert.Equal(t, types.StatusShortlisted, c.Status)
	}
}

func TestRun_FailedActionDoesNotMoveLifecycle(t *testing.T) {
	scores := map[string]float64{"cand_000": 92}
	decider := &scriptedDecider{scores: scores}
	runner := NewRunner(decider, failingRuleRunner{}, Options{Concurrency: 1, MinInterval: time.Microsecond}, nil)

	result, err := runner.Run(context.Background(), testJob(), submissionsFor(scores))
	require.NoError(t, err)

	require.Len(t, result.Actions, 1)
	assert.Error(t, result.Actions[0].Err)
	assert.Equal(t, types.StatusNew, result.Candidates[0].Status)
}

type failingRuleRunner struct{}

func (failingRuleRunner) Evaluate(_ context.Context, _ []types.AutomationRule, _ types.RuleTrigger, _ *types.Candidate, _ *types.ScreeningDecision) ([]automation.ExecutedAction, error) {
	return []automation.ExecutedAction{{
		RuleID: "test_rule",
		Action: types.Action{Type: types.ActionMoveStage, Parameters: map[string]any{"stage": "rejected"}},
		Err:    &automation.ActionExecutionError{RuleID: "test_rule", ActionType: types.ActionMoveStage, Cause: errors.New("backend down")},
	}}, nil
}
