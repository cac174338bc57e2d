// Package assessment wraps the external inference service behind a fixed
// response schema: it builds the screening prompt, invokes the model once,
// and validates/normalizes whatever comes back.
package assessment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonathan/resume-screener/internal/llm"
	"github.com/jonathan/resume-screener/internal/types"
)

// Retry policy for transient service errors.
const (
	maxAttempts    = 3
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 4 * time.Second
)

// RawAssessment is the validated output of one inference call. All numeric
// fields are clamped into [0,100] and Decision is always one of the four
// allowed values.
type RawAssessment struct {
	OverallScore    float64
	JobMatchScore   float64
	Decision        types.Decision
	Confidence      float64
	Reasoning       []string
	NextSteps       []string
	BiasFlags       []string
	Tags            []string
	CulturalFit     float64
	GrowthPotential float64
}

// rawResponse mirrors the JSON contract of the screening prompt.
type rawResponse struct {
	Action          string   `json:"action"`
	Confidence      float64  `json:"confidence"`
	Reasoning       []string `json:"reasoning"`
	NextSteps       []string `json:"nextSteps"`
	BiasFlags       []string `json:"biasFlags"`
	OverallScore    float64  `json:"overallScore"`
	JobMatchScore   float64  `json:"jobMatchScore"`
	Tags            []string `json:"tags"`
	CulturalFit     float64  `json:"culturalFit"`
	GrowthPotential float64  `json:"growthPotential"`
}

// Input carries everything one assessment call needs.
type Input struct {
	Candidate        *types.Candidate
	Job              *types.JobRequirement
	IntakeText       string
	LearningPatterns string
}

// Adapter is the stateless inference adapter. It holds no per-candidate
// state; the only side effect is the outbound model call.
type Adapter struct {
	client llm.Client
	tier   llm.ModelTier
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewAdapter creates an adapter around an LLM client. Screening uses the
// standard tier; intake-document runs may want TierAdvanced via WithTier.
func NewAdapter(client llm.Client) *Adapter {
	return &Adapter{
		client: client,
		tier:   llm.TierStandard,
		sleep:  sleepCtx,
	}
}

// WithTier returns a copy of the adapter using the given model tier.
func (a *Adapter) WithTier(tier llm.ModelTier) *Adapter {
	clone := *a
	clone.tier = tier
	return &clone
}

// Assess performs one screening inference for a candidate against a job.
// Transient service errors are retried with capped exponential backoff;
// malformed responses are permanent failures for this candidate.
func (a *Adapter) Assess(ctx context.Context, in Input) (*RawAssessment, error) {
	if in.Candidate == nil || in.Job == nil {
		return nil, &InferenceError{Kind: KindMalformed, Message: "candidate and job are required"}
	}

	prompt := buildScreeningPrompt(in.Candidate, in.Job, in.IntakeText, in.LearningPatterns)

	var lastErr error
	backoff := initialBackoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		responseText, err := a.client.GenerateJSON(ctx, prompt, a.tier)
		if err == nil {
			return parseAssessment(responseText)
		}

		lastErr = classifyServiceError(err)
		if !IsTransient(lastErr) {
			return nil, lastErr
		}
		if attempt == maxAttempts {
			break
		}
		if err := a.sleep(ctx, backoff); err != nil {
			return nil, err
		}
		backoff = min(backoff*2, maxBackoff)
	}

	return nil, lastErr
}

// parseAssessment decodes and normalizes the model response. If the text is
// not directly valid JSON it is scanned for an embedded payload before
// giving up.
func parseAssessment(text string) (*RawAssessment, error) {
	cleaned := llm.CleanJSONBlock(text)

	var resp rawResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		embedded := llm.ExtractJSONObject(cleaned)
		if embedded == "" {
			return nil, &InferenceError{Kind: KindMalformed, Message: "response is not valid JSON", Cause: err}
		}
		if err := json.Unmarshal([]byte(embedded), &resp); err != nil {
			return nil, &InferenceError{Kind: KindMalformed, Message: "embedded payload is not valid JSON", Cause: err}
		}
	}

	return &RawAssessment{
		OverallScore:    types.ClampScore(resp.OverallScore),
		JobMatchScore:   types.ClampScore(resp.JobMatchScore),
		Decision:        types.ParseDecision(resp.Action),
		Confidence:      types.ClampScore(resp.Confidence),
		Reasoning:       resp.Reasoning,
		NextSteps:       resp.NextSteps,
		BiasFlags:       emptyIfNil(resp.BiasFlags),
		Tags:            emptyIfNil(resp.Tags),
		CulturalFit:     types.ClampScore(resp.CulturalFit),
		GrowthPotential: types.ClampScore(resp.GrowthPotential),
	}, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
