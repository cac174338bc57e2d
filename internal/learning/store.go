// Package learning maintains the append-only history of screening outcome
// feedback and computes similarity-weighted score adjustments for future
// candidates.
package learning

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonathan/resume-screener/internal/assessment"
	"github.com/jonathan/resume-screener/internal/types"
)

// Adjustment thresholds and deltas derived from historical accuracy.
const (
	highAccuracy = 0.8
	lowAccuracy  = 0.6

	scoreDeltaUp   = 5
	scoreDeltaDown = -5
	matchDeltaUp   = 3
	matchDeltaDown = -3

	culturalFitBaseline     = 75
	growthPotentialBaseline = 70
	culturalFitSlope        = 50
	growthPotentialSlope    = 60
	accuracyPivot           = 0.7
)

// TagHighPotential is attached when similar candidates screened accurately.
const TagHighPotential = "High Potential"

// FlagReviewForBias is raised when similar candidates screened poorly.
const FlagReviewForBias = "Review for bias"

// Adjustment is the learning-derived correction applied to a raw assessment.
type Adjustment struct {
	ScoreDelta      float64
	MatchDelta      float64
	AdditionalTags  []string
	BiasFlags       []string
	CulturalFit     float64
	GrowthPotential float64
	SimilarRecords  int
}

// Store holds the full feedback history. Reads happen concurrently during a
// batch; AddFeedback is the only writer and is serialized by the mutex.
type Store struct {
	mu      sync.RWMutex
	records []types.LearningFeedbackRecord

	accuracyRate      float64
	hiringSuccessRate float64
}

// NewStore creates a store seeded with previously persisted records.
func NewStore(records []types.LearningFeedbackRecord) *Store {
	s := &Store{records: append([]types.LearningFeedbackRecord(nil), records...)}
	s.recomputeMetrics()
	return s
}

// AddFeedback appends one outcome record and recomputes running metrics.
// Records are never mutated or removed.
func (s *Store) AddFeedback(record types.LearningFeedbackRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	s.records = append(s.records, record)
	s.recomputeMetrics()
}

// recomputeMetrics updates accuracyRate and hiringSuccessRate. Caller must
// hold the write lock (or be the constructor).
func (s *Store) recomputeMetrics() {
	if len(s.records) == 0 {
		s.accuracyRate = 0
		s.hiringSuccessRate = 0
		return
	}

	totalAccuracy := 0.0
	hired := 0
	for _, record := range s.records {
		totalAccuracy += record.Accuracy
		if record.ActualOutcome == "hired" {
			hired++
		}
	}
	s.accuracyRate = totalAccuracy / float64(len(s.records))
	s.hiringSuccessRate = float64(hired) / float64(len(s.records))
}

// Metrics returns the current accuracy and hiring success rates.
func (s *Store) Metrics() (accuracyRate, hiringSuccessRate float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accuracyRate, s.hiringSuccessRate
}

// Len returns the number of feedback records held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Patterns summarizes the history for prompt seeding.
func (s *Store) Patterns() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return "No learning data available yet"
	}

	hired := 0
	for _, record := range s.records {
		if record.ActualOutcome == "hired" {
			hired++
		}
	}
	return fmt.Sprintf("%d successful hires analyzed", hired)
}

// AdjustmentFor computes the learning correction for a candidate from prior
// records whose similarity exceeds the threshold.
func (s *Store) AdjustmentFor(candidate *types.Candidate) Adjustment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var similar []types.LearningFeedbackRecord
	for i := range s.records {
		if Similarity(candidate, &s.records[i]) > similarityThreshold {
			similar = append(similar, s.records[i])
		}
	}

	if len(similar) == 0 {
		return Adjustment{
			AdditionalTags:  []string{},
			BiasFlags:       []string{},
			CulturalFit:     culturalFitBaseline,
			GrowthPotential: growthPotentialBaseline,
		}
	}

	totalAccuracy := 0.0
	for _, record := range similar {
		totalAccuracy += record.Accuracy
	}
	avgAccuracy := totalAccuracy / float64(len(similar))

	adj := Adjustment{
		AdditionalTags:  []string{},
		BiasFlags:       []string{},
		CulturalFit:     types.ClampScore(culturalFitBaseline + (avgAccuracy-accuracyPivot)*culturalFitSlope),
		GrowthPotential: types.ClampScore(growthPotentialBaseline + (avgAccuracy-accuracyPivot)*growthPotentialSlope),
		SimilarRecords:  len(similar),
	}

	switch {
	case avgAccuracy > highAccuracy:
		adj.ScoreDelta = scoreDeltaUp
		adj.MatchDelta = matchDeltaUp
		adj.AdditionalTags = append(adj.AdditionalTags, TagHighPotential)
	case avgAccuracy < lowAccuracy:
		adj.ScoreDelta = scoreDeltaDown
		adj.MatchDelta = matchDeltaDown
		adj.BiasFlags = append(adj.BiasFlags, FlagReviewForBias)
	}

	return adj
}

// Adjust applies the learning correction to a raw assessment, returning a
// new assessment with all scores clamped back into [0,100]. The input is
// not modified.
func (s *Store) Adjust(candidate *types.Candidate, raw *assessment.RawAssessment) *assessment.RawAssessment {
	adj := s.AdjustmentFor(candidate)

	adjusted := *raw
	adjusted.OverallScore = types.ClampScore(raw.OverallScore + adj.ScoreDelta)
	adjusted.JobMatchScore = types.ClampScore(raw.JobMatchScore + adj.MatchDelta)
	adjusted.CulturalFit = adj.CulturalFit
	adjusted.GrowthPotential = adj.GrowthPotential
	adjusted.Tags = appendUnique(raw.Tags, adj.AdditionalTags)
	adjusted.BiasFlags = appendUnique(raw.BiasFlags, adj.BiasFlags)
	return &adjusted
}

// appendUnique merges extras into base without duplicates, preserving order.
func appendUnique(base, extras []string) []string {
	merged := make([]string, 0, len(base)+len(extras))
	seen := make(map[string]bool, len(base)+len(extras))
	for _, s := range base {
		if !seen[s] {
			merged = append(merged, s)
			seen[s] = true
		}
	}
	for _, s := range extras {
		if !seen[s] {
			merged = append(merged, s)
			seen[s] = true
		}
	}
	return merged
}
