// Package lifecycle tracks candidate status transitions driven by automation
// actions. No other component mutates candidate status.
package lifecycle

import (
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// stageOrder positions each non-terminal state on the forward path.
var stageOrder = map[types.CandidateStatus]int{
	types.StatusNew:         0,
	types.StatusReviewed:    1,
	types.StatusShortlisted: 2,
	types.StatusInterviewed: 3,
	types.StatusHired:       4,
	types.StatusRejected:    4,
}

// Transition returns the candidate with its status moved to target when the
// transition is legal. Transitions out of a terminal state are no-ops, not
// errors: repeated automation triggers for an already-hired or rejected
// candidate must not resurrect it. The input candidate is not modified.
func Transition(candidate types.Candidate, target types.CandidateStatus) types.Candidate {
	current := candidate.Status
	if current == "" {
		current = types.StatusNew
	}

	if current.IsTerminal() {
		return candidate
	}
	if _, known := stageOrder[target]; !known {
		return candidate
	}

	// Review can re-enter the reviewed state from anywhere pre-terminal;
	// everything else only moves forward.
	if target != types.StatusReviewed && stageOrder[target] < stageOrder[current] {
		return candidate
	}

	candidate.Status = target
	return candidate
}

// Apply interprets one automation action against a candidate. Only
// move_stage and ats_update actions carry lifecycle meaning; any other
// action type leaves the candidate unchanged.
func Apply(candidate types.Candidate, action types.Action) types.Candidate {
	switch action.Type {
	case types.ActionMoveStage:
		return Transition(candidate, StageFromParam(action.StringParam("stage", "")))
	case types.ActionATSUpdate:
		return Transition(candidate, StageFromParam(action.StringParam("status", "")))
	default:
		return candidate
	}
}

// StageFromParam maps an externally authored stage/status parameter onto a
// lifecycle state. Unknown values map to an empty status, which Transition
// treats as a no-op.
func StageFromParam(raw string) types.CandidateStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "new":
		return types.StatusNew
	case "reviewed", "under_review", "review":
		return types.StatusReviewed
	case "shortlisted", "shortlist":
		return types.StatusShortlisted
	case "interviewed", "interview", "interview_scheduled":
		return types.StatusInterviewed
	case "hired":
		return types.StatusHired
	case "rejected", "reject":
		return types.StatusRejected
	default:
		return types.CandidateStatus("")
	}
}
