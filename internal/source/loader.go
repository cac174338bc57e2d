// Package source loads the externally authored inputs of a screening run:
// candidate batches, the job requirement, and the automation rule snapshot.
// The core does not care how these files were produced.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
)

// RulesSchemaPath is the repo-relative location of the rule snapshot schema.
const RulesSchemaPath = "schemas/automation_rules.schema.json"

var validate = validator.New()

// SnapshotError marks an unusable input file. Configuration errors are
// batch-fatal, unlike per-candidate failures.
type SnapshotError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SnapshotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid snapshot %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid snapshot %s: %s", e.Path, e.Message)
}

func (e *SnapshotError) Unwrap() error {
	return e.Cause
}

// LoadCandidates reads and validates a candidate batch file. Candidates with
// no status start the lifecycle at new.
func LoadCandidates(path string) ([]types.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SnapshotError{Path: path, Message: "cannot read candidates", Cause: err}
	}

	var candidates []types.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, &SnapshotError{Path: path, Message: "cannot parse candidates JSON", Cause: err}
	}
	if len(candidates) == 0 {
		return nil, &SnapshotError{Path: path, Message: "candidate batch is empty"}
	}

	seen := make(map[string]bool, len(candidates))
	for i := range candidates {
		if err := validate.Struct(&candidates[i]); err != nil {
			return nil, &SnapshotError{
				Path:    path,
				Message: fmt.Sprintf("candidate %d failed validation", i),
				Cause:   err,
			}
		}
		if seen[candidates[i].ID] {
			return nil, &SnapshotError{
				Path:    path,
				Message: fmt.Sprintf("duplicate candidate id %s", candidates[i].ID),
			}
		}
		seen[candidates[i].ID] = true
		if candidates[i].Status == "" {
			candidates[i].Status = types.StatusNew
		}
	}
	return candidates, nil
}

// LoadJob reads and validates the job requirement file.
func LoadJob(path string) (*types.JobRequirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SnapshotError{Path: path, Message: "cannot read job", Cause: err}
	}

	var job types.JobRequirement
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, &SnapshotError{Path: path, Message: "cannot parse job JSON", Cause: err}
	}
	if err := validate.Struct(&job); err != nil {
		return nil, &SnapshotError{Path: path, Message: "job failed validation", Cause: err}
	}
	return &job, nil
}

// LoadJobs reads a multi-job file used by smart routing.
func LoadJobs(path string) ([]types.JobRequirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SnapshotError{Path: path, Message: "cannot read jobs", Cause: err}
	}

	var jobs []types.JobRequirement
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, &SnapshotError{Path: path, Message: "cannot parse jobs JSON", Cause: err}
	}
	for i := range jobs {
		if err := validate.Struct(&jobs[i]); err != nil {
			return nil, &SnapshotError{
				Path:    path,
				Message: fmt.Sprintf("job %d failed validation", i),
				Cause:   err,
			}
		}
	}
	return jobs, nil
}

// LoadRules reads an automation rule snapshot, validating it against the
// JSON Schema at schemaPath first and then structurally. An unparseable rule
// set is batch-fatal, so errors here are never softened.
func LoadRules(path, schemaPath string) ([]types.AutomationRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SnapshotError{Path: path, Message: "cannot read rules", Cause: err}
	}

	if schemaPath != "" {
		schemaData, err := os.ReadFile(schemaPath)
		if err != nil {
			return nil, &SnapshotError{Path: schemaPath, Message: "cannot read rule schema", Cause: err}
		}
		if err := schemas.ValidateJSONString(string(schemaData), string(data)); err != nil {
			return nil, &SnapshotError{Path: path, Message: "rule snapshot failed schema validation", Cause: err}
		}
	}

	var rules []types.AutomationRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, &SnapshotError{Path: path, Message: "cannot parse rules JSON", Cause: err}
	}

	seen := make(map[string]bool, len(rules))
	for i := range rules {
		if err := validate.Struct(&rules[i]); err != nil {
			return nil, &SnapshotError{
				Path:    path,
				Message: fmt.Sprintf("rule %s failed validation", rules[i].ID),
				Cause:   err,
			}
		}
		if seen[rules[i].ID] {
			return nil, &SnapshotError{Path: path, Message: fmt.Sprintf("duplicate rule id %s", rules[i].ID)}
		}
		seen[rules[i].ID] = true
	}
	return rules, nil
}

// LoadIntake reads the optional shared intake document. A missing path
// returns an empty string without error.
func LoadIntake(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &SnapshotError{Path: path, Message: "cannot read intake document", Cause: err}
	}
	return strings.TrimSpace(string(data)), nil
}
