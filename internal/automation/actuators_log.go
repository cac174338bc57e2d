package automation

import (
	"context"

	"go.uber.org/zap"
)

// logActuator logs every action instead of performing it. Used for dry runs
// and for runs without a configured database.
type logActuator struct {
	logger *zap.Logger
}

// NewLogActuators returns an actuator bundle that records every dispatched
// action in the log and performs no external calls.
func NewLogActuators(logger *zap.Logger) Actuators {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &logActuator{logger: logger}
	return Actuators{Email: a, ATS: a, Calendar: a, Candidate: a}
}

func (a *logActuator) SendEmail(_ context.Context, to, subject, _ string) error {
	a.logger.Info("dry-run email",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

func (a *logActuator) UpdateStatus(_ context.Context, candidateID, status string, _ map[string]any) error {
	a.logger.Info("dry-run ats update",
		zap.String("candidate_id", candidateID),
		zap.String("status", status),
	)
	return nil
}

func (a *logActuator) ScheduleInterview(_ context.Context, candidateID string, params InterviewParams) error {
	a.logger.Info("dry-run interview booking",
		zap.String("candidate_id", candidateID),
		zap.String("type", params.Type),
	)
	return nil
}

func (a *logActuator) AddTag(_ context.Context, candidateID, tag string) error {
	a.logger.Info("dry-run tag",
		zap.String("candidate_id", candidateID),
		zap.String("tag", tag),
	)
	return nil
}

func (a *logActuator) MoveStage(_ context.Context, candidateID, stage string) error {
	a.logger.Info("dry-run stage move",
		zap.String("candidate_id", candidateID),
		zap.String("stage", stage),
	)
	return nil
}
