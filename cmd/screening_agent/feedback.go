package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/types"
)

var feedbackCommand = &cobra.Command{
	Use:   "feedback",
	Short: "Record a hiring outcome for a screened candidate",
	Long:  "Appends one learning feedback record tying a predicted screening outcome to the actual hiring outcome. Future screening runs read these records to adjust scoring for similar candidates.",
	RunE:  runFeedbackCmd,
}

var (
	feedbackCandidateID string
	feedbackSkills      []string
	feedbackYears       int
	feedbackPredicted   string
	feedbackActual      string
	feedbackAccuracy    float64
	feedbackAreas       []string
	feedbackDatabaseURL string
)

func init() {
	feedbackCommand.Flags().StringVar(&feedbackCandidateID, "candidate-id", "", "Candidate the outcome belongs to")
	feedbackCommand.Flags().StringSliceVar(&feedbackSkills, "skills", nil, "Candidate skills, for similarity matching")
	feedbackCommand.Flags().IntVar(&feedbackYears, "experience-years", 0, "Candidate years of experience")
	feedbackCommand.Flags().StringVar(&feedbackPredicted, "predicted", "", "Predicted outcome (accept, reject, review, interview)")
	feedbackCommand.Flags().StringVar(&feedbackActual, "actual", "", "Actual outcome (for example hired, rejected)")
	feedbackCommand.Flags().Float64Var(&feedbackAccuracy, "accuracy", 0, "Prediction accuracy in [0,1]")
	feedbackCommand.Flags().StringSliceVar(&feedbackAreas, "improvement-areas", nil, "Areas the prediction missed")
	feedbackCommand.Flags().StringVar(&feedbackDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	_ = feedbackCommand.MarkFlagRequired("candidate-id")
	_ = feedbackCommand.MarkFlagRequired("predicted")
	_ = feedbackCommand.MarkFlagRequired("actual")

	rootCmd.AddCommand(feedbackCommand)
}

func runFeedbackCmd(_ *cobra.Command, _ []string) error {
	if feedbackAccuracy < 0 || feedbackAccuracy > 1 {
		return fmt.Errorf("--accuracy must be in [0,1]")
	}

	databaseURL := feedbackDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	record := &types.LearningFeedbackRecord{
		CandidateID:      feedbackCandidateID,
		Skills:           feedbackSkills,
		ExperienceYears:  feedbackYears,
		PredictedOutcome: feedbackPredicted,
		ActualOutcome:    feedbackActual,
		Accuracy:         feedbackAccuracy,
		ImprovementAreas: feedbackAreas,
		CreatedAt:        time.Now().UTC(),
	}
	if err := database.AppendFeedback(ctx, record); err != nil {
		return err
	}

	fmt.Printf("Recorded outcome for %s: predicted %s, actual %s\n",
		feedbackCandidateID, feedbackPredicted, feedbackActual)
	return nil
}
