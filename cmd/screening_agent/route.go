package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/matching"
	"github.com/jonathan/resume-screener/internal/source"
)

var routeCommand = &cobra.Command{
	Use:   "route",
	Short: "Recommend jobs per candidate with deterministic matching",
	Long:  "Scores every candidate against every open job using skill overlap and experience distance, and prints the best matches per candidate. No inference calls are made.",
	RunE:  runRouteCmd,
}

var (
	routeCandidates string
	routeJobs       string
)

func init() {
	routeCommand.Flags().StringVarP(&routeCandidates, "candidates", "c", "", "Path to candidate batch JSON file")
	routeCommand.Flags().StringVarP(&routeJobs, "jobs", "j", "", "Path to open jobs JSON file (array of job requirements)")
	_ = routeCommand.MarkFlagRequired("candidates")
	_ = routeCommand.MarkFlagRequired("jobs")

	rootCmd.AddCommand(routeCommand)
}

func runRouteCmd(_ *cobra.Command, _ []string) error {
	candidates, err := source.LoadCandidates(routeCandidates)
	if err != nil {
		return err
	}
	jobs, err := source.LoadJobs(routeJobs)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("jobs file %s is empty", routeJobs)
	}

	routings := matching.RouteCandidates(candidates, jobs)
	encoded, err := json.MarshalIndent(routings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode routing result: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
