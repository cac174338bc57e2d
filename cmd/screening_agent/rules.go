package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/source"
)

var rulesCommand = &cobra.Command{
	Use:   "rules",
	Short: "Work with automation rule snapshots",
}

var rulesValidateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Validate an automation rule snapshot file",
	Long:  "Checks a rule snapshot against the JSON Schema and the structural constraints the engine enforces. Exits non-zero when the snapshot would be rejected at screen time.",
	RunE:  runRulesValidateCmd,
}

var (
	rulesPath       string
	rulesSchemaPath string
)

func init() {
	rulesValidateCommand.Flags().StringVarP(&rulesPath, "rules", "r", "", "Path to rule snapshot JSON file")
	rulesValidateCommand.Flags().StringVar(&rulesSchemaPath, "schema", "", "Path to rule schema (defaults to the bundled schema)")
	_ = rulesValidateCommand.MarkFlagRequired("rules")

	rulesCommand.AddCommand(rulesValidateCommand)
	rootCmd.AddCommand(rulesCommand)
}

func runRulesValidateCmd(_ *cobra.Command, _ []string) error {
	schemaPath := rulesSchemaPath
	if schemaPath == "" {
		schemaPath = schemas.ResolveSchemaPath(source.RulesSchemaPath)
		if schemaPath == "" {
			return fmt.Errorf("bundled schema %s not found; pass --schema", source.RulesSchemaPath)
		}
	}

	rules, err := source.LoadRules(rulesPath, schemaPath)
	if err != nil {
		return err
	}

	active := 0
	for i := range rules {
		if rules[i].IsActive {
			active++
		}
	}
	fmt.Printf("OK: %d rules (%d active)\n", len(rules), active)
	return nil
}
