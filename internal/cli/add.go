package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/records"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one trial to a table file",
	Long: `Parse a recipe and append one row per ingredient to the table file,
creating the file when it does not exist.

Examples:
  isovisor add -t bd.csv --request 120 --type Client --trial E-01 --recipe receta.txt
  isovisor add -t bd.csv --request 120 --trial E-02 --result NOK \
    --comment "precipita" --checklist < receta.txt`,
	RunE: runAdd,
}

var (
	addTable      string
	addRecipe     string
	addRequest    string
	addType       string
	addResult     string
	addChecklist  bool
	addSubmission records.Submission
)

func init() {
	rootCmd.AddCommand(addCmd)

	f := addCmd.Flags()
	f.StringVarP(&addTable, "table", "t", "", "Table CSV file, created if missing (required)")
	f.StringVar(&addRecipe, "recipe", "-", `Recipe text file ("-" for stdin)`)

	f.StringVar(&addSubmission.Responsible, "responsible", "", "Project responsible")
	f.StringVar(&addRequest, "request", "", "Request number")
	f.StringVar(&addType, "type", string(domain.RequestInternal), "Request type: Internal or Client")
	f.StringVar(&addSubmission.BaseProduct, "base-product", "", "Base product / line")
	f.StringVar(&addSubmission.DesignDescription, "design", "", "Design starting data")

	f.StringVar(&addSubmission.TrialID, "trial", "", "Trial ID (required)")
	f.StringVar(&addSubmission.FormulationName, "name", "", "Formulation name")
	f.StringVar(&addSubmission.TrialDate, "date", "", "Trial date (YYYY-MM-DD)")
	f.StringVar(&addResult, "result", string(domain.ResultOK), "Trial result: OK or NOK")
	f.StringVar(&addSubmission.Comment, "comment", "", "Reason / comment")

	f.StringVar(&addSubmission.FinalProduct, "final-product", "", "Final product")
	f.StringVar(&addSubmission.FormulaOKRef, "formula-ok", "", "Approved formula reference")
	f.StringVar(&addSubmission.DeclaredStrengths, "strengths", "", "Declared strengths")

	f.StringVar(&addSubmission.Spec.Description, "spec-description", "", "Specification description")
	f.StringVar(&addSubmission.Spec.Appearance, "spec-appearance", "", "Specification appearance")
	f.StringVar(&addSubmission.Spec.Color, "spec-color", "", "Specification color")
	f.StringVar(&addSubmission.Spec.Density, "spec-density", "", "Specification density")
	f.StringVar(&addSubmission.Spec.PH, "spec-ph", "", "Specification pH")
	f.StringVar(&addSubmission.Spec.Chemistry, "spec-chemistry", "", "Chemical composition, one parameter per line")

	f.BoolVar(&addChecklist, "checklist", false, "Attach the standard F10-03 validation checklist, all pending")
	f.StringVar(&addSubmission.ValidationDate, "validation-date", "", "Validation date (YYYY-MM-DD)")

	_ = addCmd.MarkFlagRequired("table")
	_ = addCmd.MarkFlagRequired("trial")
}

func runAdd(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd.InOrStdin(), addRecipe)
	if err != nil {
		return err
	}
	sub := addSubmission
	sub.RequestID = addRequest
	sub.RequestType = domain.ParseRequestType(addType)
	sub.Result = domain.ParseResult(addResult)
	sub.RecipeText = text
	if addChecklist {
		sub.Checklist = domain.DefaultChecklist()
	}

	n, total, err := addTrial(cmd.Context(), application.Records, addTable, sub)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %d lines for trial %s (%d rows in %s)\n", n, sub.TrialID, total, addTable)
	return nil
}

// addTrial appends sub to the table file and returns the rows added and the
// new table size. The file is left untouched on error.
func addTrial(ctx context.Context, rs *records.Service, path string, sub records.Submission) (int, int, error) {
	store, err := openTable(ctx, path, true)
	if err != nil {
		return 0, 0, err
	}
	n, err := rs.AddTrial(ctx, store, sub)
	if err != nil {
		return 0, 0, err
	}
	if err := saveTable(ctx, store, path); err != nil {
		return 0, 0, err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	return n, total, nil
}
