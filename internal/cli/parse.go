package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ivnamo/isoVisor/internal/recipe"
	"github.com/ivnamo/isoVisor/internal/records"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse pasted recipe text into ingredient / percentage pairs",
	Long: `Parse recipe text copied from a spreadsheet and print one
"ingredient<TAB>percentage" line per ingredient found.

Reads the file argument, or stdin when it is omitted or "-".

Examples:
  isovisor parse receta.txt
  pbpaste | isovisor parse`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}
	text, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	n, err := writeRecipe(cmd.OutOrStdout(), text)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d lines parsed\n", n)
	return nil
}

// writeRecipe prints the parsed lines as TSV.
func writeRecipe(w io.Writer, text string) (int, error) {
	lines := recipe.Parse(text)
	if len(lines) == 0 {
		return 0, records.ErrNoIngredients
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", l.Ingredient, l.Percentage); err != nil {
			return 0, err
		}
	}
	return len(lines), nil
}
