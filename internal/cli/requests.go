package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/trials"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List the request numbers of a table",
	Long: `List the distinct request numbers of a table with their trial count,
numbers first in numeric order, then the rest alphabetically.

Example:
  isovisor requests --table F10_02_BD_ensayos.csv`,
	RunE: runRequests,
}

var requestsTable string

func init() {
	rootCmd.AddCommand(requestsCmd)
	requestsCmd.Flags().StringVarP(&requestsTable, "table", "t", "", "Table CSV file (required)")
	_ = requestsCmd.MarkFlagRequired("table")
}

func runRequests(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openTable(ctx, requestsTable, false)
	if err != nil {
		return err
	}
	rows, err := store.All(ctx)
	if err != nil {
		return err
	}
	return writeRequests(cmd.OutOrStdout(), rows)
}

func writeRequests(w io.Writer, rows []domain.FlatRow) error {
	for _, id := range trials.Requests(rows) {
		meta, _ := trials.Metadata(rows, id)
		n := len(trials.Group(rows, id))
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d trials\t%s\n", id, meta.RequestType, n, meta.Responsible); err != nil {
			return err
		}
	}
	return nil
}
