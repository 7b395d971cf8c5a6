package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivnamo/isoVisor/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the ISO report of one request as CSV",
	Long: `Write the F10-02 / F10-03 report of one request as a semicolon
delimited file, named Informe_<request>.csv unless --output is given.

Examples:
  isovisor report -t bd.csv --request 120
  isovisor report -t bd.csv --request 120 --encoding windows-1252 -o -`,
	RunE: runReport,
}

var workbookCmd = &cobra.Command{
	Use:   "workbook",
	Short: "Write the ISO report of every request as one Excel workbook",
	Long: `Write one worksheet per request into ` + report.WorkbookFilename + `,
or into the file given with --output.

Example:
  isovisor workbook -t bd.csv -o informes.xlsx`,
	RunE: runWorkbook,
}

var (
	reportTable    string
	reportRequest  string
	reportEncoding string
	reportOutput   string

	workbookTable  string
	workbookOutput string
)

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(workbookCmd)

	reportCmd.Flags().StringVarP(&reportTable, "table", "t", "", "Table CSV file (required)")
	reportCmd.Flags().StringVarP(&reportRequest, "request", "r", "", "Request number (required)")
	reportCmd.Flags().StringVarP(&reportEncoding, "encoding", "e", "", "Text encoding: utf-8-bom, utf-8, windows-1252, iso-8859-1 (default ISOVISOR_CSV_ENCODING)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", `Output file ("-" for stdout)`)
	_ = reportCmd.MarkFlagRequired("table")
	_ = reportCmd.MarkFlagRequired("request")

	workbookCmd.Flags().StringVarP(&workbookTable, "table", "t", "", "Table CSV file (required)")
	workbookCmd.Flags().StringVarP(&workbookOutput, "output", "o", "", `Output file ("-" for stdout)`)
	_ = workbookCmd.MarkFlagRequired("table")
}

func runReport(cmd *cobra.Command, args []string) error {
	enc := application.Encoding
	if reportEncoding != "" {
		var err error
		if enc, err = report.ParseEncoding(reportEncoding); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	store, err := openTable(ctx, reportTable, false)
	if err != nil {
		return err
	}
	f, err := application.Exports.RequestReport(ctx, store, reportRequest, enc)
	if err != nil {
		return err
	}
	dest, err := writeFile(cmd.OutOrStdout(), f, reportOutput)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Report for request %s written to %s\n", reportRequest, dest)
	return nil
}

func runWorkbook(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openTable(ctx, workbookTable, false)
	if err != nil {
		return err
	}
	f, err := application.Exports.Workbook(ctx, store)
	if err != nil {
		return err
	}
	dest, err := writeFile(cmd.OutOrStdout(), f, workbookOutput)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Workbook written to %s\n", dest)
	return nil
}
