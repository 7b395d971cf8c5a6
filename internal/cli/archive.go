package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivnamo/isoVisor/internal/ports"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect the archive of issued reports",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived report copies, newest first",
	Long: `List the report copies kept by the configured archive
(ISOVISOR_ARCHIVE_DRIVER), one per line with key, size and date.

Example:
  ISOVISOR_ARCHIVE_DRIVER=fs isovisor archive list`,
	RunE: runArchiveList,
}

var errNoArchive = errors.New("report archive is disabled; set ISOVISOR_ARCHIVE_DRIVER")

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd)
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	if application.Archive == nil {
		return errNoArchive
	}
	reports, err := application.Archive.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list archive: %w", err)
	}
	if len(reports) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No archived reports")
		return nil
	}
	return writeArchive(cmd.OutOrStdout(), reports)
}

func writeArchive(w io.Writer, reports []ports.ArchivedReport) error {
	for _, r := range reports {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\n", r.Key, r.Size, r.CreatedAt.Local().Format(time.DateTime)); err != nil {
			return err
		}
	}
	return nil
}
