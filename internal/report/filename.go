package report

import "strings"

// Download names and media types.
const (
	WorkbookFilename    = "Informe_ISO_todas_solicitudes.xlsx"
	ContentTypeCSV      = "text/csv"
	ContentTypeWorkbook = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var unsafeFilenameChars = strings.NewReplacer(
	"/", "_", `\`, "_", ":", "_", "*", "_", "?", "_", `"`, "_", "<", "_", ">", "_", "|", "_",
)

// CSVFilename names the delimited report of one request: Informe_<id>.csv.
// Path separators and other characters not allowed in file names become '_'.
func CSVFilename(requestID string) string {
	return "Informe_" + unsafeFilenameChars.Replace(strings.TrimSpace(requestID)) + ".csv"
}
