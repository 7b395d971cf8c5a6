package tabular

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ivnamo/isoVisor/internal/domain"
)

// Export writes the whole table with the canonical header: ';' delimited,
// CRLF line endings and a UTF-8 BOM. Cells with delimiters, quotes or line
// breaks are quoted so the file reads back through Import unchanged.
func Export(w io.Writer, rows []domain.FlatRow) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	cw.UseCRLF = true

	if err := cw.Write(domain.ColumnNames()); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("write table row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}
