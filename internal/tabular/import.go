// Package tabular reads and writes the flat trial table as delimited text.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ivnamo/isoVisor/internal/domain"
)

// DefaultFilename is the suggested name of a full table download.
const DefaultFilename = "F10_02_BD_ensayos.csv"

var ErrNoHeader = errors.New("the file has no header row")

const bom = "\ufeff"

// legacyHeaders maps lower-cased header names used by older exports to the
// canonical columns.
var legacyHeaders = map[string]domain.Column{
	"nº solicitud":        domain.ColRequestID,
	"n° solicitud":        domain.ColRequestID,
	"no solicitud":        domain.ColRequestID,
	"tipo":                domain.ColRequestType,
	"producto base":       domain.ColBaseProduct,
	"descripción diseño":  domain.ColDesignDescription,
	"descripcion diseño":  domain.ColDesignDescription,
	"descripcion diseno":  domain.ColDesignDescription,
	"id ensayo":           domain.ColTrialID,
	"nombre formulación":  domain.ColFormulationName,
	"nombre formulacion":  domain.ColFormulationName,
	"fecha ensayo":        domain.ColTrialDate,
	"resultado":           domain.ColResult,
	"materia prima":       domain.ColRawMaterial,
	"% peso":              domain.ColWeightPct,
	"motivo / comentario": domain.ColComment,
	"producto final":      domain.ColFinalProduct,
	"fórmula ok":          domain.ColFormulaOK,
	"riquezas":            domain.ColStrengths,
	"validacion":          domain.ColValidation,
	"validación":          domain.ColValidation,
	"validation payload":  domain.ColValidation,
	"fecha validación":    domain.ColValidationDate,
	"fecha validacion":    domain.ColValidationDate,
	"fecha de validación": domain.ColValidationDate,
}

// Import reads a delimited table with an unknown delimiter. Headers are
// normalized to the canonical columns; missing columns are left empty and
// unknown ones are dropped. Input that is not valid UTF-8 is read as
// Windows-1252.
func Import(r io.Reader) ([]domain.FlatRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte(bom))
	if !utf8.Valid(data) {
		if data, err = charmap.Windows1252.NewDecoder().Bytes(data); err != nil {
			return nil, fmt.Errorf("decode table: %w", err)
		}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoHeader
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = SniffDelimiter(firstLine(data))
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	columns := make([]domain.Column, len(records[0]))
	for i, h := range records[0] {
		columns[i] = NormalizeHeader(h)
	}

	rows := make([]domain.FlatRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		var row domain.FlatRow
		filled := make(map[domain.Column]bool, len(columns))
		for i, v := range rec {
			if i >= len(columns) || columns[i] == "" || filled[columns[i]] {
				continue
			}
			// Several headers may share a column; the first non-empty cell wins.
			if strings.TrimSpace(v) != "" {
				filled[columns[i]] = true
			}
			row.SetField(columns[i], v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// NormalizeHeader maps a header cell to its canonical column, or "" when the
// header is not part of the table.
func NormalizeHeader(h string) domain.Column {
	h = strings.TrimSpace(strings.ReplaceAll(h, bom, ""))
	lower := strings.ToLower(h)
	if strings.HasPrefix(lower, "responsible") || strings.HasPrefix(lower, "responsable") {
		return domain.ColResponsible
	}
	for _, c := range domain.Columns {
		if strings.EqualFold(h, string(c)) {
			return c
		}
	}
	return legacyHeaders[lower]
}

// SniffDelimiter picks the most frequent of ';', ',', tab and '|' outside
// quotes in the header line. Ties go to the earlier candidate; ',' is the
// fallback for single column files.
func SniffDelimiter(header string) rune {
	candidates := []rune{';', ',', '\t', '|'}
	counts := make(map[rune]int, len(candidates))
	quoted := false
	for _, r := range header {
		if r == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[r]++
		}
	}
	best, bestCount := ',', 0
	for _, c := range candidates {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}

func firstLine(data []byte) string {
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return string(data[:i])
	}
	return string(data)
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
