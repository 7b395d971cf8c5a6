package report

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Encoding selects the text encoding of the delimited report.
type Encoding string

const (
	EncodingUTF8BOM     Encoding = "utf-8-bom"
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1252 Encoding = "windows-1252"
	EncodingLatin1      Encoding = "iso-8859-1"
)

// DefaultEncoding keeps the report readable by spreadsheet tools that sniff a BOM.
const DefaultEncoding = EncodingUTF8BOM

var ErrUnknownEncoding = errors.New("unknown csv encoding")

const bom = "\ufeff"

// Encodings lists the supported encodings, default first.
func Encodings() []Encoding {
	return []Encoding{EncodingUTF8BOM, EncodingUTF8, EncodingWindows1252, EncodingLatin1}
}

// ParseEncoding resolves a user supplied encoding name. Empty selects the default.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultEncoding, nil
	case "utf-8-bom", "utf8-bom", "utf-8-sig":
		return EncodingUTF8BOM, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "windows-1252", "cp1252":
		return EncodingWindows1252, nil
	case "iso-8859-1", "latin1", "latin-1":
		return EncodingLatin1, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
}

// Charset is the value for the Content-Type charset parameter.
func (e Encoding) Charset() string {
	switch e {
	case EncodingWindows1252:
		return "windows-1252"
	case EncodingLatin1:
		return "iso-8859-1"
	}
	return "utf-8"
}

// RenderCSV joins cells with ';' and rows with CRLF. Line breaks inside a cell
// become spaces and cells are trimmed. Cells holding ';' or '"' are quoted with
// inner quotes doubled. Characters the target charset cannot represent are
// replaced.
func RenderCSV(rows []Row, enc Encoding) ([]byte, error) {
	lines := make([]string, len(rows))
	for i, r := range rows {
		cells := make([]string, len(r))
		for j, c := range r {
			cells[j] = EscapeCell(c)
		}
		lines[i] = strings.Join(cells, ";")
	}
	text := strings.Join(lines, "\r\n")

	switch enc {
	case EncodingUTF8BOM, "":
		return []byte(bom + text), nil
	case EncodingUTF8:
		return []byte(text), nil
	case EncodingWindows1252:
		return encode(charmap.Windows1252, text)
	case EncodingLatin1:
		return encode(charmap.ISO8859_1, text)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, string(enc))
}

func encode(cm *charmap.Charmap, text string) ([]byte, error) {
	out, err := encoding.ReplaceUnsupported(cm.NewEncoder()).String(text)
	if err != nil {
		return nil, fmt.Errorf("encode report as %s: %w", cm, err)
	}
	return []byte(out), nil
}

// EscapeCell prepares one cell for the delimited report.
func EscapeCell(c string) string {
	c = strings.NewReplacer("\r", " ", "\n", " ").Replace(c)
	c = strings.TrimSpace(c)
	if strings.ContainsAny(c, `;"`) {
		return `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return c
}
