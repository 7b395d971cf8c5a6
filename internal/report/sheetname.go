package report

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxSheetNameLen is the spreadsheet limit on sheet name length, in characters.
const MaxSheetNameLen = 31

const fallbackSheetName = "Solicitud"

var illegalSheetChars = strings.NewReplacer(
	":", "", `\`, "", "/", "", "?", "", "*", "", "[", "", "]", "",
)

// SanitizeSheetName turns a request id into a legal sheet name: illegal
// characters removed, surrounding apostrophes and spaces trimmed, cut to
// MaxSheetNameLen characters. An id with nothing left becomes "Solicitud".
func SanitizeSheetName(id string) string {
	name := illegalSheetChars.Replace(id)
	name = strings.Trim(strings.TrimSpace(name), "'")
	name = strings.TrimSpace(name)
	if name == "" {
		return fallbackSheetName
	}
	return truncate(name, MaxSheetNameLen)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimRight(string(r[:n]), "'")
}

// SheetNamer hands out unique sheet names. Names compare case-insensitively,
// as spreadsheets do; clashes get "_2", "_3"... within the length limit.
type SheetNamer struct {
	used map[string]bool
}

func NewSheetNamer() *SheetNamer {
	return &SheetNamer{used: make(map[string]bool)}
}

// Name returns the sheet name for request id.
func (n *SheetNamer) Name(id string) string {
	base := SanitizeSheetName(id)
	name := base
	for i := 2; n.used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf("_%d", i)
		name = truncate(base, MaxSheetNameLen-len(suffix)) + suffix
	}
	n.used[strings.ToLower(name)] = true
	return name
}
