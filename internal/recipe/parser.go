// Package recipe parses recipe text pasted from a spreadsheet into
// ingredient / percentage pairs.
package recipe

import "strings"

// Line is one parsed recipe entry. Percentage is kept as typed, including
// locale decimal commas.
type Line struct {
	Ingredient string
	Percentage string
}

// Parse splits text into recipe lines. Each non-blank line is split on the
// first delimiter that applies: tab, then semicolon, then comma (only when the
// line has at least two commas, a single comma being read as a decimal
// separator), then runs of whitespace. Lines that do not yield both an
// ingredient and a percentage are skipped.
//
// Known limitation: an ingredient name containing two commas and no tab or
// semicolon is split on its commas.
func Parse(text string) []Line {
	lines := make([]Line, 0)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if l, ok := parseLine(line); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

func parseLine(line string) (Line, bool) {
	sep := delimiter(line)
	if sep == "" {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return Line{}, false
		}
		return Line{
			Ingredient: strings.Join(fields[:len(fields)-1], " "),
			Percentage: fields[len(fields)-1],
		}, true
	}

	parts := make([]string, 0, 2)
	for _, p := range strings.Split(line, sep) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return Line{}, false
	}
	return Line{Ingredient: parts[0], Percentage: parts[1]}, true
}

// delimiter returns the field separator for line, or "" for whitespace.
func delimiter(line string) string {
	switch {
	case strings.Contains(line, "\t"):
		return "\t"
	case strings.Contains(line, ";"):
		return ";"
	case strings.Count(line, ",") >= 2:
		return ","
	}
	return ""
}
