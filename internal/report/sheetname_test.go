package report

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"12", "12"},
		{"2024/15", "202415"},
		{"a:b\\c?d*e[f]g", "abcdefg"},
		{"'quoted'", "quoted"},
		{"///", "Solicitud"},
		{"(none)", "(none)"},
	}
	for _, tt := range tests {
		if got := SanitizeSheetName(tt.in); got != tt.want {
			t.Errorf("SanitizeSheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeSheetName_LongWithSlash(t *testing.T) {
	id := "SOL/2024/" + strings.Repeat("x", 40)
	got := SanitizeSheetName(id)
	if n := utf8.RuneCountInString(got); n > MaxSheetNameLen {
		t.Errorf("length %d exceeds %d", n, MaxSheetNameLen)
	}
	if strings.ContainsAny(got, `:\/?*[]`) {
		t.Errorf("illegal characters left in %q", got)
	}
}

func TestSheetNamer_Dedup(t *testing.T) {
	n := NewSheetNamer()
	long := strings.Repeat("a", 40)
	names := []string{
		n.Name("A/1"),
		n.Name("A1"),
		n.Name("a1"),
		n.Name(long),
		n.Name(long + "b"),
	}
	seen := map[string]bool{}
	for _, name := range names {
		key := strings.ToLower(name)
		if seen[key] {
			t.Errorf("duplicate sheet name %q in %v", name, names)
		}
		seen[key] = true
		if utf8.RuneCountInString(name) > MaxSheetNameLen {
			t.Errorf("%q exceeds %d characters", name, MaxSheetNameLen)
		}
	}
	if names[1] != "A1_2" || names[2] != "a1_3" {
		t.Errorf("unexpected suffixes: %v", names)
	}
	if !strings.HasSuffix(names[4], "_2") {
		t.Errorf("truncated clash should be suffixed, got %q", names[4])
	}
}

func TestCSVFilename(t *testing.T) {
	if got := CSVFilename("12"); got != "Informe_12.csv" {
		t.Errorf("got %q", got)
	}
	if got := CSVFilename("A/B"); got != "Informe_A_B.csv" {
		t.Errorf("got %q", got)
	}
}
