package report

import (
	"bytes"
	"errors"
	"testing"
)

func TestEscapeCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a;b", `"a;b"`},
		{`say "hi"`, `"say ""hi"""`},
		{"  line1\r\nline2 ", "line1  line2"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EscapeCell(tt.in); got != tt.want {
			t.Errorf("EscapeCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderCSV_DefaultHasBOMAndCRLF(t *testing.T) {
	out, err := RenderCSV([]Row{{"a", "b;c"}, {}, {"d"}}, DefaultEncoding)
	if err != nil {
		t.Fatalf("RenderCSV failed: %v", err)
	}
	want := "\ufeffa;\"b;c\"\r\n\r\nd"
	if string(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRenderCSV_Encodings(t *testing.T) {
	rows := []Row{{"Fórmula OK:", "Ñ"}}

	plain, err := RenderCSV(rows, EncodingUTF8)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.HasPrefix(plain, []byte("\ufeff")) {
		t.Error("utf-8 output should not carry a BOM")
	}

	for _, enc := range []Encoding{EncodingWindows1252, EncodingLatin1} {
		out, err := RenderCSV(rows, enc)
		if err != nil {
			t.Fatalf("%s: %v", enc, err)
		}
		// ó = 0xF3, Ñ = 0xD1 in both single byte charsets.
		if !bytes.Contains(out, []byte{'F', 0xF3}) || !bytes.Contains(out, []byte{0xD1}) {
			t.Errorf("%s: unexpected bytes %v", enc, out)
		}
	}
}

func TestRenderCSV_ReplacesUnsupportedRunes(t *testing.T) {
	if _, err := RenderCSV([]Row{{"CO₂ ✓"}}, EncodingLatin1); err != nil {
		t.Errorf("unsupported runes should be replaced, got %v", err)
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want Encoding
	}{
		{"", EncodingUTF8BOM},
		{"UTF-8", EncodingUTF8},
		{"cp1252", EncodingWindows1252},
		{"latin1", EncodingLatin1},
	}
	for _, tt := range tests {
		got, err := ParseEncoding(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseEncoding(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseEncoding("ebcdic"); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("expected ErrUnknownEncoding, got %v", err)
	}
}
