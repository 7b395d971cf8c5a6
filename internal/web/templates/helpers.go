package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/ivnamo/isoVisor/internal/domain"
)

// html writes markup, remembering the first write error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

// text writes escaped content.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes name="escaped value".
func (h *html) attr(name, value string) {
	h.rawf(` %s="%s"`, name, templ.EscapeString(value))
}

// component renders a nested component in place.
func (h *html) component(ctx context.Context, c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(ctx, h.w)
	}
}

func statusLabel(passed bool) string {
	if passed {
		return "OK"
	}
	return "NOK/Pendiente"
}

func resultClass(r domain.Result) string {
	switch r {
	case domain.ResultOK:
		return "ok"
	case domain.ResultNOK:
		return "nok"
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
