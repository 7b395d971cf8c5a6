package web

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/report"
	"github.com/ivnamo/isoVisor/internal/session"
	"github.com/ivnamo/isoVisor/internal/trials"
	"github.com/ivnamo/isoVisor/internal/web/templates"
)

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request, e *session.Entry) {
	s.renderViewer(w, r, e, http.StatusOK, strings.TrimSpace(r.URL.Query().Get("request")), nil)
}

// renderViewer shows request, or the first request when it is empty or not in
// the table.
func (s *Server) renderViewer(w http.ResponseWriter, r *http.Request, e *session.Entry, status int, request string, f *templates.Flash) {
	ctx := r.Context()
	rows, err := e.Store.All(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	v := templates.ViewerView{
		Flash:    f,
		Requests: trials.Requests(rows),
		Encoding: string(s.opts.Encoding),
	}
	for _, enc := range report.Encodings() {
		v.Encodings = append(v.Encodings, string(enc))
	}

	if len(v.Requests) > 0 {
		v.Selected = v.Requests[0]
		if request != "" {
			if slices.Contains(v.Requests, request) {
				v.Selected = request
			} else if f == nil {
				v.Flash = flash(templates.FlashWarning, fmt.Sprintf("La solicitud %s no existe en la BBDD.", request))
			}
		}
		v.Meta, _ = trials.Metadata(rows, v.Selected)
		v.Trials = trials.Group(rows, v.Selected)
		v.Checklist = checklistView(v.Meta.Validation)
	}

	s.render(w, r, status, templates.ViewerPage(v))
}

func checklistView(c domain.Checklist) templates.ChecklistView {
	items, err := c.Decode()
	switch {
	case errors.Is(err, domain.ErrNoChecklist):
		return templates.ChecklistView{Missing: true}
	case err != nil:
		return templates.ChecklistView{Error: err.Error()}
	}
	return templates.ChecklistView{Items: items}
}
