package web

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ivnamo/isoVisor/internal/report"
	"github.com/ivnamo/isoVisor/internal/session"
)

func (s *Server) handleReportCSV(w http.ResponseWriter, r *http.Request, e *session.Entry) {
	q := r.URL.Query()
	request := strings.TrimSpace(q.Get("request"))
	if request == "" {
		http.Error(w, "falta el parámetro request", http.StatusBadRequest)
		return
	}
	enc := s.opts.Encoding
	if name := q.Get("encoding"); name != "" {
		var err error
		if enc, err = report.ParseEncoding(name); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	f, err := s.exports.RequestReport(r.Context(), e.Store, request, enc)
	switch {
	case errors.Is(err, report.ErrUnknownRequest):
		http.Error(w, "la solicitud no existe en la BBDD", http.StatusNotFound)
		return
	case err != nil:
		s.logger.Error("rendering request report", zap.String("request", request), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	attachment(w, f)
}

func (s *Server) handleReportWorkbook(w http.ResponseWriter, r *http.Request, e *session.Entry) {
	f, err := s.exports.Workbook(r.Context(), e.Store)
	switch {
	case errors.Is(err, report.ErrEmptyTable):
		http.Error(w, "la BBDD de esta sesión está vacía", http.StatusNotFound)
		return
	case err != nil:
		s.logger.Error("rendering workbook", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	attachment(w, f)
}
