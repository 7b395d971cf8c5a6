package web

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ivnamo/isoVisor/internal/session"
	"github.com/ivnamo/isoVisor/internal/web/templates"
)

// maxUploadBytes bounds an imported table.
const maxUploadBytes = 32 << 20

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request, e *session.Entry) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.afterImport(w, r, e, failStatus(r, http.StatusBadRequest), flash(templates.FlashError, "Error al cargar el CSV: "+err.Error()))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		s.afterImport(w, r, e, failStatus(r, http.StatusBadRequest), flash(templates.FlashError, "Selecciona un fichero CSV."))
		return
	}
	defer file.Close()

	n, err := s.records.ImportTable(r.Context(), e.Store, file)
	if err != nil {
		s.logger.Warn("table import rejected", zap.Error(err))
		s.afterImport(w, r, e, failStatus(r, http.StatusUnprocessableEntity), flash(templates.FlashError, "Error al cargar el CSV: "+err.Error()))
		return
	}
	s.afterImport(w, r, e, http.StatusOK, flash(templates.FlashSuccess, fmt.Sprintf("BBDD cargada con %d filas.", n)))
}

// afterImport shows the page the upload form was on.
func (s *Server) afterImport(w http.ResponseWriter, r *http.Request, e *session.Entry, status int, f *templates.Flash) {
	if r.FormValue("next") == "/viewer" {
		s.renderViewer(w, r, e, status, "", f)
		return
	}
	s.renderRegister(w, r, e, status, blankSubmission(), f)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request, e *session.Entry) {
	if err := s.records.Clear(r.Context(), e.Store); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.renderRegister(w, r, e, http.StatusOK, blankSubmission(), flash(templates.FlashInfo, "BBDD vaciada en esta sesión."))
}

func (s *Server) handleTableExport(w http.ResponseWriter, r *http.Request, e *session.Entry) {
	f, err := s.exports.Table(r.Context(), e.Store, r.URL.Query().Get("filename"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	attachment(w, f)
}
