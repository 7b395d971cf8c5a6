package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/recipe"
	"github.com/ivnamo/isoVisor/internal/records"
	"github.com/ivnamo/isoVisor/internal/session"
	"github.com/ivnamo/isoVisor/internal/tabular"
	"github.com/ivnamo/isoVisor/internal/web/templates"
)

// maxChecklistRows bounds the indexed checklist fields read from a form.
const maxChecklistRows = 100

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request, e *session.Entry) {
	s.renderRegister(w, r, e, http.StatusOK, blankSubmission(), nil)
}

func (s *Server) renderRegister(w http.ResponseWriter, r *http.Request, e *session.Entry, status int, form records.Submission, f *templates.Flash) {
	table, err := tablePreview(r.Context(), e.Store)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	checklist := form.Checklist
	if checklist == nil {
		checklist = domain.DefaultChecklist()
	}
	s.render(w, r, status, templates.RegisterPage(templates.RegisterView{
		Flash:        f,
		Form:         form,
		Checklist:    checklist,
		RequestTypes: []domain.RequestType{domain.RequestInternal, domain.RequestClient},
		Results:      []domain.Result{domain.ResultOK, domain.ResultNOK},
		Table:        table,
		DumpName:     tabular.DefaultFilename,
	}))
}

func (s *Server) handleAddTrial(w http.ResponseWriter, r *http.Request, e *session.Entry) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sub := submissionFromForm(r)

	n, err := s.records.AddTrial(r.Context(), e.Store, sub)
	if err != nil {
		msg, known := addTrialMessage(err)
		if !known {
			s.logger.Error("adding trial", zap.Error(err))
			s.renderRegister(w, r, e, failStatus(r, http.StatusInternalServerError), sub, flash(templates.FlashError, msg))
			return
		}
		s.renderRegister(w, r, e, failStatus(r, http.StatusUnprocessableEntity), sub, flash(templates.FlashError, msg))
		return
	}

	msg := fmt.Sprintf("Añadidas %d líneas para el ensayo %s.", n, strings.TrimSpace(sub.TrialID))
	s.renderRegister(w, r, e, http.StatusOK, nextSubmission(sub), flash(templates.FlashSuccess, msg))
}

func addTrialMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, records.ErrEmptyRecipe):
		return "Primero pega la receta del ensayo.", true
	case errors.Is(err, records.ErrMissingTrialID):
		return "Rellena el ID de ensayo.", true
	case errors.Is(err, records.ErrNoIngredients):
		return "No se han encontrado líneas válidas (materia prima + %). Revisa el texto pegado.", true
	}
	return "Error al guardar el ensayo: " + err.Error(), false
}

func (s *Server) handleRecipePreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	text := r.PostFormValue("recipe")
	s.render(w, r, http.StatusOK, templates.RecipePreview(templates.RecipePreviewView{
		Lines: recipe.Parse(text),
		Empty: strings.TrimSpace(text) == "",
	}))
}

func blankSubmission() records.Submission {
	today := time.Now().Format("2006-01-02")
	return records.Submission{
		RequestType:    domain.RequestInternal,
		Result:         domain.ResultOK,
		TrialDate:      today,
		ValidationDate: today,
	}
}

// nextSubmission keeps the request level fields for the next trial of the
// same request and clears the trial itself.
func nextSubmission(prev records.Submission) records.Submission {
	next := prev
	next.TrialID = ""
	next.FormulationName = ""
	next.Comment = ""
	next.RecipeText = ""
	next.Result = domain.ResultOK
	return next
}

func submissionFromForm(r *http.Request) records.Submission {
	v := r.PostForm
	sub := records.Submission{
		Responsible:       v.Get("responsible"),
		RequestID:         v.Get("request_id"),
		RequestType:       domain.ParseRequestType(v.Get("request_type")),
		BaseProduct:       v.Get("base_product"),
		DesignDescription: v.Get("design_description"),
		TrialID:           v.Get("trial_id"),
		FormulationName:   v.Get("formulation_name"),
		TrialDate:         v.Get("trial_date"),
		Result:            domain.ParseResult(v.Get("result")),
		Comment:           v.Get("comment"),
		RecipeText:        v.Get("recipe"),
		FinalProduct:      v.Get("final_product"),
		FormulaOKRef:      v.Get("formula_ok"),
		DeclaredStrengths: v.Get("strengths"),
		Spec: domain.Specification{
			Description: v.Get("spec_description"),
			Appearance:  v.Get("spec_appearance"),
			Color:       v.Get("spec_color"),
			Density:     v.Get("spec_density"),
			PH:          v.Get("spec_ph"),
			Chemistry:   v.Get("spec_chemistry"),
		},
		ValidationDate: v.Get("validation_date"),
	}
	if v.Get("validation_enabled") != "" {
		sub.Checklist = checklistFromForm(r)
	}
	return sub
}

func checklistFromForm(r *http.Request) []domain.ChecklistItem {
	v := r.PostForm
	n, err := strconv.Atoi(v.Get("check_rows"))
	if err != nil || n < 0 {
		n = 0
	}
	n = min(n, maxChecklistRows)

	items := make([]domain.ChecklistItem, 0, n)
	for i := range n {
		item := domain.ChecklistItem{
			Area:     strings.TrimSpace(v.Get(fmt.Sprintf("check_area_%d", i))),
			Aspect:   strings.TrimSpace(v.Get(fmt.Sprintf("check_aspect_%d", i))),
			Passed:   v.Get(fmt.Sprintf("check_passed_%d", i)) != "",
			Comments: strings.TrimSpace(v.Get(fmt.Sprintf("check_comments_%d", i))),
		}
		if item.Area == "" && item.Aspect == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
