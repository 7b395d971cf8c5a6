// Package records turns a submitted trial form into flat table rows.
package records

import (
	"errors"
	"strings"

	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/recipe"
)

var (
	// ErrEmptyRecipe is reported when no recipe text was pasted.
	ErrEmptyRecipe = errors.New("paste the trial recipe first")
	// ErrMissingTrialID is reported when the trial id is blank.
	ErrMissingTrialID = errors.New("the trial ID is required")
	// ErrNoIngredients is reported when the recipe text has no valid ingredient lines.
	ErrNoIngredients = errors.New("no valid lines found (raw material + %); check the pasted text")
)

// Submission is one filled-in register form: request data, one trial and its
// recipe text, verification, specification annex and validation checklist.
type Submission struct {
	Responsible       string
	RequestID         string
	RequestType       domain.RequestType
	BaseProduct       string
	DesignDescription string

	TrialID         string
	FormulationName string
	TrialDate       string
	Result          domain.Result
	Comment         string
	RecipeText      string

	FinalProduct      string
	FormulaOKRef      string
	DeclaredStrengths string

	Spec           domain.Specification
	Checklist      []domain.ChecklistItem
	ValidationDate string
}

// Validate checks the submission before parsing, in form order.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.RecipeText) == "" {
		return ErrEmptyRecipe
	}
	if strings.TrimSpace(s.TrialID) == "" {
		return ErrMissingTrialID
	}
	return nil
}

// Build expands the submission into one row per ingredient. Text fields are
// trimmed; every row carries identical trial and request data.
func Build(s Submission, lines []recipe.Line) ([]domain.FlatRow, error) {
	if strings.TrimSpace(s.TrialID) == "" {
		return nil, ErrMissingTrialID
	}
	if len(lines) == 0 {
		return nil, ErrNoIngredients
	}

	template := domain.FlatRow{
		Responsible:       strings.TrimSpace(s.Responsible),
		RequestID:         strings.TrimSpace(s.RequestID),
		RequestType:       s.RequestType,
		BaseProduct:       strings.TrimSpace(s.BaseProduct),
		DesignDescription: strings.TrimSpace(s.DesignDescription),
		TrialID:           strings.TrimSpace(s.TrialID),
		FormulationName:   strings.TrimSpace(s.FormulationName),
		TrialDate:         strings.TrimSpace(s.TrialDate),
		Result:            s.Result,
		Comment:           strings.TrimSpace(s.Comment),
		FinalProduct:      strings.TrimSpace(s.FinalProduct),
		FormulaOKRef:      strings.TrimSpace(s.FormulaOKRef),
		DeclaredStrengths: strings.TrimSpace(s.DeclaredStrengths),
		Spec:              trimSpec(s.Spec),
		ValidationDate:    strings.TrimSpace(s.ValidationDate),
	}

	rows := make([]domain.FlatRow, len(lines))
	for i, l := range lines {
		row := template
		row.RawMaterial = l.Ingredient
		row.WeightPct = l.Percentage
		if s.Checklist != nil {
			items := make([]domain.ChecklistItem, len(s.Checklist))
			copy(items, s.Checklist)
			row.Validation = domain.NewChecklist(items)
		}
		rows[i] = row
	}
	return rows, nil
}

func trimSpec(s domain.Specification) domain.Specification {
	return domain.Specification{
		Description: strings.TrimSpace(s.Description),
		Appearance:  strings.TrimSpace(s.Appearance),
		Color:       strings.TrimSpace(s.Color),
		Density:     strings.TrimSpace(s.Density),
		PH:          strings.TrimSpace(s.PH),
		Chemistry:   strings.TrimSpace(s.Chemistry),
	}
}
