package templates

import (
	"github.com/ivnamo/isoVisor/internal/domain"
	"github.com/ivnamo/isoVisor/internal/recipe"
	"github.com/ivnamo/isoVisor/internal/records"
	"github.com/ivnamo/isoVisor/internal/trials"
)

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
	FlashWarning = "warning"
)

// Flash is a one-off message shown above the page content.
type Flash struct {
	Kind    string
	Message string
}

// TablePreview is the first rows of the flat table.
type TablePreview struct {
	Columns []string
	Rows    [][]string
	Total   int
}

// RegisterView feeds the data entry page.
type RegisterView struct {
	Flash        *Flash
	Form         records.Submission
	Checklist    []domain.ChecklistItem
	RequestTypes []domain.RequestType
	Results      []domain.Result
	Table        TablePreview
	DumpName     string
}

// RecipePreviewView is the live parse of the recipe textarea.
type RecipePreviewView struct {
	Lines []recipe.Line
	Empty bool
}

// ViewerView feeds the report viewer page.
type ViewerView struct {
	Flash     *Flash
	Requests  []string
	Selected  string
	Meta      domain.RequestMetadata
	Trials    trials.Set
	Checklist ChecklistView
	Encodings []string
	Encoding  string
}

// ChecklistView is the decoded validation checklist of a request.
type ChecklistView struct {
	Items   []domain.ChecklistItem
	Missing bool
	Error   string
}
