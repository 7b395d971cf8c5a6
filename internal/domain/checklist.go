package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

// ChecklistItem is one row of the F10-03 validation checklist.
type ChecklistItem struct {
	Area     string `json:"area"`
	Aspect   string `json:"aspect"`
	Passed   bool   `json:"passed"`
	Comments string `json:"comments"`
}

// Checklist is the validation checklist attached to a trial submission.
//
// Items is nil when no checklist was recorded. Raw keeps a stored payload that
// could not be decoded so it is written back unchanged on export.
type Checklist struct {
	Items []ChecklistItem
	Raw   string
}

// ErrNoChecklist is returned by Decode when no checklist was recorded.
var ErrNoChecklist = errors.New("no validation checklist recorded")

// NewChecklist wraps items, keeping an empty list distinct from "not recorded".
func NewChecklist(items []ChecklistItem) Checklist {
	if items == nil {
		items = []ChecklistItem{}
	}
	return Checklist{Items: items}
}

// ParseChecklist decodes a stored validation payload. It never fails: a
// payload that is not a JSON array of items is preserved in Raw.
func ParseChecklist(payload string) Checklist {
	if strings.TrimSpace(payload) == "" {
		return Checklist{}
	}
	var items []ChecklistItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return Checklist{Raw: payload}
	}
	if items == nil {
		return Checklist{}
	}
	return Checklist{Items: items}
}

// Present reports whether a payload was recorded, decodable or not.
func (c Checklist) Present() bool {
	return c.Items != nil || c.Raw != ""
}

// Decode returns the checklist items, ErrNoChecklist when nothing was recorded,
// or the JSON error of an undecodable stored payload.
func (c Checklist) Decode() ([]ChecklistItem, error) {
	if c.Raw != "" {
		var items []ChecklistItem
		if err := json.Unmarshal([]byte(c.Raw), &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	if c.Items == nil {
		return nil, ErrNoChecklist
	}
	return c.Items, nil
}

// Encode serializes the checklist for the flat table.
func (c Checklist) Encode() string {
	if c.Raw != "" {
		return c.Raw
	}
	if c.Items == nil {
		return ""
	}
	b, err := json.Marshal(c.Items)
	if err != nil {
		return ""
	}
	return string(b)
}

// DefaultChecklist returns the nine standard F10-03 validation rows, all pending.
func DefaultChecklist() []ChecklistItem {
	return []ChecklistItem{
		{Area: "Producto", Aspect: "Cumple especificación técnica"},
		{Area: "Producto", Aspect: "Estabilidad (envejecimiento acelerado)"},
		{Area: "Producto", Aspect: "Compatibilidad en mezcla"},
		{Area: "Envase", Aspect: "Compatibilidad envase-producto"},
		{Area: "Etiquetado", Aspect: "Etiqueta y ficha técnica revisadas"},
		{Area: "Seguridad", Aspect: "Ficha de datos de seguridad actualizada"},
		{Area: "Legal", Aspect: "Requisitos reglamentarios / registro"},
		{Area: "Producción", Aspect: "Escalado industrial validado"},
		{Area: "Cliente", Aspect: "Aprobación de muestra por el cliente"},
	}
}
