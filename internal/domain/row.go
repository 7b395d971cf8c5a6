package domain

import "strings"

// NoRequestID buckets rows whose request number is empty so they stay selectable.
const NoRequestID = "(none)"

type RequestType string

const (
	RequestInternal RequestType = "Internal"
	RequestClient   RequestType = "Client"
)

// ParseRequestType maps form and legacy spellings onto the canonical values.
// Unknown text is kept as-is so imported tables round-trip.
func ParseRequestType(s string) RequestType {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "internal", "interno":
		return RequestInternal
	case "client", "cliente":
		return RequestClient
	}
	return RequestType(s)
}

type Result string

const (
	ResultOK  Result = "OK"
	ResultNOK Result = "NOK"
)

// ParseResult normalizes the OK/NOK trial outcome, keeping unknown text as-is.
func ParseResult(s string) Result {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "OK":
		return ResultOK
	case "NOK":
		return ResultNOK
	}
	return Result(s)
}

// Specification holds the optional product specification annex.
type Specification struct {
	Description string
	Appearance  string
	Color       string
	Density     string
	PH          string
	Chemistry   string
}

// IsZero reports whether no specification field was filled in.
func (s Specification) IsZero() bool {
	return s == Specification{}
}

// FlatRow is one persisted row of the F10-02 table: one ingredient of one trial
// of one request. Every field except RawMaterial and WeightPct is shared by all
// rows of the same trial submission.
type FlatRow struct {
	Responsible       string
	RequestID         string
	RequestType       RequestType
	BaseProduct       string
	DesignDescription string
	TrialID           string
	FormulationName   string
	TrialDate         string
	Result            Result
	RawMaterial       string
	WeightPct         string
	Comment           string
	FinalProduct      string
	FormulaOKRef      string
	DeclaredStrengths string
	Spec              Specification
	Validation        Checklist
	ValidationDate    string
}

// RequestKey returns the request number used for grouping, or NoRequestID.
func (r FlatRow) RequestKey() string {
	id := strings.TrimSpace(r.RequestID)
	if id == "" {
		return NoRequestID
	}
	return id
}

// Metadata extracts the request-level fields carried by the row.
func (r FlatRow) Metadata() RequestMetadata {
	return RequestMetadata{
		Responsible:       r.Responsible,
		RequestID:         r.RequestID,
		RequestType:       r.RequestType,
		BaseProduct:       r.BaseProduct,
		DesignDescription: r.DesignDescription,
		FinalProduct:      r.FinalProduct,
		FormulaOKRef:      r.FormulaOKRef,
		DeclaredStrengths: r.DeclaredStrengths,
		Spec:              r.Spec,
		Validation:        r.Validation,
		ValidationDate:    r.ValidationDate,
	}
}

// RequestMetadata is the request-level part of a report: header, verification,
// specification annex and validation checklist.
type RequestMetadata struct {
	Responsible       string
	RequestID         string
	RequestType       RequestType
	BaseProduct       string
	DesignDescription string
	FinalProduct      string
	FormulaOKRef      string
	DeclaredStrengths string
	Spec              Specification
	Validation        Checklist
	ValidationDate    string
}

// Ingredient is one raw material line of a trial formula.
type Ingredient struct {
	RawMaterial string
	WeightPct   string
}

// Trial is the derived view of all rows sharing a trial id and formulation name.
type Trial struct {
	Key             string
	ID              string
	FormulationName string
	Date            string
	Result          Result
	Comment         string
	Ingredients     []Ingredient
}
