package domain

// Column names a field of the flat table. The order of Columns is the contract
// shared by import, export and the in-memory store.
type Column string

const (
	ColResponsible       Column = "Responsible"
	ColRequestID         Column = "Request No."
	ColRequestType       Column = "Type"
	ColBaseProduct       Column = "Base Product"
	ColDesignDescription Column = "Design Description"
	ColTrialID           Column = "Trial ID"
	ColFormulationName   Column = "Formulation Name"
	ColTrialDate         Column = "Trial Date"
	ColResult            Column = "Result"
	ColRawMaterial       Column = "Raw Material"
	ColWeightPct         Column = "% Weight"
	ColComment           Column = "Comment"
	ColFinalProduct      Column = "Final Product"
	ColFormulaOK         Column = "Formula OK"
	ColStrengths         Column = "Strengths"
	ColSpecDescription   Column = "Spec Description"
	ColSpecAppearance    Column = "Spec Appearance"
	ColSpecColor         Column = "Spec Color"
	ColSpecDensity       Column = "Spec Density"
	ColSpecPH            Column = "Spec pH"
	ColSpecChemistry     Column = "Spec Chemistry"
	ColValidation        Column = "Validation"
	ColValidationDate    Column = "Validation Date"
)

// Columns is the canonical, order-significant column set.
var Columns = []Column{
	ColResponsible,
	ColRequestID,
	ColRequestType,
	ColBaseProduct,
	ColDesignDescription,
	ColTrialID,
	ColFormulationName,
	ColTrialDate,
	ColResult,
	ColRawMaterial,
	ColWeightPct,
	ColComment,
	ColFinalProduct,
	ColFormulaOK,
	ColStrengths,
	ColSpecDescription,
	ColSpecAppearance,
	ColSpecColor,
	ColSpecDensity,
	ColSpecPH,
	ColSpecChemistry,
	ColValidation,
	ColValidationDate,
}

// ColumnNames returns Columns as plain strings, e.g. for a CSV header.
func ColumnNames() []string {
	names := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = string(c)
	}
	return names
}

// IsColumn reports whether name is one of the canonical columns.
func IsColumn(name string) bool {
	for _, c := range Columns {
		if string(c) == name {
			return true
		}
	}
	return false
}

// Field returns the text value of a column. The validation checklist is
// returned in its serialized form.
func (r FlatRow) Field(c Column) string {
	switch c {
	case ColResponsible:
		return r.Responsible
	case ColRequestID:
		return r.RequestID
	case ColRequestType:
		return string(r.RequestType)
	case ColBaseProduct:
		return r.BaseProduct
	case ColDesignDescription:
		return r.DesignDescription
	case ColTrialID:
		return r.TrialID
	case ColFormulationName:
		return r.FormulationName
	case ColTrialDate:
		return r.TrialDate
	case ColResult:
		return string(r.Result)
	case ColRawMaterial:
		return r.RawMaterial
	case ColWeightPct:
		return r.WeightPct
	case ColComment:
		return r.Comment
	case ColFinalProduct:
		return r.FinalProduct
	case ColFormulaOK:
		return r.FormulaOKRef
	case ColStrengths:
		return r.DeclaredStrengths
	case ColSpecDescription:
		return r.Spec.Description
	case ColSpecAppearance:
		return r.Spec.Appearance
	case ColSpecColor:
		return r.Spec.Color
	case ColSpecDensity:
		return r.Spec.Density
	case ColSpecPH:
		return r.Spec.PH
	case ColSpecChemistry:
		return r.Spec.Chemistry
	case ColValidation:
		return r.Validation.Encode()
	case ColValidationDate:
		return r.ValidationDate
	}
	return ""
}

// SetField assigns the text value of a column. Enum columns are normalized and
// the validation column is decoded into a Checklist.
func (r *FlatRow) SetField(c Column, v string) {
	switch c {
	case ColResponsible:
		r.Responsible = v
	case ColRequestID:
		r.RequestID = v
	case ColRequestType:
		r.RequestType = ParseRequestType(v)
	case ColBaseProduct:
		r.BaseProduct = v
	case ColDesignDescription:
		r.DesignDescription = v
	case ColTrialID:
		r.TrialID = v
	case ColFormulationName:
		r.FormulationName = v
	case ColTrialDate:
		r.TrialDate = v
	case ColResult:
		r.Result = ParseResult(v)
	case ColRawMaterial:
		r.RawMaterial = v
	case ColWeightPct:
		r.WeightPct = v
	case ColComment:
		r.Comment = v
	case ColFinalProduct:
		r.FinalProduct = v
	case ColFormulaOK:
		r.FormulaOKRef = v
	case ColStrengths:
		r.DeclaredStrengths = v
	case ColSpecDescription:
		r.Spec.Description = v
	case ColSpecAppearance:
		r.Spec.Appearance = v
	case ColSpecColor:
		r.Spec.Color = v
	case ColSpecDensity:
		r.Spec.Density = v
	case ColSpecPH:
		r.Spec.PH = v
	case ColSpecChemistry:
		r.Spec.Chemistry = v
	case ColValidation:
		r.Validation = ParseChecklist(v)
	case ColValidationDate:
		r.ValidationDate = v
	}
}

// Values returns the row's cells in canonical column order.
func (r FlatRow) Values() []string {
	values := make([]string, len(Columns))
	for i, c := range Columns {
		values[i] = r.Field(c)
	}
	return values
}
