package dictionary

import (
	"fmt"
	"strings"
)

// Column names as they appear in a REDCap data dictionary export.
const (
	ColumnVariableName   = "Variable / Field Name"
	ColumnFormName       = "Form Name"
	ColumnFieldLabel     = "Field Label"
	ColumnFieldType      = "Field Type"
	ColumnValidationType = "Text Validation Type OR Show Slider Number"
	ColumnChoices        = "Choices, Calculations, OR Slider Labels"
	ColumnValidationMin  = "Text Validation Min"
	ColumnValidationMax  = "Text Validation Max"
	ColumnRequired       = "Required Field?"
)

// RequiredColumns lists the header cells every dictionary must provide.
var RequiredColumns = []string{
	ColumnVariableName,
	ColumnFormName,
	ColumnFieldLabel,
	ColumnFieldType,
	ColumnValidationType,
	ColumnChoices,
	ColumnValidationMin,
	ColumnValidationMax,
}

// columnAliases maps the snake_case headers produced by the REDCap API
// metadata export onto the canonical CSV export headers.
var columnAliases = map[string]string{
	"field_name":     ColumnVariableName,
	"form_name":      ColumnFormName,
	"field_label":    ColumnFieldLabel,
	"field_type":     ColumnFieldType,
	"text_validation_type_or_show_slider_number": ColumnValidationType,
	"select_choices_or_calculations":             ColumnChoices,
	"text_validation_min":                        ColumnValidationMin,
	"text_validation_max":                        ColumnValidationMax,
	"required_field":                             ColumnRequired,
}

// Row is one dictionary entry exposed through fixed accessors. Cells are kept
// verbatim; interpretation belongs to the translator.
type Row struct {
	// Index is the zero-based position of the row among data rows.
	Index          int
	VariableName   string
	FormName       string
	FieldLabel     string
	FieldType      string
	ValidationType string
	Choices        string
	ValidationMin  string
	ValidationMax  string
	// Required holds the optional "Required Field?" cell; empty when the
	// column is absent.
	Required string
}

// Table is the materialized dictionary: the header it was read with and one
// Row per data line in source order.
type Table struct {
	Columns []string
	Rows    []Row
	// HasRequiredColumn reports whether the optional "Required Field?" column
	// was present in the header.
	HasRequiredColumn bool
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// BuildTable validates the header once and projects each record onto the Row
// contract. A missing required column fails with ErrSourceMalformed; records
// shorter than the header yield empty cells.
func BuildTable(header []string, records [][]string) (Table, error) {
	positions := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	for idx, cell := range header {
		name := canonicalColumn(cell)
		columns = append(columns, name)
		if _, exists := positions[name]; exists {
			continue
		}
		positions[name] = idx
	}

	var missing []string
	for _, column := range RequiredColumns {
		if _, ok := positions[column]; !ok {
			missing = append(missing, fmt.Sprintf("%q", column))
		}
	}
	if len(missing) > 0 {
		return Table{}, fmt.Errorf("%w: missing required columns %s", ErrSourceMalformed, strings.Join(missing, ", "))
	}

	_, hasRequired := positions[ColumnRequired]
	cell := func(record []string, column string) string {
		idx, ok := positions[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		if isBlankRecord(record) {
			continue
		}
		rows = append(rows, Row{
			Index:          len(rows),
			VariableName:   strings.TrimSpace(cell(record, ColumnVariableName)),
			FormName:       strings.TrimSpace(cell(record, ColumnFormName)),
			FieldLabel:     cell(record, ColumnFieldLabel),
			FieldType:      strings.TrimSpace(cell(record, ColumnFieldType)),
			ValidationType: strings.TrimSpace(cell(record, ColumnValidationType)),
			Choices:        cell(record, ColumnChoices),
			ValidationMin:  strings.TrimSpace(cell(record, ColumnValidationMin)),
			ValidationMax:  strings.TrimSpace(cell(record, ColumnValidationMax)),
			Required:       strings.TrimSpace(cell(record, ColumnRequired)),
		})
	}

	return Table{
		Columns:           columns,
		Rows:              rows,
		HasRequiredColumn: hasRequired,
	}, nil
}

func canonicalColumn(raw string) string {
	name := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
	if alias, ok := columnAliases[strings.ToLower(name)]; ok {
		return alias
	}
	return name
}

func isBlankRecord(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
