package translator

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/schema"
)

// Field types and validation types recognised by the inference rules.
const (
	fieldTypeYesNo    = "yesno"
	fieldTypeRadio    = "radio"
	fieldTypeDropdown = "dropdown"

	validationInteger = "integer"
	validationNumber  = "number"

	requiredMarker = "y"
)

// inferType applies the precedence rules in order; the first match wins. The
// second result reports whether the row should carry a choices pattern.
func inferType(row dictionary.Row, numericChoices bool) (schema.SemanticType, bool) {
	switch {
	case row.FieldType == fieldTypeYesNo:
		return schema.TypeBoolean, false
	case row.ValidationType == validationInteger:
		return schema.TypeInteger, false
	case row.ValidationType == validationNumber:
		return schema.TypeNumber, false
	case isChoiceField(row.FieldType):
		if numericChoices {
			return schema.TypeInteger, false
		}
		return schema.TypeString, true
	default:
		return schema.TypeString, false
	}
}

func isChoiceField(fieldType string) bool {
	return fieldType == fieldTypeRadio || fieldType == fieldTypeDropdown
}

// bounds returns both validation bounds only when both cells are present and
// parse as finite numbers. Anything else is treated as absent.
func bounds(row dictionary.Row) (*float64, *float64) {
	minimum, ok := parseBound(row.ValidationMin)
	if !ok {
		return nil, nil
	}
	maximum, ok := parseBound(row.ValidationMax)
	if !ok {
		return nil, nil
	}
	return &minimum, &maximum
}

func parseBound(raw string) (float64, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}

// describe returns the label, or "<variable> <form>" when the label is blank.
func describe(label string, row dictionary.Row) string {
	if strings.TrimSpace(label) != "" {
		return label
	}
	return row.VariableName + " " + row.FormName
}

func isRequired(row dictionary.Row) bool {
	return strings.EqualFold(strings.TrimSpace(row.Required), requiredMarker)
}
