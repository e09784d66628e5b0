package schema

import "fmt"

// SemanticType is the JSON-schema primitive a property is declared as.
type SemanticType string

const (
	TypeBoolean SemanticType = "boolean"
	TypeInteger SemanticType = "integer"
	TypeNumber  SemanticType = "number"
	TypeString  SemanticType = "string"
)

// Valid reports whether t is one of the four permitted semantic types.
func (t SemanticType) Valid() bool {
	switch t {
	case TypeBoolean, TypeInteger, TypeNumber, TypeString:
		return true
	default:
		return false
	}
}

// ParseSemanticType converts a wire value into a SemanticType.
func ParseSemanticType(raw string) (SemanticType, error) {
	t := SemanticType(raw)
	if !t.Valid() {
		return "", fmt.Errorf("schema: unknown semantic type %q", raw)
	}
	return t, nil
}

// Property describes one field of the schema, derived from a single dictionary
// row. Values are copied on every access so a Property is never mutated after
// construction.
type Property struct {
	Name        string
	Type        SemanticType
	Description string
	Index       int
	Pattern     string
	Minimum     *float64
	Maximum     *float64
}

// HasPattern reports whether a pattern constraint is set.
func (p Property) HasPattern() bool {
	return p.Pattern != ""
}

// HasBounds reports whether both numeric bounds are set.
func (p Property) HasBounds() bool {
	return p.Minimum != nil && p.Maximum != nil
}

func (p Property) clone() Property {
	out := p
	if p.Minimum != nil {
		v := *p.Minimum
		out.Minimum = &v
	}
	if p.Maximum != nil {
		v := *p.Maximum
		out.Maximum = &v
	}
	return out
}

// Float returns a pointer to v. Handy when building bounds by hand.
func Float(v float64) *float64 {
	return &v
}
