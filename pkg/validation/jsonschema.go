package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-redcapschema/pkg/openapi"
	"github.com/goliatone/go-redcapschema/pkg/schema"
	"github.com/goliatone/go-redcapschema/pkg/translator"
)

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Row     *int   `json:"row,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures validation outcomes for a schema document.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

func (r *SchemaValidationResult) add(issue SchemaIssue) {
	r.Valid = false
	r.Issues = append(r.Issues, issue)
}

// FromTranslation converts row issues into schema issues pointing at the
// affected property.
func FromTranslation(issues translator.Issues) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}
	for _, issue := range issues {
		row := issue.Index
		entry := SchemaIssue{
			Field:   issue.Field,
			Row:     &row,
			Message: strings.TrimPrefix(strings.TrimSpace(errMessage(issue.Err)), "translator: "),
		}
		if issue.Field != "" {
			entry.Path = "#/properties/" + escapePointer(issue.Field)
		}
		result.add(entry)
	}
	return result
}

// ValidateDocument checks the property invariants of a document: every
// semantic type is permitted, patterns only decorate string properties and
// compile, and bounds come in well-ordered pairs.
func ValidateDocument(doc *schema.Document) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}
	if doc == nil {
		result.add(SchemaIssue{Message: "document is nil"})
		return result
	}
	for _, prop := range doc.Fields().Entries() {
		path := "#/properties/" + escapePointer(prop.Name)
		if !prop.Type.Valid() {
			result.add(SchemaIssue{Path: path, Field: prop.Name, Message: fmt.Sprintf("unknown semantic type %q", prop.Type)})
		}
		if prop.Pattern != "" {
			if prop.Type != schema.TypeString {
				result.add(SchemaIssue{Path: path, Field: prop.Name, Message: "pattern set on a non-string property"})
			}
			if _, err := regexp.Compile(prop.Pattern); err != nil {
				result.add(SchemaIssue{Path: path, Field: prop.Name, Message: "pattern does not compile: " + err.Error()})
			}
		}
		if (prop.Minimum == nil) != (prop.Maximum == nil) {
			result.add(SchemaIssue{Path: path, Field: prop.Name, Message: "minimum and maximum must be set together"})
		}
		if prop.Minimum != nil && prop.Maximum != nil && *prop.Minimum > *prop.Maximum {
			result.add(SchemaIssue{Path: path, Field: prop.Name, Message: "minimum exceeds maximum"})
		}
	}
	return result
}

// ValidateExamples checks every envelope example against the document's
// component schema.
func ValidateExamples(doc *schema.Document) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}
	if doc == nil {
		result.add(SchemaIssue{Message: "document is nil"})
		return result
	}
	examples := doc.Envelope().Examples
	if len(examples) == 0 {
		return result
	}

	component := openapi.ComponentSchema(doc)
	for idx, example := range examples {
		err := component.VisitJSON(example, openapi3.MultiErrors())
		if err == nil {
			continue
		}
		for _, issue := range issuesFromVisit(err) {
			issue.Path = "#/examples/" + strconv.Itoa(idx) + issue.Path
			result.add(issue)
		}
	}
	return result
}

func issuesFromVisit(err error) []SchemaIssue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []SchemaIssue
		for _, inner := range multi {
			out = append(out, issuesFromVisit(inner)...)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		segments := schemaErr.JSONPointer()
		pointer := ""
		for _, segment := range segments {
			pointer += "/" + escapePointer(segment)
		}
		return []SchemaIssue{{
			Path:    pointer,
			Field:   strings.Join(segments, "."),
			Message: strings.TrimSpace(schemaErr.Reason),
		}}
	}

	return []SchemaIssue{{Message: strings.TrimSpace(err.Error())}}
}

func errMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

func escapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~", "~0")
	return strings.ReplaceAll(segment, "/", "~1")
}

// FieldPathFromPointer converts a JSON pointer such as
// "#/properties/age" into a dotted field path.
func FieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimSpace(pointer)
	if trimmed == "" {
		return ""
	}
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for idx := 0; idx < len(parts); idx++ {
		segment := strings.ReplaceAll(parts[idx], "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		switch segment {
		case "properties":
			if idx+1 < len(parts) {
				next := strings.ReplaceAll(parts[idx+1], "~1", "/")
				next = strings.ReplaceAll(next, "~0", "~")
				out = append(out, next)
				idx++
			}
		case "examples":
			if idx+1 < len(parts) && isNumeric(parts[idx+1]) {
				idx++
			}
		default:
			if segment == "" {
				continue
			}
			out = append(out, segment)
		}
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, ".")
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
