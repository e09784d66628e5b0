package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-redcapschema/pkg/schema"
)

const (
	// Version is the OpenAPI version written by Export.
	Version = "3.0.3"

	extensionIndex   = "x-index"
	extensionContext = "x-jsonld-context"
	extensionType    = "x-jsonld-type"
)

var componentNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ComponentName converts a schema name into a valid components key.
func ComponentName(name string) string {
	cleaned := componentNameSanitizer.ReplaceAllString(strings.TrimSpace(name), "_")
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		return "Schema"
	}
	return cleaned
}

// PropertySchema converts one property descriptor.
func PropertySchema(prop schema.Property) *openapi3.Schema {
	out := &openapi3.Schema{
		Type:        &openapi3.Types{string(prop.Type)},
		Description: prop.Description,
		Pattern:     prop.Pattern,
		Extensions:  map[string]any{extensionIndex: prop.Index},
	}
	if prop.Minimum != nil {
		v := *prop.Minimum
		out.Min = &v
	}
	if prop.Maximum != nil {
		v := *prop.Maximum
		out.Max = &v
	}
	return out
}

// ComponentSchema converts the document into an object schema whose
// properties follow the document's property order in the "x-index" extension.
func ComponentSchema(doc *schema.Document) *openapi3.Schema {
	envelope := doc.Envelope()
	typ := envelope.Type
	if typ == "" {
		typ = openapi3.TypeObject
	}

	out := &openapi3.Schema{
		Type:        &openapi3.Types{typ},
		Title:       doc.Name(),
		Description: doc.Description(),
		Properties:  make(openapi3.Schemas),
		Required:    envelope.Required,
		Extensions: map[string]any{
			extensionType:    doc.MetadataType(),
			extensionContext: doc.Context(),
		},
	}
	if envelope.AdditionalProperties != nil {
		allowed := *envelope.AdditionalProperties
		out.AdditionalProperties = openapi3.AdditionalProperties{Has: &allowed}
	}
	if len(envelope.Examples) > 0 {
		out.Example = envelope.Examples[0]
	}

	for _, prop := range doc.Fields().Entries() {
		out.Properties[prop.Name] = openapi3.NewSchemaRef("", PropertySchema(prop))
	}
	return out
}

type exportDocument struct {
	OpenAPI    string           `json:"openapi"`
	Info       *openapi3.Info   `json:"info"`
	Paths      map[string]any   `json:"paths"`
	Components exportComponents `json:"components"`
}

type exportComponents struct {
	Schemas openapi3.Schemas `json:"schemas"`
}

// Export renders an OpenAPI document exposing the schema under
// components.schemas.<ComponentName(name)>. The output is validated by loading
// it back through kin-openapi.
func Export(ctx context.Context, doc *schema.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is nil")
	}

	payload := exportDocument{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       doc.Name(),
			Description: doc.Description(),
			Version:     "1.0.0",
		},
		Paths: map[string]any{},
		Components: exportComponents{
			Schemas: openapi3.Schemas{
				ComponentName(doc.Name()): openapi3.NewSchemaRef("", ComponentSchema(doc)),
			},
		},
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal export: %w", err)
	}
	if _, err := Load(ctx, data); err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Load parses and validates an exported OpenAPI document.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	exported, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load export: %w", err)
	}
	if err := exported.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate export: %w", err)
	}
	return exported, nil
}
