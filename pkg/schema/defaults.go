package schema

import (
	"fmt"
	"strings"
)

const (
	// DefaultMetadataType is written under "@type" unless overridden.
	DefaultMetadataType = "EVI:Schema"

	// MaxNameLength bounds the schema name, counted in runes.
	MaxNameLength = 200

	// MinDescriptionLength is the shortest accepted description, in runes.
	MinDescriptionLength = 5
)

// PropertiesShape selects how the "properties" member is written.
type PropertiesShape string

const (
	// ShapeObject writes properties as an object keyed by field name.
	ShapeObject PropertiesShape = "object"
	// ShapeArray writes properties as a list, each entry carrying its name.
	ShapeArray PropertiesShape = "array"
)

// ParsePropertiesShape converts a configuration value into a shape. An empty
// value selects ShapeObject.
func ParsePropertiesShape(raw string) (PropertiesShape, error) {
	switch PropertiesShape(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ShapeObject:
		return ShapeObject, nil
	case ShapeArray:
		return ShapeArray, nil
	default:
		return "", fmt.Errorf("schema: unknown properties shape %q", raw)
	}
}

// Envelope holds the JSON-Schema-like structural metadata. Nil pointers and
// empty strings or slices mean "absent" and are not serialized.
type Envelope struct {
	Type                 string
	AdditionalProperties *bool
	Required             []string
	Separator            string
	Header               *bool
	Examples             []any
}

func (e Envelope) clone() Envelope {
	out := e
	if e.AdditionalProperties != nil {
		v := *e.AdditionalProperties
		out.AdditionalProperties = &v
	}
	if e.Header != nil {
		v := *e.Header
		out.Header = &v
	}
	if e.Required != nil {
		out.Required = append([]string(nil), e.Required...)
	}
	if e.Examples != nil {
		out.Examples = append([]any(nil), e.Examples...)
	}
	return out
}

// Defaults is the configuration every Document starts from. Build it once at
// startup and pass it to New through WithDefaults; accessors hand out copies
// so a shared Defaults value is never mutated by a Document.
type Defaults struct {
	metadataType string
	context      map[string]string
	envelope     Envelope
	shape        PropertiesShape
}

// DefaultContext returns the standard two-entry JSON-LD vocabulary mapping.
func DefaultContext() map[string]string {
	return map[string]string{
		"@vocab": "https://schema.org/",
		"evi":    "https://w3id.org/EVI#",
	}
}

// DefaultEnvelope returns the envelope metadata applied when none is given.
func DefaultEnvelope() Envelope {
	additional := true
	header := true
	return Envelope{
		Type:                 "object",
		AdditionalProperties: &additional,
		Separator:            ",",
		Header:               &header,
	}
}

// StandardDefaults returns the built-in configuration.
func StandardDefaults() Defaults {
	return NewDefaults(DefaultMetadataType, DefaultContext(), DefaultEnvelope(), ShapeObject)
}

// NewDefaults captures a configuration value. Empty arguments fall back to the
// built-in values.
func NewDefaults(metadataType string, context map[string]string, envelope Envelope, shape PropertiesShape) Defaults {
	if strings.TrimSpace(metadataType) == "" {
		metadataType = DefaultMetadataType
	}
	if len(context) == 0 {
		context = DefaultContext()
	}
	if shape == "" {
		shape = ShapeObject
	}
	return Defaults{
		metadataType: metadataType,
		context:      copyContext(context),
		envelope:     envelope.clone(),
		shape:        shape,
	}
}

// MetadataType returns the "@type" value.
func (d Defaults) MetadataType() string {
	if d.metadataType == "" {
		return DefaultMetadataType
	}
	return d.metadataType
}

// Context returns a copy of the default context mapping.
func (d Defaults) Context() map[string]string {
	if len(d.context) == 0 {
		return DefaultContext()
	}
	return copyContext(d.context)
}

// Envelope returns a copy of the default envelope.
func (d Defaults) Envelope() Envelope {
	return d.envelope.clone()
}

// Shape returns the default properties shape.
func (d Defaults) Shape() PropertiesShape {
	if d.shape == "" {
		return ShapeObject
	}
	return d.shape
}

func copyContext(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
