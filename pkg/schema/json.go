package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type wireDocument struct {
	Context              map[string]string `json:"@context"`
	MetadataType         string            `json:"@type,omitempty"`
	Name                 string            `json:"name"`
	Description          string            `json:"description"`
	Properties           json.RawMessage   `json:"properties,omitempty"`
	Type                 string            `json:"type,omitempty"`
	AdditionalProperties *bool             `json:"additionalProperties,omitempty"`
	Required             []string          `json:"required,omitempty"`
	Separator            string            `json:"separator,omitempty"`
	Header               *bool             `json:"header,omitempty"`
	Examples             []any             `json:"examples,omitempty"`
}

type wireProperty struct {
	Name        string       `json:"name,omitempty"`
	Type        SemanticType `json:"type"`
	Description string       `json:"description,omitempty"`
	Index       int          `json:"index"`
	Pattern     string       `json:"pattern,omitempty"`
	Minimum     *float64     `json:"minimum,omitempty"`
	Maximum     *float64     `json:"maximum,omitempty"`
}

func toWire(prop Property, withName bool) wireProperty {
	out := wireProperty{
		Type:        prop.Type,
		Description: prop.Description,
		Index:       prop.Index,
		Pattern:     prop.Pattern,
		Minimum:     prop.Minimum,
		Maximum:     prop.Maximum,
	}
	if withName {
		out.Name = prop.Name
	}
	return out
}

func fromWire(name string, wire wireProperty) (Property, error) {
	if name == "" {
		return Property{}, errors.New("schema: property name is required")
	}
	typ, err := ParseSemanticType(string(wire.Type))
	if err != nil {
		return Property{}, fmt.Errorf("schema: property %q: %w", name, err)
	}
	return Property{
		Name:        name,
		Type:        typ,
		Description: wire.Description,
		Index:       wire.Index,
		Pattern:     wire.Pattern,
		Minimum:     wire.Minimum,
		Maximum:     wire.Maximum,
	}, nil
}

// MarshalJSON writes the document with a fixed key order, preserving property
// insertion order and omitting unset optional attributes.
func (d *Document) MarshalJSON() ([]byte, error) {
	props, err := marshalProperties(d.fields, d.shape)
	if err != nil {
		return nil, err
	}
	env := d.envelope
	context := d.context
	if context == nil {
		context = map[string]string{}
	}
	wire := wireDocument{
		Context:              context,
		MetadataType:         d.metadataType,
		Name:                 d.name,
		Description:          d.description,
		Properties:           props,
		Type:                 env.Type,
		AdditionalProperties: env.AdditionalProperties,
		Required:             env.Required,
		Separator:            env.Separator,
		Header:               env.Header,
		Examples:             env.Examples,
	}
	return encodeJSON(wire)
}

func marshalProperties(fields Properties, shape PropertiesShape) (json.RawMessage, error) {
	entries := fields.Entries()
	if shape == ShapeArray {
		list := make([]wireProperty, 0, len(entries))
		for _, prop := range entries {
			list = append(list, toWire(prop, true))
		}
		return encodeJSON(list)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, prop := range entries {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeJSON(prop.Name)
		if err != nil {
			return nil, err
		}
		value, err := encodeJSON(toWire(prop, false))
		if err != nil {
			return nil, fmt.Errorf("schema: marshal property %q: %w", prop.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads either properties shape back into the document and
// re-applies the construction constraints.
func (d *Document) UnmarshalJSON(data []byte) error {
	var wire wireDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("schema: decode document: %w", err)
	}
	if err := validateName(wire.Name); err != nil {
		return err
	}
	if err := validateDescription(wire.Description); err != nil {
		return err
	}

	fields, shape, err := decodeProperties(wire.Properties)
	if err != nil {
		return err
	}

	*d = Document{
		metadataType: wire.MetadataType,
		name:         wire.Name,
		description:  wire.Description,
		context:      wire.Context,
		envelope: Envelope{
			Type:                 wire.Type,
			AdditionalProperties: wire.AdditionalProperties,
			Required:             wire.Required,
			Separator:            wire.Separator,
			Header:               wire.Header,
			Examples:             wire.Examples,
		},
		shape:  shape,
		fields: fields,
	}
	return nil
}

func decodeProperties(raw json.RawMessage) (Properties, PropertiesShape, error) {
	var fields Properties
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fields, ShapeObject, nil
	}

	switch trimmed[0] {
	case '[':
		var list []wireProperty
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fields, "", fmt.Errorf("schema: decode properties: %w", err)
		}
		for _, wire := range list {
			prop, err := fromWire(wire.Name, wire)
			if err != nil {
				return fields, "", err
			}
			fields.Set(prop)
		}
		return fields, ShapeArray, nil
	case '{':
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		if _, err := dec.Token(); err != nil {
			return fields, "", fmt.Errorf("schema: decode properties: %w", err)
		}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return fields, "", fmt.Errorf("schema: decode properties: %w", err)
			}
			name, ok := tok.(string)
			if !ok {
				return fields, "", fmt.Errorf("schema: decode properties: unexpected token %v", tok)
			}
			var wire wireProperty
			if err := dec.Decode(&wire); err != nil {
				return fields, "", fmt.Errorf("schema: decode property %q: %w", name, err)
			}
			prop, err := fromWire(name, wire)
			if err != nil {
				return fields, "", err
			}
			fields.Set(prop)
		}
		return fields, ShapeObject, nil
	default:
		return fields, "", errors.New("schema: properties must be an object or an array")
	}
}

// Serialize renders the document as indented JSON followed by a newline.
// Markup characters in labels and patterns are written verbatim.
func (d *Document) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode reads a serialized document.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("schema: read document: %w", err)
	}
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
