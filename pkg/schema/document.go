package schema

import (
	"strings"
	"unicode/utf8"
)

// Document is the in-memory schema produced by a conversion. Construct it with
// New; the translator populates its properties and the caller serializes it.
type Document struct {
	metadataType string
	name         string
	description  string
	context      map[string]string
	envelope     Envelope
	shape        PropertiesShape
	fields       Properties
}

// Option configures a Document during construction.
type Option func(*documentConfig)

type documentConfig struct {
	defaults     Defaults
	hasDefaults  bool
	metadataType string
	context      map[string]string
	envelope     *Envelope
	shape        PropertiesShape
}

// WithDefaults starts the Document from a preconfigured Defaults value instead
// of StandardDefaults.
func WithDefaults(defaults Defaults) Option {
	return func(cfg *documentConfig) {
		cfg.defaults = defaults
		cfg.hasDefaults = true
	}
}

// WithContext replaces the default @context mapping.
func WithContext(context map[string]string) Option {
	return func(cfg *documentConfig) {
		cfg.context = copyContext(context)
	}
}

// WithEnvelope replaces the default envelope metadata.
func WithEnvelope(envelope Envelope) Option {
	return func(cfg *documentConfig) {
		clone := envelope.clone()
		cfg.envelope = &clone
	}
}

// WithMetadataType overrides the "@type" value.
func WithMetadataType(metadataType string) Option {
	return func(cfg *documentConfig) {
		cfg.metadataType = strings.TrimSpace(metadataType)
	}
}

// WithShape selects how properties are serialized.
func WithShape(shape PropertiesShape) Option {
	return func(cfg *documentConfig) {
		cfg.shape = shape
	}
}

// New validates name and description and returns an empty Document. It fails
// with *ValidationError when the name is blank or longer than MaxNameLength,
// or the description is blank or shorter than MinDescriptionLength runes.
func New(name, description string, options ...Option) (*Document, error) {
	cfg := documentConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if !cfg.hasDefaults {
		cfg.defaults = StandardDefaults()
	}

	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	doc := &Document{
		metadataType: cfg.defaults.MetadataType(),
		name:         name,
		description:  description,
		context:      cfg.defaults.Context(),
		envelope:     cfg.defaults.Envelope(),
		shape:        cfg.defaults.Shape(),
	}
	if cfg.metadataType != "" {
		doc.metadataType = cfg.metadataType
	}
	if cfg.context != nil {
		doc.context = cfg.context
	}
	if cfg.envelope != nil {
		doc.envelope = *cfg.envelope
	}
	if cfg.shape != "" {
		doc.shape = cfg.shape
	}
	return doc, nil
}

// MustNew panics if the document cannot be created. Useful for tests.
func MustNew(name, description string, options ...Option) *Document {
	doc, err := New(name, description, options...)
	if err != nil {
		panic(err)
	}
	return doc
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return &ValidationError{Field: "name", Message: "name exceeds 200 characters"}
	}
	return nil
}

// validateDescription counts the raw runes, so surrounding whitespace counts
// toward the minimum. A blank description is still rejected.
func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return &ValidationError{Field: "description", Message: "description is required"}
	}
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return &ValidationError{Field: "description", Message: "description must be at least 5 characters"}
	}
	return nil
}

// Name returns the schema name.
func (d *Document) Name() string {
	return d.name
}

// Description returns the schema description.
func (d *Document) Description() string {
	return d.description
}

// MetadataType returns the "@type" value.
func (d *Document) MetadataType() string {
	return d.metadataType
}

// Context returns a copy of the @context mapping.
func (d *Document) Context() map[string]string {
	return copyContext(d.context)
}

// Envelope returns a copy of the structural metadata.
func (d *Document) Envelope() Envelope {
	return d.envelope.clone()
}

// Shape reports how properties will be serialized.
func (d *Document) Shape() PropertiesShape {
	return d.shape
}

// Fields returns a copy of the ordered properties.
func (d *Document) Fields() Properties {
	return d.fields.Clone()
}

// SetFields replaces the properties wholesale.
func (d *Document) SetFields(fields Properties) {
	d.fields = fields.Clone()
}

// MergeFields overwrites properties sharing a key with fields and appends the
// rest, so repeated conversions onto one Document replace earlier entries.
func (d *Document) MergeFields(fields Properties) {
	d.fields.Merge(fields)
}

// SetRequired replaces the envelope's required list.
func (d *Document) SetRequired(names []string) {
	if len(names) == 0 {
		d.envelope.Required = nil
		return
	}
	d.envelope.Required = append([]string(nil), names...)
}

// SetExamples replaces the envelope's examples list.
func (d *Document) SetExamples(examples []any) {
	if len(examples) == 0 {
		d.envelope.Examples = nil
		return
	}
	d.envelope.Examples = append([]any(nil), examples...)
}
