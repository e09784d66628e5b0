// Package config reads conversion profiles: YAML (or JSON) documents that
// capture the schema defaults and translator flags once, at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/schema"
	"github.com/goliatone/go-redcapschema/pkg/translator"
)

// Profile is the on-disk conversion configuration. Every member is optional.
type Profile struct {
	Name             string            `yaml:"name"`
	Description      string            `yaml:"description"`
	MetadataType     string            `yaml:"metadataType"`
	Context          map[string]string `yaml:"context"`
	Envelope         *EnvelopeProfile  `yaml:"envelope"`
	Shape            string            `yaml:"shape"`
	Delimiter        string            `yaml:"delimiter"`
	NumericChoices   bool              `yaml:"numericChoices"`
	StripMarkup      bool              `yaml:"stripMarkup"`
	PatternCacheSize int               `yaml:"patternCacheSize"`
	Presets          string            `yaml:"presets"`
}

// EnvelopeProfile mirrors schema.Envelope with YAML tags.
type EnvelopeProfile struct {
	Type                 string   `yaml:"type"`
	AdditionalProperties *bool    `yaml:"additionalProperties"`
	Required             []string `yaml:"required"`
	Separator            string   `yaml:"separator"`
	Header               *bool    `yaml:"header"`
	Examples             []any    `yaml:"examples"`
}

// Load reads and parses a profile from path.
func Load(path string) (Profile, error) {
	if strings.TrimSpace(path) == "" {
		return Profile{}, errors.New("config: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	profile, err := Parse(data)
	if err != nil {
		return Profile{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return profile, nil
}

// Parse decodes a profile and validates the enumerated members.
func Parse(data []byte) (Profile, error) {
	var profile Profile
	if len(strings.TrimSpace(string(data))) == 0 {
		return profile, nil
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("config: parse profile: %w", err)
	}
	if _, err := schema.ParsePropertiesShape(profile.Shape); err != nil {
		return Profile{}, err
	}
	if _, err := profile.DelimiterRune(); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// DelimiterRune returns the configured cell delimiter. "\t" and "tab" select a
// tab; an empty value yields zero so the reader default applies.
func (p Profile) DelimiterRune() (rune, error) {
	return ParseDelimiter(p.Delimiter)
}

// ParseDelimiter converts a delimiter setting into a rune.
func ParseDelimiter(raw string) (rune, error) {
	switch raw {
	case "":
		return 0, nil
	case `\t`, "tab", "TAB":
		return '\t', nil
	}
	if utf8.RuneCountInString(raw) != 1 {
		return 0, fmt.Errorf("config: delimiter %q must be a single character", raw)
	}
	r, _ := utf8.DecodeRuneInString(raw)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("config: delimiter %q is not allowed", raw)
	}
	return r, nil
}

// Defaults builds the immutable schema configuration described by the
// profile, falling back to schema.StandardDefaults for unset members.
func (p Profile) Defaults() schema.Defaults {
	base := schema.StandardDefaults()
	envelope := base.Envelope()
	if p.Envelope != nil {
		envelope = schema.Envelope{
			Type:                 p.Envelope.Type,
			AdditionalProperties: p.Envelope.AdditionalProperties,
			Required:             p.Envelope.Required,
			Separator:            p.Envelope.Separator,
			Header:               p.Envelope.Header,
			Examples:             normalizeExamples(p.Envelope.Examples),
		}
	}
	shape, err := schema.ParsePropertiesShape(p.Shape)
	if err != nil {
		shape = schema.ShapeObject
	}
	return schema.NewDefaults(p.MetadataType, p.Context, envelope, shape)
}

// TranslatorOptions returns the translator flags described by the profile.
func (p Profile) TranslatorOptions() []translator.Option {
	opts := []translator.Option{translator.WithNumericChoices(p.NumericChoices)}
	if p.StripMarkup {
		opts = append(opts, translator.WithLabelSanitizer())
	}
	if p.PatternCacheSize != 0 {
		opts = append(opts, translator.WithPatternCacheSize(p.PatternCacheSize))
	}
	return opts
}

// ReaderOptions returns the reader settings described by the profile.
func (p Profile) ReaderOptions() []dictionary.ReaderOption {
	delimiter, err := p.DelimiterRune()
	if err != nil || delimiter == 0 {
		return nil
	}
	return []dictionary.ReaderOption{dictionary.WithDelimiter(delimiter)}
}

// normalizeExamples converts YAML maps into JSON-compatible values.
func normalizeExamples(in []any) []any {
	if len(in) == 0 {
		return nil
	}
	out := make([]any, 0, len(in))
	for _, value := range in {
		out = append(out, normalizeValue(value))
	}
	return out
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			out[key] = normalizeValue(inner)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			out[fmt.Sprint(key)] = normalizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, inner := range typed {
			out = append(out, normalizeValue(inner))
		}
		return out
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case uint64:
		return float64(typed)
	default:
		return value
	}
}
