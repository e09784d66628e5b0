package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-redcapschema/pkg/schema"
	"github.com/goliatone/go-redcapschema/pkg/translator"
)

// Transformer rewrites a translation result before it is applied to the schema
// document. Implementations can rename properties, patch descriptions, or drop
// entries.
type Transformer interface {
	Transform(ctx context.Context, result *translator.Result) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, result *translator.Result) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, result *translator.Result) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, result)
}

// PresetTransformer applies declarative overrides loaded from a YAML or JSON
// document:
//
//	fields:
//	  age:
//	    description: Age at enrollment (years)
//	  record_id:
//	    rename: id
//	  notes:
//	    omit: true
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Fields map[string]fieldPatch `json:"fields" yaml:"fields"`
}

type fieldPatch struct {
	Description string `json:"description" yaml:"description"`
	Rename      string `json:"rename" yaml:"rename"`
	Omit        bool   `json:"omit" yaml:"omit"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches onto the supplied result. Every patched field
// must exist; renamed properties keep their position.
func (t *PresetTransformer) Transform(ctx context.Context, result *translator.Result) error {
	if result == nil {
		return errors.New("preset transformer: result is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(t.document.Fields) == 0 {
		return nil
	}

	var missing []string
	for name := range t.document.Fields {
		if _, ok := result.Properties.Get(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("preset transformer: fields not found: %s", strings.Join(missing, ", "))
	}

	renamed := make(map[string]string)
	claimed := make(map[string]string)
	var props schema.Properties
	for _, prop := range result.Properties.Entries() {
		patch, ok := t.document.Fields[prop.Name]
		if !ok {
			props.Set(prop)
			continue
		}
		if patch.Omit {
			renamed[prop.Name] = ""
			continue
		}
		if patch.Description != "" {
			prop.Description = patch.Description
		}
		if target := strings.TrimSpace(patch.Rename); target != "" && target != prop.Name {
			if _, taken := result.Properties.Get(target); taken {
				return fmt.Errorf("preset transformer: rename %q to %q collides with an existing field", prop.Name, target)
			}
			if owner, taken := claimed[target]; taken {
				return fmt.Errorf("preset transformer: rename %q to %q collides with the rename of %q", prop.Name, target, owner)
			}
			claimed[target] = prop.Name
			renamed[prop.Name] = target
			prop.Name = target
		}
		props.Set(prop)
	}

	result.Properties = props
	result.Required = applyRenames(result.Required, renamed)
	return nil
}

func applyRenames(names []string, renamed map[string]string) []string {
	if len(renamed) == 0 || len(names) == 0 {
		return names
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		target, ok := renamed[name]
		if !ok {
			out = append(out, name)
			continue
		}
		if target != "" {
			out = append(out, target)
		}
	}
	return out
}
