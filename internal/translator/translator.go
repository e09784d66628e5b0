package translator

import (
	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/schema"
)

// Result carries the properties produced by one translation together with the
// required field names and every row-scoped issue, in source order.
type Result struct {
	Properties schema.Properties
	Required   []string
	Issues     Issues
}

// Translator converts dictionary rows into schema properties. It holds no
// state between calls apart from the memoized choices derivations.
type Translator struct {
	opts  Options
	cache *patternCache
}

// New creates a Translator with the supplied options.
func New(options Options) *Translator {
	opts := defaultOptions()
	opts.NumericChoices = options.NumericChoices
	if options.LabelCleaner != nil {
		opts.LabelCleaner = options.LabelCleaner
	}
	if options.PatternCacheSize != 0 {
		opts.PatternCacheSize = options.PatternCacheSize
	}
	return &Translator{
		opts:  opts,
		cache: newPatternCache(opts.PatternCacheSize),
	}
}

// Translate converts each row independently. Row failures are recorded in
// Result.Issues and never abort the remaining rows. A repeated variable name
// replaces the earlier descriptor.
func (t *Translator) Translate(rows []dictionary.Row) Result {
	result := Result{}
	seenRequired := make(map[string]struct{})

	for _, row := range rows {
		prop, issue := t.convert(row)
		if issue != nil {
			result.Issues = append(result.Issues, *issue)
		}
		if prop == nil {
			continue
		}
		result.Properties.Set(*prop)

		if isRequired(row) {
			if _, dup := seenRequired[prop.Name]; !dup {
				seenRequired[prop.Name] = struct{}{}
				result.Required = append(result.Required, prop.Name)
			}
		}
	}

	return result
}

// TranslateTable converts every row of a materialized table.
func (t *Translator) TranslateTable(table dictionary.Table) Result {
	return t.Translate(table.Rows)
}

func (t *Translator) convert(row dictionary.Row) (*schema.Property, *RowIssue) {
	if row.VariableName == "" {
		return nil, &RowIssue{Index: row.Index, Err: ErrVariableNameMissing}
	}

	label := row.FieldLabel
	if t.opts.LabelCleaner != nil {
		label = t.opts.LabelCleaner(label)
	}

	typ, wantsPattern := inferType(row, t.opts.NumericChoices)
	prop := schema.Property{
		Name:        row.VariableName,
		Type:        typ,
		Description: describe(label, row),
		Index:       row.Index,
	}
	prop.Minimum, prop.Maximum = bounds(row)

	var issue *RowIssue
	if wantsPattern {
		pattern, err := t.cache.derive(row.Choices)
		if err != nil {
			issue = &RowIssue{Index: row.Index, Field: row.VariableName, Err: err}
		} else {
			prop.Pattern = pattern
		}
	}

	return &prop, issue
}
