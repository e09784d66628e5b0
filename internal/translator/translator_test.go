package translator

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/schema"
)

func TestInferType_Precedence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		row     dictionary.Row
		numeric bool
		want    schema.SemanticType
		pattern bool
	}{
		{name: "YesNoBeatsInteger", row: dictionary.Row{FieldType: "yesno", ValidationType: "integer"}, want: schema.TypeBoolean},
		{name: "IntegerBeatsRadio", row: dictionary.Row{FieldType: "radio", ValidationType: "integer"}, want: schema.TypeInteger},
		{name: "Number", row: dictionary.Row{FieldType: "text", ValidationType: "number"}, want: schema.TypeNumber},
		{name: "RadioLabels", row: dictionary.Row{FieldType: "radio"}, want: schema.TypeString, pattern: true},
		{name: "DropdownNumeric", row: dictionary.Row{FieldType: "dropdown"}, numeric: true, want: schema.TypeInteger},
		{name: "Checkbox", row: dictionary.Row{FieldType: "checkbox"}, want: schema.TypeString},
		{name: "CaseSensitive", row: dictionary.Row{FieldType: "YesNo"}, want: schema.TypeString},
		{name: "OtherValidation", row: dictionary.Row{FieldType: "text", ValidationType: "date_ymd"}, want: schema.TypeString},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, pattern := inferType(tc.row, tc.numeric)
			if got != tc.want || pattern != tc.pattern {
				t.Fatalf("inferType = (%q, %v), want (%q, %v)", got, pattern, tc.want, tc.pattern)
			}
		})
	}
}

func TestBounds_RequireBothFiniteValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		min, max string
		ok       bool
	}{
		{name: "Both", min: "0", max: "120", ok: true},
		{name: "Decimals", min: " -1.5 ", max: "2e3", ok: true},
		{name: "MinOnly", min: "0", max: ""},
		{name: "MaxOnly", min: "", max: "10"},
		{name: "NotNumeric", min: "today", max: "10"},
		{name: "Infinite", min: "0", max: "Inf"},
		{name: "NaN", min: "NaN", max: "1"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			minimum, maximum := bounds(dictionary.Row{ValidationMin: tc.min, ValidationMax: tc.max})
			if (minimum != nil) != tc.ok || (maximum != nil) != tc.ok {
				t.Fatalf("bounds presence = (%v, %v), want %v", minimum != nil, maximum != nil, tc.ok)
			}
		})
	}
}

func TestChoicesPattern(t *testing.T) {
	t.Parallel()

	pattern, err := ChoicesPattern("1, Yes | 2, No")
	if err != nil {
		t.Fatalf("choices pattern: %v", err)
	}
	if pattern != "^(Yes|No)$" {
		t.Fatalf("pattern = %q", pattern)
	}

	re := regexp.MustCompile(pattern)
	for _, value := range []string{"Yes", "No"} {
		if !re.MatchString(value) {
			t.Fatalf("pattern should accept %q", value)
		}
	}
	for _, value := range []string{"yes", "Maybe", "", "Yes ", "YesNo"} {
		if re.MatchString(value) {
			t.Fatalf("pattern should reject %q", value)
		}
	}
}

func TestChoicesPattern_QuotesMetacharactersAndKeepsLaterCommas(t *testing.T) {
	t.Parallel()

	pattern, err := ChoicesPattern("1, A+B (mixed) | 2, Lastname, Firstname ||")
	if err != nil {
		t.Fatalf("choices pattern: %v", err)
	}
	re := regexp.MustCompile(pattern)
	if !re.MatchString("A+B (mixed)") || !re.MatchString("Lastname, Firstname") {
		t.Fatalf("pattern %q should match the literal labels", pattern)
	}
	if re.MatchString("AAB (mixed)") {
		t.Fatalf("metacharacters must match literally")
	}
}

func TestChoicesPattern_Malformed(t *testing.T) {
	t.Parallel()

	for _, choices := range []string{"badformat", "", "  |  ", "1, Yes | 2,", "1, Yes | 2 No"} {
		_, err := ChoicesPattern(choices)
		if !errors.Is(err, ErrChoicesMalformed) {
			t.Fatalf("ChoicesPattern(%q) error = %v, want ErrChoicesMalformed", choices, err)
		}
		var choicesErr *ChoicesError
		if !errors.As(err, &choicesErr) || choicesErr.Choices != choices {
			t.Fatalf("expected ChoicesError carrying the cell, got %v", err)
		}
	}
}

func TestTranslate_ConvertsRowsInOrder(t *testing.T) {
	t.Parallel()

	rows := []dictionary.Row{
		{Index: 0, VariableName: "record_id", FormName: "demographics", FieldLabel: "Record ID", FieldType: "text"},
		{Index: 1, VariableName: "age", FormName: "demographics", FieldType: "text", ValidationType: "integer", ValidationMin: "0", ValidationMax: "120"},
		{Index: 2, VariableName: "consent", FormName: "demographics", FieldLabel: "Consented?", FieldType: "yesno"},
		{Index: 3, VariableName: "sex", FormName: "demographics", FieldLabel: "Sex", FieldType: "radio", Choices: "1, Male | 2, Female"},
	}

	result := New(Options{}).Translate(rows)
	if len(result.Issues) != 0 {
		t.Fatalf("unexpected issues: %v", result.Issues.Err())
	}

	want := []schema.Property{
		{Name: "record_id", Type: schema.TypeString, Description: "Record ID", Index: 0},
		{Name: "age", Type: schema.TypeInteger, Description: "age demographics", Index: 1, Minimum: schema.Float(0), Maximum: schema.Float(120)},
		{Name: "consent", Type: schema.TypeBoolean, Description: "Consented?", Index: 2},
		{Name: "sex", Type: schema.TypeString, Description: "Sex", Index: 3, Pattern: "^(Male|Female)$"},
	}
	if diff := cmp.Diff(want, result.Properties.Entries()); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslate_NumericChoicesDropPattern(t *testing.T) {
	t.Parallel()

	rows := []dictionary.Row{{VariableName: "sex", FormName: "f", FieldLabel: "Sex", FieldType: "dropdown", Choices: "1, Male | 2, Female"}}
	result := New(Options{NumericChoices: true}).Translate(rows)

	prop, ok := result.Properties.Get("sex")
	if !ok {
		t.Fatalf("sex missing")
	}
	if prop.Type != schema.TypeInteger || prop.Pattern != "" {
		t.Fatalf("unexpected property %+v", prop)
	}
}

func TestTranslate_BoundsAttachRegardlessOfType(t *testing.T) {
	t.Parallel()

	rows := []dictionary.Row{{VariableName: "visit", FormName: "f", FieldLabel: "Visit", FieldType: "text", ValidationType: "date_ymd", ValidationMin: "1", ValidationMax: "9"}}
	result := New(Options{}).Translate(rows)

	prop, _ := result.Properties.Get("visit")
	if prop.Type != schema.TypeString || !prop.HasBounds() {
		t.Fatalf("expected string with bounds, got %+v", prop)
	}
}

func TestTranslate_MalformedChoicesDoNotStopLaterRows(t *testing.T) {
	t.Parallel()

	rows := []dictionary.Row{
		{Index: 0, VariableName: "broken", FormName: "f", FieldLabel: "Broken", FieldType: "radio", Choices: "badformat"},
		{Index: 1, VariableName: "after", FormName: "f", FieldLabel: "After", FieldType: "yesno"},
	}
	result := New(Options{}).Translate(rows)

	if len(result.Issues) != 1 {
		t.Fatalf("expected one issue, got %d", len(result.Issues))
	}
	issue := result.Issues[0]
	if issue.Index != 0 || issue.Field != "broken" || !errors.Is(issue, ErrChoicesMalformed) {
		t.Fatalf("unexpected issue %+v", issue)
	}

	broken, ok := result.Properties.Get("broken")
	if !ok || broken.Type != schema.TypeString || broken.Pattern != "" {
		t.Fatalf("malformed row should stay as an unconstrained string, got %+v (present=%v)", broken, ok)
	}
	if _, ok := result.Properties.Get("after"); !ok {
		t.Fatalf("later row was not converted")
	}
}

func TestTranslate_MissingVariableNameIsSkipped(t *testing.T) {
	t.Parallel()

	rows := []dictionary.Row{
		{Index: 0, FormName: "f", FieldType: "text"},
		{Index: 1, VariableName: "kept", FormName: "f", FieldType: "text"},
	}
	result := New(Options{}).Translate(rows)

	if result.Properties.Len() != 1 {
		t.Fatalf("expected one property, got %d", result.Properties.Len())
	}
	if len(result.Issues) != 1 || !errors.Is(result.Issues.Err(), ErrVariableNameMissing) {
		t.Fatalf("expected ErrVariableNameMissing, got %v", result.Issues.Err())
	}
	if result.Issues.Summary() != "row 0: translator: variable name is required" {
		t.Fatalf("summary = %q", result.Issues.Summary())
	}
}

func TestTranslate_DuplicateNameKeepsFirstPosition(t *testing.T) {
	t.Parallel()

	rows := []dictionary.Row{
		{Index: 0, VariableName: "a", FormName: "f", FieldLabel: "First", FieldType: "text"},
		{Index: 1, VariableName: "b", FormName: "f", FieldLabel: "B", FieldType: "text"},
		{Index: 2, VariableName: "a", FormName: "f", FieldLabel: "Second", FieldType: "yesno"},
	}
	result := New(Options{}).Translate(rows)

	if diff := cmp.Diff([]string{"a", "b"}, result.Properties.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	a, _ := result.Properties.Get("a")
	if a.Description != "Second" || a.Type != schema.TypeBoolean || a.Index != 2 {
		t.Fatalf("expected later row to win, got %+v", a)
	}
}

func TestTranslate_RequiredColumn(t *testing.T) {
	t.Parallel()

	rows := []dictionary.Row{
		{VariableName: "a", FormName: "f", FieldType: "text", Required: "y"},
		{VariableName: "b", FormName: "f", FieldType: "text", Required: ""},
		{VariableName: "c", FormName: "f", FieldType: "text", Required: " Y "},
		{VariableName: "a", FormName: "f", FieldType: "text", Required: "y"},
	}
	result := New(Options{}).Translate(rows)

	if diff := cmp.Diff([]string{"a", "c"}, result.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslate_LabelCleanerFeedsDescriptionFallback(t *testing.T) {
	t.Parallel()

	rows := []dictionary.Row{
		{VariableName: "styled", FormName: "f", FieldLabel: `<b>Weight</b> <i>(kg)</i>`, FieldType: "text"},
		{VariableName: "empty", FormName: "intake", FieldLabel: "<br/>", FieldType: "text"},
	}
	result := New(Options{LabelCleaner: StripMarkup}).Translate(rows)

	styled, _ := result.Properties.Get("styled")
	if styled.Description != "Weight (kg)" {
		t.Fatalf("description = %q", styled.Description)
	}
	empty, _ := result.Properties.Get("empty")
	if empty.Description != "empty intake" {
		t.Fatalf("description = %q", empty.Description)
	}
}

func TestTranslate_Idempotent(t *testing.T) {
	t.Parallel()

	rows := []dictionary.Row{
		{VariableName: "sex", FormName: "f", FieldLabel: "Sex", FieldType: "radio", Choices: "1, Male | 2, Female"},
		{VariableName: "sex2", FormName: "f", FieldLabel: "Sex again", FieldType: "radio", Choices: "1, Male | 2, Female"},
		{VariableName: "bad", FormName: "f", FieldLabel: "Bad", FieldType: "radio", Choices: "nope"},
	}
	tr := New(Options{})
	first := tr.Translate(rows)
	second := tr.Translate(rows)

	if diff := cmp.Diff(first.Properties.Entries(), second.Properties.Entries()); diff != "" {
		t.Fatalf("translation not idempotent (-first +second):\n%s", diff)
	}
	if first.Issues.Summary() != second.Issues.Summary() {
		t.Fatalf("issues differ between runs")
	}
}

func TestPatternCache(t *testing.T) {
	t.Parallel()

	cache := newPatternCache(2)
	for i := 0; i < 3; i++ {
		pattern, err := cache.derive("1, Yes | 2, No")
		if err != nil || pattern != "^(Yes|No)$" {
			t.Fatalf("derive = (%q, %v)", pattern, err)
		}
		_, err = cache.derive("oops")
		if !errors.Is(err, ErrChoicesMalformed) {
			t.Fatalf("cached error lost: %v", err)
		}
	}
	if cache.entries.Len() != 2 {
		t.Fatalf("cache holds %d entries, want 2", cache.entries.Len())
	}

	disabled := newPatternCache(-1)
	if disabled.entries != nil {
		t.Fatalf("negative size should disable the cache")
	}
	if pattern, _ := disabled.derive("1, A"); pattern != "^(A)$" {
		t.Fatalf("uncached derive = %q", pattern)
	}
}

func TestStripMarkup(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Plain label":                        "Plain label",
		`<span style="color:red">Age</span>`: "Age",
		"Fish &amp; chips":                   "Fish & chips",
		"Line<br>break":                      "Line break",
	}
	for in, want := range cases {
		if got := StripMarkup(in); got != want {
			t.Fatalf("StripMarkup(%q) = %q, want %q", in, got, want)
		}
	}
}
