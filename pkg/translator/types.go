package translator

import internaltranslator "github.com/goliatone/go-redcapschema/internal/translator"

// Result re-exports the translation outcome.
type Result = internaltranslator.Result

// RowIssue is a row-scoped failure collected alongside partial results.
type RowIssue = internaltranslator.RowIssue

// Issues is the ordered list of row failures from one translation.
type Issues = internaltranslator.Issues

// ChoicesError describes a choices cell that could not be decomposed.
type ChoicesError = internaltranslator.ChoicesError

var (
	ErrChoicesMalformed    = internaltranslator.ErrChoicesMalformed
	ErrVariableNameMissing = internaltranslator.ErrVariableNameMissing
)

// DefaultPatternCacheSize is the number of memoized choices derivations kept
// by a Translator unless configured otherwise.
const DefaultPatternCacheSize = internaltranslator.DefaultPatternCacheSize

// ChoicesPattern derives the anchored label pattern for a choices cell.
func ChoicesPattern(choices string) (string, error) {
	return internaltranslator.ChoicesPattern(choices)
}

// StripMarkup removes HTML from a field label.
func StripMarkup(label string) string {
	return internaltranslator.StripMarkup(label)
}
