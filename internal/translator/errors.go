package translator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrChoicesMalformed reports choices text that cannot be decomposed into
	// code, label pairs.
	ErrChoicesMalformed = errors.New("translator: choices malformed")

	// ErrVariableNameMissing reports a row without a variable name.
	ErrVariableNameMissing = errors.New("translator: variable name is required")
)

// ChoicesError describes why a choices cell was rejected. It matches
// ErrChoicesMalformed through errors.Is.
type ChoicesError struct {
	Choices string
	Segment string
	Reason  string
}

func (e *ChoicesError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("translator: choices malformed: %s (segment %q)", e.Reason, e.Segment)
	}
	return "translator: choices malformed: " + e.Reason
}

// Is lets errors.Is match ErrChoicesMalformed.
func (e *ChoicesError) Is(target error) bool {
	return target == ErrChoicesMalformed
}

// RowIssue is a row-scoped failure collected alongside partial results.
type RowIssue struct {
	// Index is the zero-based row position in the source table.
	Index int
	// Field is the row's variable name, empty when the name is missing.
	Field string
	Err   error
}

func (i RowIssue) Error() string {
	if i.Field == "" {
		return fmt.Sprintf("row %d: %v", i.Index, i.Err)
	}
	return fmt.Sprintf("row %d (%s): %v", i.Index, i.Field, i.Err)
}

func (i RowIssue) Unwrap() error {
	return i.Err
}

// Issues is the ordered list of row failures from one translation.
type Issues []RowIssue

// Err joins all issues into a single error, or returns nil.
func (is Issues) Err() error {
	if len(is) == 0 {
		return nil
	}
	errs := make([]error, 0, len(is))
	for _, issue := range is {
		errs = append(errs, issue)
	}
	return errors.Join(errs...)
}

// Summary renders one issue per line.
func (is Issues) Summary() string {
	lines := make([]string, 0, len(is))
	for _, issue := range is {
		lines = append(lines, issue.Error())
	}
	return strings.Join(lines, "\n")
}
