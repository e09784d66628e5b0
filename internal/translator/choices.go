package translator

import (
	"regexp"
	"strings"
)

const (
	choiceSeparator = "|"
	codeSeparator   = ","
)

// ChoicesPattern derives an anchored regular expression that accepts exactly
// one of the labels listed in a "code, label | code, label" choices cell.
// Labels are trimmed and quoted so metacharacters match literally. Blank
// segments are ignored; a segment without a comma, a blank label, or a cell
// with no choices at all fails with a *ChoicesError.
func ChoicesPattern(choices string) (string, error) {
	if strings.TrimSpace(choices) == "" {
		return "", &ChoicesError{Choices: choices, Reason: "no choices listed"}
	}

	segments := strings.Split(choices, choiceSeparator)
	labels := make([]string, 0, len(segments))
	for _, raw := range segments {
		segment := strings.TrimSpace(raw)
		if segment == "" {
			continue
		}
		_, label, ok := strings.Cut(segment, codeSeparator)
		if !ok {
			return "", &ChoicesError{Choices: choices, Segment: segment, Reason: "missing comma between code and label"}
		}
		label = strings.TrimSpace(label)
		if label == "" {
			return "", &ChoicesError{Choices: choices, Segment: segment, Reason: "label is empty"}
		}
		labels = append(labels, regexp.QuoteMeta(label))
	}
	if len(labels) == 0 {
		return "", &ChoicesError{Choices: choices, Reason: "no choices listed"}
	}

	return "^(" + strings.Join(labels, "|") + ")$", nil
}
