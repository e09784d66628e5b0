package translator

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// StripMarkup removes HTML tags from rich-text field labels, keeping the
// visible text. Entities escaped by the sanitizer are decoded back.
func StripMarkup(label string) string {
	if !strings.ContainsAny(label, "<&") {
		return label
	}
	cleaned := labelSanitizer().Sanitize(label)
	cleaned = html.UnescapeString(cleaned)
	return strings.Join(strings.Fields(cleaned), " ")
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AddSpaceWhenStrippingTag(true)
		labelPolicy = policy
	})
	return labelPolicy
}
