package dictionary

import "errors"

var (
	// ErrSourceNotFound reports that a source does not resolve to a readable
	// resource.
	ErrSourceNotFound = errors.New("dictionary: source not found")

	// ErrSourceMalformed reports that a source exists but cannot be parsed as
	// tabular data, including a header that lacks a required column.
	ErrSourceMalformed = errors.New("dictionary: source malformed")
)
