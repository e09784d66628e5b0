package dictionary

import "context"

// Reader parses a raw Document into a validated Table. Implementations fail
// with ErrSourceMalformed when the payload is not delimited text or lacks a
// required column.
type Reader interface {
	Read(ctx context.Context, doc Document) (Table, error)
}

// DefaultDelimiter separates cells when no delimiter is configured.
const DefaultDelimiter = ','

// ReaderOptions configures delimited-text parsing.
type ReaderOptions struct {
	// Delimiter separates cells; defaults to DefaultDelimiter.
	Delimiter rune
	// LazyQuotes tolerates bare quotes inside unquoted cells.
	LazyQuotes bool
}

// ReaderOption mutates ReaderOptions prior to construction.
type ReaderOption func(*ReaderOptions)

// WithDelimiter overrides the cell delimiter. A zero rune keeps the default.
func WithDelimiter(delimiter rune) ReaderOption {
	return func(opts *ReaderOptions) {
		if delimiter != 0 {
			opts.Delimiter = delimiter
		}
	}
}

// WithLazyQuotes relaxes quote handling for hand-edited exports.
func WithLazyQuotes(enabled bool) ReaderOption {
	return func(opts *ReaderOptions) {
		opts.LazyQuotes = enabled
	}
}

// NewReaderOptions applies ReaderOption values on top of the defaults.
func NewReaderOptions(options ...ReaderOption) ReaderOptions {
	cfg := ReaderOptions{Delimiter: DefaultDelimiter}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
