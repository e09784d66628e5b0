package translator

import (
	"context"

	internalLoader "github.com/goliatone/go-redcapschema/internal/dictionary/loader"
	internalReader "github.com/goliatone/go-redcapschema/internal/dictionary/reader"
	internaltranslator "github.com/goliatone/go-redcapschema/internal/translator"
	"github.com/goliatone/go-redcapschema/pkg/dictionary"
)

// Translator converts dictionary rows into schema properties.
type Translator interface {
	Translate(rows []dictionary.Row) Result
	TranslateTable(table dictionary.Table) Result
}

// Option configures the translator behaviour.
type Option func(*translatorOptions)

type translatorOptions struct {
	numericChoices bool
	labelCleaner   func(string) string
	cacheSize      int
}

// WithNumericChoices encodes radio and dropdown fields as integers.
func WithNumericChoices(enabled bool) Option {
	return func(opts *translatorOptions) {
		opts.numericChoices = enabled
	}
}

// WithLabelCleaner rewrites labels before the description fallback runs.
func WithLabelCleaner(cleaner func(string) string) Option {
	return func(opts *translatorOptions) {
		opts.labelCleaner = cleaner
	}
}

// WithLabelSanitizer strips HTML markup from labels.
func WithLabelSanitizer() Option {
	return WithLabelCleaner(StripMarkup)
}

// WithPatternCacheSize bounds memoized choices derivations. A negative size
// disables memoization.
func WithPatternCacheSize(size int) Option {
	return func(opts *translatorOptions) {
		opts.cacheSize = size
	}
}

// New returns a Translator backed by the internal implementation.
func New(options ...Option) Translator {
	cfg := translatorOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return internaltranslator.New(internaltranslator.Options{
		NumericChoices:   cfg.numericChoices,
		LabelCleaner:     cfg.labelCleaner,
		PatternCacheSize: cfg.cacheSize,
	})
}

// Translate converts rows with the default configuration, optionally encoding
// choice fields numerically.
func Translate(rows []dictionary.Row, useNumericEncodingForChoices bool) Result {
	return New(WithNumericChoices(useNumericEncodingForChoices)).Translate(rows)
}

// TranslateSource loads and reads the dictionary at src with the default
// loader and reader, then translates every row. Source-level failures wrap
// dictionary.ErrSourceNotFound or dictionary.ErrSourceMalformed; row-level
// failures are returned in Result.Issues.
func TranslateSource(ctx context.Context, src dictionary.Source, options ...Option) (Result, error) {
	doc, err := internalLoader.New(dictionary.NewLoaderOptions()).Load(ctx, src)
	if err != nil {
		return Result{}, err
	}
	table, err := internalReader.New(dictionary.NewReaderOptions()).Read(ctx, doc)
	if err != nil {
		return Result{}, err
	}
	return New(options...).TranslateTable(table), nil
}
