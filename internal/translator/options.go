package translator

// Options configures the behaviour of the Translator. Options are constructed
// by the public adapter in pkg/translator and passed into New.
type Options struct {
	// NumericChoices encodes radio and dropdown fields as integers instead of
	// label-constrained strings.
	NumericChoices bool

	// LabelCleaner rewrites field labels before the description fallback is
	// evaluated. Nil keeps labels verbatim.
	LabelCleaner func(string) string

	// PatternCacheSize bounds memoized choices derivations; zero or negative
	// disables the cache.
	PatternCacheSize int
}

func defaultOptions() Options {
	return Options{
		PatternCacheSize: DefaultPatternCacheSize,
	}
}
