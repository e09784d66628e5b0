package dictionary

import (
	"context"
	"io/fs"
)

// Loader fetches dictionary exports from files or an fs.FS. Implementations
// live under internal/dictionary but satisfy this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem enables loading SourceKindFS entries. Loading an fs source
	// without one configured fails.
	FileSystem fs.FS

	// DisableDecompression keeps gzip payloads as-is instead of decoding them.
	DisableDecompression bool

	// MaxBytes caps the decoded payload size. Zero means unlimited.
	MaxBytes int64
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for SourceKindFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithoutDecompression disables transparent gzip decoding.
func WithoutDecompression() LoaderOption {
	return func(opts *LoaderOptions) {
		opts.DisableDecompression = true
	}
}

// WithMaxBytes limits how many decoded bytes a single load may produce.
func WithMaxBytes(limit int64) LoaderOption {
	return func(opts *LoaderOptions) {
		if limit > 0 {
			opts.MaxBytes = limit
		}
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the root redcapschema package to prevent import cycles.
