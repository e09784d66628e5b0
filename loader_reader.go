package redcapschema

import (
	internalLoader "github.com/goliatone/go-redcapschema/internal/dictionary/loader"
	internalReader "github.com/goliatone/go-redcapschema/internal/dictionary/reader"
	"github.com/goliatone/go-redcapschema/pkg/dictionary"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...dictionary.LoaderOption) dictionary.Loader {
	cfg := dictionary.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewReader constructs a delimited-text reader backed by the internal
// implementation.
func NewReader(options ...dictionary.ReaderOption) dictionary.Reader {
	cfg := dictionary.NewReaderOptions(options...)
	return internalReader.New(cfg)
}
