package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-redcapschema/pkg/dictionary"
)

// Loader implements dictionary.Loader by delegating to file or fs.FS
// strategies.
type Loader struct {
	fs         fs.FS
	decompress bool
	maxBytes   int64
}

// Ensure the implementation satisfies the public interface.
var _ dictionary.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options dictionary.LoaderOptions) dictionary.Loader {
	return &Loader{
		fs:         options.FileSystem,
		decompress: !options.DisableDecompression,
		maxBytes:   options.MaxBytes,
	}
}

// Load fetches a dictionary from the provided source and wraps it in a
// Document. Missing resources fail with dictionary.ErrSourceNotFound.
func (l *Loader) Load(ctx context.Context, src dictionary.Source) (dictionary.Document, error) {
	if src == nil {
		return dictionary.Document{}, errors.New("dictionary loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case dictionary.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case dictionary.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	default:
		err = errors.New("dictionary loader: unsupported source kind")
	}
	if err != nil {
		return dictionary.Document{}, err
	}

	if l.decompress && isGzip(src.Location(), data) {
		data, err = gunzip(src.Location(), data, l.maxBytes)
		if err != nil {
			return dictionary.Document{}, err
		}
	}
	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return dictionary.Document{}, fmt.Errorf("dictionary loader: %s exceeds %d bytes", src.Location(), l.maxBytes)
	}

	return dictionary.NewDocument(src, data)
}
