package reader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/goliatone/go-redcapschema/pkg/dictionary"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader implements dictionary.Reader over delimited text with a header row.
type Reader struct {
	delimiter  rune
	lazyQuotes bool
}

var _ dictionary.Reader = (*Reader)(nil)

// New constructs a Reader from pre-resolved options.
func New(options dictionary.ReaderOptions) dictionary.Reader {
	delimiter := options.Delimiter
	if delimiter == 0 {
		delimiter = dictionary.DefaultDelimiter
	}
	return &Reader{
		delimiter:  delimiter,
		lazyQuotes: options.LazyQuotes,
	}
}

// Read materializes the whole document into a Table. The header is validated
// once; a missing required column, invalid UTF-8, or broken quoting fail with
// dictionary.ErrSourceMalformed.
func (r *Reader) Read(ctx context.Context, doc dictionary.Document) (dictionary.Table, error) {
	select {
	case <-ctx.Done():
		return dictionary.Table{}, ctx.Err()
	default:
	}

	location := doc.Location()
	raw := bytes.TrimPrefix(doc.Raw(), utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return dictionary.Table{}, fmt.Errorf("%w: %s: no header row", dictionary.ErrSourceMalformed, location)
	}
	if !utf8.Valid(raw) {
		return dictionary.Table{}, fmt.Errorf("%w: %s: invalid UTF-8", dictionary.ErrSourceMalformed, location)
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = r.delimiter
	cr.LazyQuotes = r.lazyQuotes
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return dictionary.Table{}, malformed(location, err)
	}

	var records [][]string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dictionary.Table{}, malformed(location, err)
		}
		records = append(records, record)
	}

	table, err := dictionary.BuildTable(header, records)
	if err != nil {
		return dictionary.Table{}, fmt.Errorf("%s: %w", location, err)
	}
	return table, nil
}

func malformed(location string, err error) error {
	return fmt.Errorf("%w: %s: %w", dictionary.ErrSourceMalformed, location, err)
}
