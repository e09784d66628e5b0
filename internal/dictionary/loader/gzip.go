package loader

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/goliatone/go-redcapschema/pkg/dictionary"
)

var gzipMagic = []byte{0x1f, 0x8b}

func isGzip(location string, data []byte) bool {
	if bytes.HasPrefix(data, gzipMagic) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(location), ".gz") && len(data) > 0
}

// gunzip decodes a gzip payload. A corrupt stream is reported as a malformed
// source since the bytes exist but cannot yield tabular text.
func gunzip(location string, data []byte, limit int64) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: gzip: %w", dictionary.ErrSourceMalformed, location, err)
	}
	defer func() {
		_ = zr.Close()
	}()

	var src io.Reader = zr
	if limit > 0 {
		src = io.LimitReader(zr, limit+1)
	}
	out, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: gzip: %w", dictionary.ErrSourceMalformed, location, err)
	}
	if limit > 0 && int64(len(out)) > limit {
		return nil, fmt.Errorf("dictionary loader: %s exceeds %d bytes", location, limit)
	}
	return out, nil
}
