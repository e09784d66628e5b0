package schema

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteTo serializes the document into w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := d.Serialize()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// WriteFile serializes the document to path, creating parent directories and
// overwriting any existing content.
func (d *Document) WriteFile(path string) error {
	data, err := d.Serialize()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("schema: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("schema: write %s: %w", path, err)
	}
	return nil
}
