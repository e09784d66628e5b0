package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/schema"
)

// LoadDictionary reads a fixture and wraps it in a dictionary.Document using a
// file source. Failures stop the test to keep contract tests concise.
func LoadDictionary(t *testing.T, path string) dictionary.Document {
	t.Helper()

	doc, err := LoadDictionaryFromPath(path)
	if err != nil {
		t.Fatalf("load dictionary: %v", err)
	}
	return doc
}

// LoadDictionaryFromPath returns a Document without requiring testing.T, so
// fixtures can be wired in setup functions.
func LoadDictionaryFromPath(path string) (dictionary.Document, error) {
	if path == "" {
		return dictionary.Document{}, errors.New("testsupport: dictionary path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return dictionary.Document{}, fmt.Errorf("testsupport: read dictionary: %w", err)
	}
	doc, err := dictionary.NewDocument(dictionary.SourceFromFile(path), data)
	if err != nil {
		return dictionary.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// InlineDictionary wraps literal CSV text in a Document named after the test.
func InlineDictionary(t *testing.T, csv string) dictionary.Document {
	t.Helper()

	return dictionary.MustNewDocument(dictionary.SourceFromFS(t.Name()+".csv"), []byte(csv))
}

// MustNewSchema builds an empty schema document with a fixed name and
// description.
func MustNewSchema(t *testing.T, options ...schema.Option) *schema.Document {
	t.Helper()

	doc, err := schema.New("study", "Study data dictionary", options...)
	if err != nil {
		t.Fatalf("new schema: %v", err)
	}
	return doc
}

// MustLoadSchema decodes a serialized schema document from path.
func MustLoadSchema(t *testing.T, path string) *schema.Document {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open schema: %v", err)
	}
	defer file.Close()

	doc, err := schema.Decode(file)
	if err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	return doc
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}
