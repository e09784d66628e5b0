// Package report renders a human-readable markdown summary of a schema
// document and the row issues collected while translating it.
package report

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-redcapschema/pkg/schema"
	"github.com/goliatone/go-redcapschema/pkg/translator"
)

// DefaultTemplate names the built-in markdown template inside TemplatesFS.
const DefaultTemplate = "dictionary.md.tpl"

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

var (
	templateOnce sync.Once
	compiled     *pongo2.Template
	compileErr   error
)

// TemplatesFS exposes the built-in templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

func markdownTemplate() (*pongo2.Template, error) {
	templateOnce.Do(func() {
		var source []byte
		source, compileErr = fs.ReadFile(TemplatesFS(), DefaultTemplate)
		if compileErr != nil {
			return
		}
		compiled, compileErr = pongo2.FromString(string(source))
	})
	return compiled, compileErr
}

// Markdown renders the document as a markdown table, one row per property in
// insertion order, followed by any row issues.
func Markdown(doc *schema.Document, issues translator.Issues) ([]byte, error) {
	tpl, err := markdownTemplate()
	if err != nil {
		return nil, fmt.Errorf("report: compile template: %w", err)
	}
	return render(tpl, doc, issues)
}

// Render executes a caller-supplied pongo2 template against the same context
// Markdown uses: name, description, metadataType, count, required, properties
// and issues.
func Render(source string, doc *schema.Document, issues translator.Issues) ([]byte, error) {
	tpl, err := pongo2.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("report: compile template: %w", err)
	}
	return render(tpl, doc, issues)
}

func render(tpl *pongo2.Template, doc *schema.Document, issues translator.Issues) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("report: document is nil")
	}
	out, err := tpl.Execute(buildContext(doc, issues))
	if err != nil {
		return nil, fmt.Errorf("report: render: %w", err)
	}
	return []byte(out), nil
}

// WriteFile renders the report to path, overwriting existing content.
func WriteFile(path string, doc *schema.Document, issues translator.Issues) error {
	data, err := Markdown(doc, issues)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("report: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}

func buildContext(doc *schema.Document, issues translator.Issues) pongo2.Context {
	entries := doc.Fields().Entries()
	properties := make([]map[string]any, 0, len(entries))
	for _, prop := range entries {
		properties = append(properties, map[string]any{
			"index":       prop.Index,
			"name":        prop.Name,
			"type":        string(prop.Type),
			"description": cell(prop.Description),
			"constraints": cell(constraints(prop)),
		})
	}

	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, issue.Error())
	}

	return pongo2.Context{
		"name":         doc.Name(),
		"description":  doc.Description(),
		"metadataType": doc.MetadataType(),
		"count":        len(entries),
		"required":     doc.Envelope().Required,
		"properties":   properties,
		"issues":       messages,
	}
}

func constraints(prop schema.Property) string {
	var parts []string
	if prop.Pattern != "" {
		parts = append(parts, "pattern `"+prop.Pattern+"`")
	}
	if prop.Minimum != nil && prop.Maximum != nil {
		parts = append(parts, "range "+formatFloat(*prop.Minimum)+" to "+formatFloat(*prop.Maximum))
	}
	return strings.Join(parts, "; ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// cell keeps a value on one table line and escapes column separators.
func cell(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	return strings.ReplaceAll(value, "|", `\|`)
}
