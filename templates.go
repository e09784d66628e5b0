package redcapschema

import (
	"io/fs"

	"github.com/goliatone/go-redcapschema/pkg/report"
)

// EmbeddedTemplates exposes the built-in report templates so callers can copy
// or extend them without importing the report package directly.
func EmbeddedTemplates() fs.FS {
	return report.TemplatesFS()
}
