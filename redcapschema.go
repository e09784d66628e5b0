// Package redcapschema converts REDCap data dictionary exports into EVI
// schema documents: JSON-LD friendly JSON objects with one typed property per
// dictionary row.
package redcapschema

import (
	"context"

	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/orchestrator"
	"github.com/goliatone/go-redcapschema/pkg/schema"
	"github.com/goliatone/go-redcapschema/pkg/translator"
)

// Response aliases the orchestrator summary of a conversion.
type Response = orchestrator.Response

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Convert loads the dictionary at source, translates every row, and replaces
// the properties of doc with the result. Row-level issues are returned in the
// response; source-level failures are returned as errors.
func Convert(ctx context.Context, source dictionary.Source, doc *schema.Document, options ...orchestrator.Option) (Response, error) {
	gen := orchestrator.New(options...)
	return gen.Convert(ctx, orchestrator.Request{
		Source: source,
		Schema: doc,
	})
}

// ConvertFile is the one-call path: build a Document with the standard
// defaults, translate the dictionary at path into it, and return both.
func ConvertFile(ctx context.Context, path, name, description string, useNumericEncodingForChoices bool) (*schema.Document, Response, error) {
	doc, err := schema.New(name, description)
	if err != nil {
		return nil, Response{}, err
	}
	resp, err := Convert(ctx, dictionary.SourceFromFile(path), doc,
		orchestrator.WithTranslator(translator.New(translator.WithNumericChoices(useNumericEncodingForChoices))),
	)
	if err != nil {
		return nil, Response{}, err
	}
	return doc, resp, nil
}
