package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/goliatone/go-redcapschema/internal/dictionary/loader"
	internalReader "github.com/goliatone/go-redcapschema/internal/dictionary/reader"
	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/schema"
	"github.com/goliatone/go-redcapschema/pkg/translator"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom dictionary loader.
func WithLoader(loader dictionary.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithReader injects a custom tabular reader.
func WithReader(reader dictionary.Reader) Option {
	return func(o *Orchestrator) {
		o.reader = reader
	}
}

// WithTranslator injects a custom translator.
func WithTranslator(t translator.Translator) Option {
	return func(o *Orchestrator) {
		o.translator = t
	}
}

// WithTransformer registers a Transformer that can rewrite the translation
// result before it is applied to the schema document.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator coordinates the full pipeline from dictionary source to a
// populated schema document. Missing dependencies fall back to the built-in
// implementations.
type Orchestrator struct {
	loader          dictionary.Loader
	reader          dictionary.Reader
	translator      translator.Translator
	transformer     Transformer
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs of a single conversion.
type Request struct {
	// Source identifies where the dictionary lives. Optional when Document is
	// supplied.
	Source dictionary.Source

	// Document allows callers to bypass the loader when they already hold the
	// raw payload.
	Document *dictionary.Document

	// Schema receives the translated properties. Required.
	Schema *schema.Document

	// Merge keeps properties already on Schema, overwriting shared keys,
	// instead of replacing the collection wholesale.
	Merge bool
}

// Response summarises a conversion.
type Response struct {
	// Rows is the number of data rows read from the source.
	Rows int
	// Issues lists row-scoped failures in source order.
	Issues translator.Issues
}

// Convert executes the loader → reader → translator sequence and populates
// req.Schema. Source-level failures abort with an error wrapping
// dictionary.ErrSourceNotFound or dictionary.ErrSourceMalformed; row-level
// failures are returned in Response.Issues and leave the remaining rows
// converted.
func (o *Orchestrator) Convert(ctx context.Context, req Request) (Response, error) {
	if ctx == nil {
		return Response{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if req.Schema == nil {
		return Response{}, errors.New("orchestrator: schema document is required")
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return Response{}, err
	}

	table, err := o.reader.Read(ctx, doc)
	if err != nil {
		return Response{}, fmt.Errorf("orchestrator: read dictionary: %w", err)
	}

	result := o.translator.TranslateTable(table)
	if err := o.applyTransformer(ctx, &result); err != nil {
		return Response{}, err
	}

	if req.Merge {
		req.Schema.MergeFields(result.Properties)
		req.Schema.SetRequired(mergeRequired(req.Schema.Envelope().Required, result.Required))
	} else {
		req.Schema.SetFields(result.Properties)
		if table.HasRequiredColumn {
			req.Schema.SetRequired(result.Required)
		}
	}

	return Response{Rows: table.Len(), Issues: result.Issues}, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (dictionary.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return dictionary.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return dictionary.Document{}, fmt.Errorf("orchestrator: load dictionary: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, result *translator.Result) error {
	if o.transformer == nil || result == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, result); err != nil {
		return fmt.Errorf("orchestrator: transform result: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	if o.loader == nil {
		o.loader = internalLoader.New(dictionary.NewLoaderOptions())
	}
	if o.reader == nil {
		o.reader = internalReader.New(dictionary.NewReaderOptions())
	}
	if o.translator == nil {
		o.translator = translator.New()
	}
	o.defaultsApplied = true
}

func mergeRequired(existing, extra []string) []string {
	if len(extra) == 0 {
		return existing
	}
	out := append([]string(nil), existing...)
	seen := make(map[string]struct{}, len(existing)+len(extra))
	for _, name := range existing {
		seen[name] = struct{}{}
	}
	for _, name := range extra {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
