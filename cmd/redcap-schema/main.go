package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-redcapschema"
	"github.com/goliatone/go-redcapschema/pkg/config"
	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/openapi"
	"github.com/goliatone/go-redcapschema/pkg/orchestrator"
	"github.com/goliatone/go-redcapschema/pkg/report"
	"github.com/goliatone/go-redcapschema/pkg/schema"
	"github.com/goliatone/go-redcapschema/pkg/translator"
	"github.com/goliatone/go-redcapschema/pkg/validation"
)

const (
	envName        = "REDCAP_SCHEMA_NAME"
	envDescription = "REDCAP_SCHEMA_DESCRIPTION"
	envConfig      = "REDCAP_SCHEMA_CONFIG"
)

func main() {
	loadDotEnv(".env")

	var (
		input          = flag.String("input", "", "data dictionary export (CSV, optionally gzip-compressed)")
		output         = flag.String("output", "", "output file (stdout if empty)")
		name           = flag.String("name", os.Getenv(envName), "schema name")
		description    = flag.String("description", os.Getenv(envDescription), "schema description")
		configPath     = flag.String("config", os.Getenv(envConfig), "YAML conversion profile")
		numericChoices = flag.Bool("numeric-choices", false, "encode radio/dropdown fields as integers")
		stripHTML      = flag.Bool("strip-html", false, "strip HTML markup from field labels")
		delimiter      = flag.String("delimiter", "", `cell delimiter (default ","; use "tab" for TSV)`)
		shape          = flag.String("shape", "", "properties shape: object or array")
		strict         = flag.Bool("strict", false, "exit non-zero when any row fails to convert")
		reportPath     = flag.String("report", "", "write a markdown data dictionary report to this path")
		openapiPath    = flag.String("openapi", "", "write an OpenAPI 3 export to this path")
		interactive    = flag.Bool("interactive", false, "prompt for missing name and description")
	)
	flag.Parse()

	if strings.TrimSpace(*input) == "" {
		if flag.NArg() == 0 {
			log.Fatalf("missing -input")
		}
		*input = flag.Arg(0)
	}

	profile, err := loadProfile(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	schemaName := firstNonEmpty(*name, profile.Name)
	schemaDescription := firstNonEmpty(*description, profile.Description)
	if *interactive {
		schemaName, schemaDescription, err = promptIdentity(ctx, surveyPrompter{}, schemaName, schemaDescription)
		if err != nil {
			log.Fatalf("prompt: %v", err)
		}
	}

	docOptions := []schema.Option{schema.WithDefaults(profile.Defaults())}
	if *shape != "" {
		parsed, err := schema.ParsePropertiesShape(*shape)
		if err != nil {
			log.Fatalf("invalid -shape: %v", err)
		}
		docOptions = append(docOptions, schema.WithShape(parsed))
	}

	doc, err := schema.New(schemaName, schemaDescription, docOptions...)
	if err != nil {
		log.Fatalf("create schema: %v", err)
	}

	gen, err := buildOrchestrator(profile, *delimiter, *numericChoices, *stripHTML)
	if err != nil {
		log.Fatalf("configure: %v", err)
	}

	resp, err := gen.Convert(ctx, orchestrator.Request{
		Source: dictionary.SourceFromFile(*input),
		Schema: doc,
	})
	switch {
	case errors.Is(err, dictionary.ErrSourceNotFound):
		log.Fatalf("dictionary not found: %v", err)
	case errors.Is(err, dictionary.ErrSourceMalformed):
		log.Fatalf("dictionary malformed: %v", err)
	case err != nil:
		log.Fatalf("convert: %v", err)
	}

	for _, issue := range validation.FromTranslation(resp.Issues).Issues {
		log.Printf("warning: row %d %s: %s", *issue.Row, issue.Field, issue.Message)
	}
	for _, issue := range validation.ValidateExamples(doc).Issues {
		log.Printf("warning: example %s: %s", issue.Path, issue.Message)
	}

	data, err := doc.Serialize()
	if err != nil {
		log.Fatalf("serialize: %v", err)
	}
	if *output != "" {
		if err := doc.WriteFile(*output); err != nil {
			log.Fatalf("write output: %v", err)
		}
		log.Printf("converted %d rows (%d issues) to %s", resp.Rows, len(resp.Issues), *output)
	} else {
		fmt.Print(string(data))
	}

	if *reportPath != "" {
		if err := report.WriteFile(*reportPath, doc, resp.Issues); err != nil {
			log.Fatalf("write report: %v", err)
		}
	}
	if *openapiPath != "" {
		if err := writeOpenAPI(ctx, *openapiPath, doc); err != nil {
			log.Fatalf("write openapi: %v", err)
		}
	}

	if *strict && len(resp.Issues) > 0 {
		log.Printf("%d rows failed to convert", len(resp.Issues))
		os.Exit(1)
	}
}

func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("load %s: %v", path, err)
	}
}

func loadProfile(path string) (config.Profile, error) {
	if strings.TrimSpace(path) == "" {
		return config.Profile{}, nil
	}
	return config.Load(path)
}

func buildOrchestrator(profile config.Profile, delimiter string, numericChoices, stripHTML bool) (*orchestrator.Orchestrator, error) {
	readerOpts := profile.ReaderOptions()
	if delimiter != "" {
		r, err := config.ParseDelimiter(delimiter)
		if err != nil {
			return nil, err
		}
		readerOpts = append(readerOpts, dictionary.WithDelimiter(r))
	}

	translatorOpts := profile.TranslatorOptions()
	if numericChoices {
		translatorOpts = append(translatorOpts, translator.WithNumericChoices(true))
	}
	if stripHTML {
		translatorOpts = append(translatorOpts, translator.WithLabelSanitizer())
	}

	options := []orchestrator.Option{
		orchestrator.WithLoader(redcapschema.NewLoader()),
		orchestrator.WithReader(redcapschema.NewReader(readerOpts...)),
		orchestrator.WithTranslator(translator.New(translatorOpts...)),
	}

	if profile.Presets != "" {
		raw, err := os.ReadFile(profile.Presets)
		if err != nil {
			return nil, fmt.Errorf("read presets %s: %w", profile.Presets, err)
		}
		presets, err := orchestrator.NewPresetTransformer(raw)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(presets))
	}

	return redcapschema.NewOrchestrator(options...), nil
}

func writeOpenAPI(ctx context.Context, path string, doc *schema.Document) error {
	data, err := openapi.Export(ctx, doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
