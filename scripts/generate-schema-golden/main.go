package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-redcapschema"
	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/orchestrator"
	"github.com/goliatone/go-redcapschema/pkg/report"
	"github.com/goliatone/go-redcapschema/pkg/schema"
	"github.com/goliatone/go-redcapschema/pkg/translator"
)

func main() {
	var (
		inputPath   = flag.String("input", "testdata/demographics.csv", "data dictionary fixture")
		name        = flag.String("name", "demographics", "schema name")
		description = flag.String("description", "Demographics instrument", "schema description")
		numeric     = flag.Bool("numeric-choices", false, "encode radio/dropdown fields as integers")
		outputPath  = flag.String("output", "testdata/demographics.golden.json", "output path for the serialized schema")
		reportPath  = flag.String("report", "", "optional markdown report snapshot")
	)
	flag.Parse()

	doc, err := schema.New(*name, *description)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create schema: %v\n", err)
		os.Exit(1)
	}

	orch := redcapschema.NewOrchestrator(
		orchestrator.WithTranslator(translator.New(translator.WithNumericChoices(*numeric))),
	)
	resp, err := orch.Convert(context.Background(), orchestrator.Request{
		Source: dictionary.SourceFromFile(*inputPath),
		Schema: doc,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to convert dictionary: %v\n", err)
		os.Exit(1)
	}

	if err := doc.WriteFile(*outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write golden: %v\n", err)
		os.Exit(1)
	}
	if *reportPath != "" {
		if err := report.WriteFile(*reportPath, doc, resp.Issues); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("wrote %s (%d rows, %d issues)\n", *outputPath, resp.Rows, len(resp.Issues))
}
