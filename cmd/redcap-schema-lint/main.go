package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-redcapschema"
	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/schema"
	"github.com/goliatone/go-redcapschema/pkg/translator"
	"github.com/goliatone/go-redcapschema/pkg/validation"
)

type violation struct {
	file    string
	row     int
	field   string
	message string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint data dictionary exports for rows that cannot be converted cleanly.\n"); err != nil {
			panic(err)
		}
	}
	numericChoices := flag.Bool("numeric-choices", false, "lint as if radio/dropdown fields were encoded as integers")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	loader := redcapschema.NewLoader()
	reader := redcapschema.NewReader()
	tr := translator.New(translator.WithNumericChoices(*numericChoices))

	var violations []violation
	for _, path := range paths {
		doc, err := loader.Load(ctx, dictionary.SourceFromFile(path))
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		table, err := reader.Read(ctx, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, lintTable(path, table, tr)...)
	}

	if len(violations) > 0 {
		sortViolations(violations)
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: row %d (%s) -> %s\n", v.file, v.row, v.field, v.message)
		}
		os.Exit(1)
	}
}

// lintTable reports conversion issues, repeated variable names, bounds
// attached to non-numeric fields, and descriptor invariant breaches.
func lintTable(file string, table dictionary.Table, tr translator.Translator) []violation {
	var result []violation

	firstSeen := make(map[string]int, table.Len())
	for _, row := range table.Rows {
		if row.VariableName == "" {
			continue
		}
		if prev, ok := firstSeen[row.VariableName]; ok {
			result = append(result, violation{
				file:    file,
				row:     row.Index,
				field:   row.VariableName,
				message: fmt.Sprintf("variable name repeats row %d; the later row wins", prev),
			})
			continue
		}
		firstSeen[row.VariableName] = row.Index
	}

	translated := tr.TranslateTable(table)
	for _, issue := range translated.Issues {
		result = append(result, violation{
			file:    file,
			row:     issue.Index,
			field:   issue.Field,
			message: issue.Err.Error(),
		})
	}

	for _, prop := range translated.Properties.Entries() {
		if prop.HasBounds() && prop.Type != schema.TypeInteger && prop.Type != schema.TypeNumber {
			result = append(result, violation{
				file:    file,
				row:     prop.Index,
				field:   prop.Name,
				message: fmt.Sprintf("validation bounds attached to a %s field", prop.Type),
			})
		}
	}

	probe, err := schema.New("lint", "dictionary lint probe")
	if err == nil {
		probe.SetFields(translated.Properties)
		for _, issue := range validation.ValidateDocument(probe).Issues {
			row := -1
			if prop, ok := translated.Properties.Get(issue.Field); ok {
				row = prop.Index
			}
			result = append(result, violation{
				file:    file,
				row:     row,
				field:   issue.Field,
				message: issue.Message,
			})
		}
	}

	return result
}

func sortViolations(violations []violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].file != violations[j].file {
			return violations[i].file < violations[j].file
		}
		if violations[i].row != violations[j].row {
			return violations[i].row < violations[j].row
		}
		return violations[i].message < violations[j].message
	})
}
