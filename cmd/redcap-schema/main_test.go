package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-redcapschema/pkg/config"
	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/orchestrator"
	"github.com/goliatone/go-redcapschema/pkg/schema"
	"github.com/goliatone/go-redcapschema/pkg/testsupport"
)

const tsvDictionary = "Variable / Field Name\tForm Name\tField Type\tField Label\tChoices, Calculations, OR Slider Labels\tText Validation Type OR Show Slider Number\tText Validation Min\tText Validation Max\n" +
	"arm\trandomization\tradio\t<b>Arm</b>\t1, Control | 2, Treatment\t\t\t\n"

func TestBuildOrchestrator_AppliesFlags(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dictionary.tsv")
	if err := os.WriteFile(input, []byte(tsvDictionary), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	gen, err := buildOrchestrator(config.Profile{}, "tab", true, true)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	doc := testsupport.MustNewSchema(t)
	if _, err := gen.Convert(testsupport.Context(), orchestrator.Request{Source: dictionary.SourceFromFile(input), Schema: doc}); err != nil {
		t.Fatalf("convert: %v", err)
	}

	arm, ok := doc.Fields().Get("arm")
	if !ok {
		t.Fatalf("arm missing")
	}
	if arm.Type != schema.TypeInteger || arm.Description != "Arm" {
		t.Fatalf("unexpected property %+v", arm)
	}
}

func TestBuildOrchestrator_Presets(t *testing.T) {
	dir := t.TempDir()
	presets := filepath.Join(dir, "presets.yaml")
	if err := os.WriteFile(presets, []byte("fields:\n  arm:\n    rename: study_arm\n"), 0o644); err != nil {
		t.Fatalf("write presets: %v", err)
	}
	input := filepath.Join(dir, "dictionary.tsv")
	if err := os.WriteFile(input, []byte(tsvDictionary), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	gen, err := buildOrchestrator(config.Profile{Presets: presets, Delimiter: "tab"}, "", false, false)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := testsupport.MustNewSchema(t)
	if _, err := gen.Convert(testsupport.Context(), orchestrator.Request{Source: dictionary.SourceFromFile(input), Schema: doc}); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, ok := doc.Fields().Get("study_arm"); !ok {
		t.Fatalf("expected renamed property, got %v", doc.Fields().Keys())
	}

	if _, err := buildOrchestrator(config.Profile{Presets: filepath.Join(dir, "missing.yaml")}, "", false, false); err == nil {
		t.Fatalf("expected missing presets error")
	}
	if _, err := buildOrchestrator(config.Profile{}, "ab", false, false); err == nil {
		t.Fatalf("expected delimiter error")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", "b", "c"); got != "b" {
		t.Fatalf("firstNonEmpty = %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Fatalf("firstNonEmpty() = %q", got)
	}
}

func TestWriteOpenAPI(t *testing.T) {
	doc := testsupport.MustNewSchema(t)
	doc.SetFields(schema.NewProperties(schema.Property{Name: "age", Type: schema.TypeInteger, Description: "Age"}))

	path := filepath.Join(t.TempDir(), "openapi.json")
	if err := writeOpenAPI(testsupport.Context(), path, doc); err != nil {
		t.Fatalf("write openapi: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected export at %s", path)
	}
}
