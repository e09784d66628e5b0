package main

import (
	"strings"
	"testing"

	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/translator"
)

func TestLintTable(t *testing.T) {
	table := dictionary.Table{Rows: []dictionary.Row{
		{Index: 0, VariableName: "arm", FormName: "randomization", FieldType: "radio", Choices: "badformat"},
		{Index: 1, VariableName: "visit", FormName: "visits", FieldType: "text", ValidationType: "date_ymd", ValidationMin: "1", ValidationMax: "9"},
		{Index: 2, FormName: "visits", FieldType: "text"},
		{Index: 3, VariableName: "arm", FormName: "randomization", FieldType: "dropdown", Choices: "1, A | 2, B"},
		{Index: 4, VariableName: "score", FormName: "visits", FieldType: "text", ValidationType: "number", ValidationMin: "9", ValidationMax: "1"},
	}}

	violations := lintTable("study.csv", table, translator.New())
	sortViolations(violations)

	var messages []string
	for _, v := range violations {
		if v.file != "study.csv" {
			t.Fatalf("unexpected file %q", v.file)
		}
		messages = append(messages, v.field+": "+v.message)
	}
	joined := strings.Join(messages, "\n")

	for _, want := range []string{
		"arm: translator: choices malformed",
		"visit: validation bounds attached to a string field",
		": translator: variable name is required",
		"arm: variable name repeats row 0; the later row wins",
		"score: minimum exceeds maximum",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q among violations:\n%s", want, joined)
		}
	}
}

func TestLintTable_Clean(t *testing.T) {
	table := dictionary.Table{Rows: []dictionary.Row{
		{Index: 0, VariableName: "age", FormName: "demographics", FieldType: "text", ValidationType: "integer", ValidationMin: "0", ValidationMax: "120"},
		{Index: 1, VariableName: "sex", FormName: "demographics", FieldType: "radio", Choices: "1, Male | 2, Female"},
	}}

	if violations := lintTable("study.csv", table, translator.New()); len(violations) != 0 {
		t.Fatalf("expected no violations, got %+v", violations)
	}
}

func TestSortViolations(t *testing.T) {
	violations := []violation{
		{file: "b.csv", row: 0, message: "x"},
		{file: "a.csv", row: 2, message: "y"},
		{file: "a.csv", row: 1, message: "z"},
	}
	sortViolations(violations)
	if violations[0].row != 1 || violations[1].row != 2 || violations[2].file != "b.csv" {
		t.Fatalf("unexpected order %+v", violations)
	}
}
