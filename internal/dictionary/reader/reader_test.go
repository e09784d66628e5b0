package reader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-redcapschema/pkg/dictionary"
	"github.com/goliatone/go-redcapschema/pkg/testsupport"
)

const header = "Variable / Field Name,Form Name,Field Type,Field Label,\"Choices, Calculations, OR Slider Labels\",Text Validation Type OR Show Slider Number,Text Validation Min,Text Validation Max"

func newReader(options ...dictionary.ReaderOption) dictionary.Reader {
	return New(dictionary.NewReaderOptions(options...))
}

func TestRead_Fixture(t *testing.T) {
	t.Parallel()

	doc := testsupport.LoadDictionary(t, filepath.Join("testdata", "demographics.csv"))
	table, err := newReader().Read(testsupport.Context(), doc)
	require.NoError(t, err)

	require.Equal(t, 4, table.Len())
	assert.True(t, table.HasRequiredColumn)

	want := dictionary.Row{
		Index:        2,
		VariableName: "sex",
		FormName:     "demographics",
		FieldLabel:   "Sex",
		FieldType:    "radio",
		Choices:      "1, Male | 2, Female",
		Required:     "y",
	}
	assert.Equal(t, want, table.Rows[2])
	assert.Equal(t, "0", table.Rows[1].ValidationMin)
	assert.Equal(t, "120", table.Rows[1].ValidationMax)
	assert.Equal(t, "integer", table.Rows[1].ValidationType)
	assert.Equal(t, "Consented, in writing?", table.Rows[3].FieldLabel)
}

func TestRead_HeaderOnly(t *testing.T) {
	t.Parallel()

	table, err := newReader().Read(testsupport.Context(), testsupport.InlineDictionary(t, header+"\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.False(t, table.HasRequiredColumn)
}

func TestRead_Malformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Empty":         "",
		"Whitespace":    " \n\n",
		"MissingColumn": "Variable / Field Name,Form Name\nage,demographics\n",
		"BrokenQuotes":  header + "\nage,demo,text,\"unterminated,,,,\n",
		"InvalidUTF8":   header + "\nage,demo,text,\xff\xfe,,,,\n",
	}
	for name, payload := range cases {
		payload := payload
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := newReader().Read(testsupport.Context(), testsupport.InlineDictionary(t, payload))
			assert.ErrorIs(t, err, dictionary.ErrSourceMalformed)
		})
	}
}

func TestRead_MissingColumnNamesTheColumn(t *testing.T) {
	t.Parallel()

	_, err := newReader().Read(testsupport.Context(), testsupport.InlineDictionary(t, "Variable / Field Name,Form Name\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Field Type"`)
}

func TestRead_StripsByteOrderMark(t *testing.T) {
	t.Parallel()

	table, err := newReader().Read(testsupport.Context(), testsupport.InlineDictionary(t, "\ufeff"+header+"\nage,demo,text,Age,,integer,1,2\n"))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "age", table.Rows[0].VariableName)
}

func TestRead_AlternateDelimiter(t *testing.T) {
	t.Parallel()

	payload := "Variable / Field Name\tForm Name\tField Type\tField Label\tChoices, Calculations, OR Slider Labels\tText Validation Type OR Show Slider Number\tText Validation Min\tText Validation Max\n" +
		"weight\tvitals\ttext\tWeight, kg\t\tnumber\t0\t500\n"

	table, err := newReader(dictionary.WithDelimiter('\t')).Read(testsupport.Context(), testsupport.InlineDictionary(t, payload))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "Weight, kg", table.Rows[0].FieldLabel)
	assert.Equal(t, "500", table.Rows[0].ValidationMax)
}

func TestRead_APIColumnAliases(t *testing.T) {
	t.Parallel()

	payload := "field_name,form_name,field_type,field_label,select_choices_or_calculations,text_validation_type_or_show_slider_number,text_validation_min,text_validation_max,required_field\n" +
		"arm,randomization,dropdown,Arm,\"1, A | 2, B\",,,,y\n"

	table, err := newReader().Read(testsupport.Context(), testsupport.InlineDictionary(t, payload))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.True(t, table.HasRequiredColumn)
	assert.Equal(t, "1, A | 2, B", table.Rows[0].Choices)
	assert.Equal(t, dictionary.ColumnVariableName, table.Columns[0])
}

func TestRead_RaggedAndBlankRecords(t *testing.T) {
	t.Parallel()

	payload := header + "\n" +
		"a,f,text\n" +
		",,,,,,,\n" +
		"b,f,yesno,B,,,,\n"

	table, err := newReader().Read(testsupport.Context(), testsupport.InlineDictionary(t, payload))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "", table.Rows[0].FieldLabel)
	assert.Equal(t, 1, table.Rows[1].Index)
	assert.Equal(t, "b", table.Rows[1].VariableName)
}

func TestRead_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newReader().Read(ctx, testsupport.InlineDictionary(t, header+"\n"))
	assert.ErrorIs(t, err, context.Canceled)
}
