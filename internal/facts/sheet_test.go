package facts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dennisdenk/vergabe.ai/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_EncodesAsInfoLines(t *testing.T) {
	sheet := Default()
	require.Empty(t, Validate(sheet))

	lines := strings.Split(sheet.Encode(), "\n")
	require.Len(t, lines, len(sheet))
	assert.Equal(t, "INFO mitarbeiter 7", lines[0])
	assert.Equal(t, "INFO ceo Hans Huber", lines[2])
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "INFO "), l)
	}
}

func TestParse_MappingKeepsOrder(t *testing.T) {
	sheet, err := Parse([]byte("ort: Ingolstadt\nceo: Hans Huber\nmitarbeiter: 7\ngruendung: 17.10.2007\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"ort", "ceo", "mitarbeiter", "gruendung"}, sheet.Keys())
	assert.Equal(t, "7", sheet[2].Value)
	assert.Equal(t, "17.10.2007", sheet[3].Value)
}

func TestParse_ListAllowsDuplicates(t *testing.T) {
	sheet, err := Parse([]byte(`facts:
  - key: ceo
    value: Hans Huber
  - key: ceo
    value: Maria Huber
`))
	require.NoError(t, err)

	assert.Equal(t, Sheet{
		{Key: "ceo", Value: "Hans Huber"},
		{Key: "ceo", Value: "Maria Huber"},
	}, sheet)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"empty document", "", ErrEmptySheet},
		{"empty list", "facts: []\n", ErrEmptySheet},
		{"top level list", "- a\n- b\n", ErrInvalidFact},
		{"nested value", "ceo:\n  first: Hans\n", ErrInvalidFact},
		{"multiline value", "ceo: |\n  Hans\n  Huber\n", ErrInvalidFact},
		{"key with space", "\"datum heute\": 10.11.2023\n", ErrInvalidFact},
		{"missing key in list", "facts:\n  - value: x\n", ErrInvalidFact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	errs := Validate(Sheet{
		{Key: "", Value: "x"},
		{Key: "ok", Value: "fine"},
		{Key: "two words", Value: "a\nb"},
	})
	assert.Len(t, errs, 3)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ceo: Hans Huber\n"), 0o644))

	sheet, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Sheet{{Key: "ceo", Value: "Hans Huber"}}, sheet)
	assert.Equal(t, protocol.EncodeInfo("ceo", "Hans Huber"), sheet.Encode())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
