package glossary

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/kbukum/flairscribe/errors"
)

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func source(name string, data []byte) Source {
	return Source{Name: name, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}}
}

func TestGlossary_AddKeepsFirstPosition(t *testing.T) {
	g := New(
		Entry{"Devil Dog", "A term for U.S. Marines"},
		Entry{"MRE", "Meal, Ready-to-Eat"},
	)
	g.Add("Devil Dog", "U.S. Marine")

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []Entry{
		{"Devil Dog", "U.S. Marine"},
		{"MRE", "Meal, Ready-to-Eat"},
	}, g.Entries())
	assert.Equal(t, "Devil Dog: U.S. Marine\nMRE: Meal, Ready-to-Eat", g.String())

	def, ok := g.Lookup("MRE")
	assert.True(t, ok)
	assert.Equal(t, "Meal, Ready-to-Eat", def)
}

func TestGlossary_ZeroValue(t *testing.T) {
	var g Glossary
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, "", g.String())
	g.Merge(nil)
	g.Add("FOB", "Forward Operating Base")
	assert.Equal(t, 1, g.Len())
}

func TestLoad_Workbook(t *testing.T) {
	data := workbook(t, [][]any{
		{"Term", "Definition"},
		{"Devil Dog", "A term for U.S. Marines"},
		{"", "orphan definition"},
		{"Oorah", ""},
		{"  FOB ", " Forward Operating Base "},
	})

	g, err := Load("terms.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{"Devil Dog", "A term for U.S. Marines"},
		{"FOB", "Forward Operating Base"},
	}, g.Entries())
}

func TestLoad_CSV(t *testing.T) {
	data := "term,definition\nMRE,\"Meal, Ready-to-Eat\"\nshort\nPT,Physical Training,extra\n"

	g, err := Load("TERMS.CSV", strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{"MRE", "Meal, Ready-to-Eat"},
		{"PT", "Physical Training"},
	}, g.Entries())
}

func TestLoad_HeaderOnlyAndEmpty(t *testing.T) {
	g, err := Load("empty.csv", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())

	g, err = Load("header.csv", strings.NewReader("term,definition\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("terms.pdf", strings.NewReader("x"))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnsupportedMedia))

	_, err = Load("terms.xlsx", strings.NewReader("not a zip"))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidFormat))
}

func TestLoadAll_MergesInSourceOrder(t *testing.T) {
	first := workbook(t, [][]any{
		{"Term", "Definition"},
		{"Devil Dog", "A term for U.S. Marines"},
		{"MRE", "Meal, Ready-to-Eat"},
	})
	second := []byte("term,definition\nDevil Dog,U.S. Marine\nPT,Physical Training\n")

	g, errs, err := LoadAll(context.Background(), []Source{
		source("base.xlsx", first),
		source("broken.xlsx", []byte("garbage")),
		source("override.csv", second),
	}, 2)
	require.NoError(t, err)

	require.Len(t, errs, 1)
	assert.Equal(t, "broken.xlsx", errs[0].Name)
	assert.Contains(t, errs[0].Error(), "Error loading broken.xlsx")

	assert.Equal(t, []Entry{
		{"Devil Dog", "U.S. Marine"},
		{"MRE", "Meal, Ready-to-Eat"},
		{"PT", "Physical Training"},
	}, g.Entries())
}

func TestLoadAll_OpenFailure(t *testing.T) {
	openErr := errors.New("staged file vanished")
	g, errs, err := LoadAll(context.Background(), []Source{{
		Name: "gone.csv",
		Open: func() (io.ReadCloser, error) { return nil, openErr },
	}}, 0)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], openErr)
	assert.Equal(t, 0, g.Len())
}

func TestLoadAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := LoadAll(ctx, []Source{source("a.csv", []byte("t,d\na,b\n"))}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
