package glossary

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/flairscribe/errors"
)

// SupportedExtensions lists the glossary formats Load understands.
var SupportedExtensions = []string{".xlsx", ".xlsm", ".csv"}

// Source is one uploaded glossary file.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileError reports a glossary file that could not be loaded.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("Error loading %s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Load reads one glossary file. The first row is a header; column A holds
// the term and column B the definition. Rows missing either are skipped.
func Load(name string, r io.Reader) (*Glossary, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, errors.UnsupportedMedia(name, SupportedExtensions)
	}
	if err != nil {
		return nil, errors.InvalidFormat("vernacular", fmt.Sprintf("Failed to read %s", name)).WithCause(err)
	}
	return fromRows(rows), nil
}

func fromRows(rows [][]string) *Glossary {
	g := &Glossary{}
	if len(rows) == 0 {
		return g
	}
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		term := strings.TrimSpace(row[0])
		def := strings.TrimSpace(row[1])
		if term == "" || def == "" {
			continue
		}
		g.Add(term, def)
	}
	return g
}

// readWorkbook returns the rows of the workbook's first sheet.
func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, stderrors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

// LoadAll loads sources concurrently and merges them in source order, so a
// later file overrides an earlier file's definition of the same term. A
// source that fails contributes nothing and is reported in the returned
// FileErrors; ctx cancellation stops loading and returns ctx's error.
func LoadAll(ctx context.Context, sources []Source, concurrency int) (*Glossary, []*FileError, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	loaded := make([]*Glossary, len(sources))
	failures := make([]*FileError, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			gl, err := loadSource(src)
			if err != nil {
				failures[i] = &FileError{Name: src.Name, Err: err}
				return nil
			}
			loaded[i] = gl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	merged := &Glossary{}
	var errs []*FileError
	for i := range sources {
		if failures[i] != nil {
			errs = append(errs, failures[i])
			continue
		}
		merged.Merge(loaded[i])
	}
	return merged, errs, nil
}

func loadSource(src Source) (*Glossary, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Load(src.Name, rc)
}
