package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadCSV reads a CSV file with a header row into a Table.
//
// A missing file yields a *errors.NotFoundError and a file without data rows
// yields errors.ErrEmptyDataset.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("dataset", path)
		}
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read dataset %s", path)
	}
	return t, nil
}

// ReadCSV parses CSV from r. A leading UTF-8 or UTF-16 byte order mark is
// honoured and stripped; header names are trimmed of surrounding whitespace.
// Data cells are kept verbatim.
func ReadCSV(r io.Reader) (*Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.WithStack(errors.ErrEmptyDataset)
	}
	if err != nil {
		return nil, errors.Wrap(err, "parse header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "parse row %d", len(rows)+1)
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyDataset)
	}
	return NewTable(header, rows), nil
}
