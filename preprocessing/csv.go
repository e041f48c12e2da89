// Package preprocessing reads delimited text into tables and coerces named
// columns to numbers.
package preprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/scitree/core/table"
	"github.com/YuminosukeSato/scitree/pkg/errors"
)

// ReadCSV reads every record from r. Records may have differing lengths;
// PrepareData reports ragged rows.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	return records, nil
}

// ReadCSVFile reads every record from the file at path.
func ReadCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// PrepareData turns records into a table. The first record is the header.
// Columns named in numericColumns are parsed as numbers, with an empty cell
// read as 0; every other cell is a categorical symbol.
func PrepareData(records [][]string, numericColumns ...string) (*table.Dense, error) {
	const op = "preprocessing.PrepareData"
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, op)
	}
	header := records[0]

	numeric := make(map[int]bool, len(numericColumns))
	for _, name := range numericColumns {
		idx := indexOf(header, name)
		if idx < 0 {
			return nil, errors.NewConfigurationError(op, name, "unknown column")
		}
		numeric[idx] = true
	}

	rows := make([]table.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make(table.Row, len(record))
		for j, cell := range record {
			if !numeric[j] {
				row[j] = table.Str(cell)
				continue
			}
			f, err := parseNumber(cell)
			if err != nil {
				return nil, errors.NewValidationError(header[j],
					fmt.Sprintf("row %d is not a number", i), cell)
			}
			row[j] = table.Num(f)
		}
		rows = append(rows, row)
	}
	return table.New(header, rows)
}

// LoadCSVFile reads path and prepares it with the given numeric columns.
func LoadCSVFile(path string, numericColumns ...string) (*table.Dense, error) {
	records, err := ReadCSVFile(path)
	if err != nil {
		return nil, err
	}
	return PrepareData(records, numericColumns...)
}

func parseNumber(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}
	return strconv.ParseFloat(cell, 64)
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
