package table

import (
	"fmt"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

// Table is the read-only view the induction code consumes. Rows are 0-based
// data rows; the header is exposed separately through Columns.
type Table interface {
	// Columns returns the header, one name per column.
	Columns() []string
	// Len returns the number of data rows.
	Len() int
	// Row returns data row i.
	Row(i int) Row
	// At returns the value at data row i, column j.
	At(i, j int) Value
	// ColumnIndex resolves a column name.
	ColumnIndex(name string) (int, error)
}

// Dense is the in-memory Table implementation.
type Dense struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// New validates header and rows and returns a Dense table. Rows are not
// copied; callers must not mutate them afterwards.
func New(header []string, rows []Row) (*Dense, error) {
	if len(header) == 0 {
		return nil, scierrors.NewConfigurationError("table.New", "header", "no columns")
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		if name == "" {
			return nil, scierrors.NewConfigurationError("table.New", "header", fmt.Sprintf("column %d has an empty name", i))
		}
		if prev, dup := index[name]; dup {
			return nil, scierrors.NewConfigurationError("table.New", "header",
				fmt.Sprintf("column name '%s' used by columns %d and %d", name, prev, i))
		}
		index[name] = i
	}

	for r, row := range rows {
		if len(row) != len(header) {
			return nil, scierrors.Wrapf(
				scierrors.NewDimensionError("table.New", len(header), len(row), 1),
				"row %d", r)
		}
		for c, v := range row {
			if f, ok := v.Float(); ok {
				if err := scierrors.CheckScalar("table.New", f, r, header[c]); err != nil {
					return nil, err
				}
			}
		}
	}

	return &Dense{
		columns: append([]string(nil), header...),
		index:   index,
		rows:    rows,
	}, nil
}

// Columns implements Table.
func (d *Dense) Columns() []string { return d.columns }

// Len implements Table.
func (d *Dense) Len() int { return len(d.rows) }

// Row implements Table.
func (d *Dense) Row(i int) Row { return d.rows[i] }

// At implements Table.
func (d *Dense) At(i, j int) Value { return d.rows[i][j] }

// ColumnIndex implements Table. Unknown names are configuration errors.
func (d *Dense) ColumnIndex(name string) (int, error) {
	i, ok := d.index[name]
	if !ok {
		return -1, scierrors.NewConfigurationError("table.ColumnIndex", name, "unknown column")
	}
	return i, nil
}

// AllRows returns the indexes 0..n-1.
func AllRows(t Table) []int {
	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// Except returns the rows of t not listed in rows, in ascending order.
func Except(t Table, rows []int) []int {
	skip := make(map[int]bool, len(rows))
	for _, r := range rows {
		skip[r] = true
	}
	rest := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if !skip[i] {
			rest = append(rest, i)
		}
	}
	return rest
}
