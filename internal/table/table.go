// Package table provides the in-memory tabular model shared by all
// cleaning pipelines: ordered columns, rows of explicitly nullable
// values, and the partition/dedup operations the pipelines are built on.
package table

import (
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the scalar types a cell can hold.
type Kind int

// Cell kinds. A cell is null, a string, or a number; there is no
// string sentinel for "missing".
const (
	KindNull Kind = iota
	KindString
	KindNumber
)

// Value is a nullable scalar cell.
type Value struct {
	str  string
	num  float64
	kind Kind
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// String returns a string-valued cell.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a number-valued cell.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Kind returns the cell's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the cell is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Str returns the string content, or "" for non-string cells.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}

	return v.str
}

// Float returns the numeric content, or 0 for non-number cells.
func (v Value) Float() float64 {
	if v.kind != KindNumber {
		return 0
	}

	return v.num
}

// Render formats the cell for flat-file output: null renders as the
// empty cell, numbers without trailing zeros.
func (v Value) Render() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Row maps a field name to its cell value.
type Row map[string]Value

// Get returns the named cell, or null if the row has no such field.
func (r Row) Get(col string) Value {
	v, ok := r[col]
	if !ok {
		return Null()
	}

	return v
}

// Table is an ordered sequence of rows. Column order is the insertion
// order of the source; row order is preserved except where an operation
// explicitly re-sorts or removes rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string{}, columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Append adds a row to the end of the table.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// empty returns a rowless table with the same column order.
func (t *Table) empty() *Table {
	return New(t.Columns...)
}

// NormalizeColumns trims and lower-cases every column name and re-keys
// the rows accordingly. Applied immediately on load, so all downstream
// field references use the normalized names.
func (t *Table) NormalizeColumns() {
	renamed := make(map[string]string, len(t.Columns))
	for i, c := range t.Columns {
		n := strings.ToLower(strings.TrimSpace(c))
		renamed[c] = n
		t.Columns[i] = n
	}

	for i, row := range t.Rows {
		out := make(Row, len(row))
		for k, v := range row {
			if n, ok := renamed[k]; ok {
				out[n] = v
			} else {
				out[k] = v
			}
		}
		t.Rows[i] = out
	}
}

// Apply maps fn over one column in place.
func (t *Table) Apply(col string, fn func(Value) Value) {
	for _, row := range t.Rows {
		row[col] = fn(row.Get(col))
	}
}

// AddColumn sets a constant value for every row, appending the column
// name to the column order if it is not already present.
func (t *Table) AddColumn(name string, v Value) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}

	for _, row := range t.Rows {
		row[name] = v
	}
}

// HasColumn reports whether the column order contains name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}

	return false
}

// Partition triages the table: rows with any critical field null go to
// missing, the rest to usable. Row order is preserved in both halves.
func (t *Table) Partition(critical []string) (missing, usable *Table) {
	missing = t.empty()
	usable = t.empty()

	for _, row := range t.Rows {
		if rowMissing(row, critical) {
			missing.Append(row)
		} else {
			usable.Append(row)
		}
	}

	return missing, usable
}

func rowMissing(row Row, critical []string) bool {
	for _, c := range critical {
		if row.Get(c).IsNull() {
			return true
		}
	}

	return false
}

// DedupBy removes rows whose key was already seen, keeping the first
// occurrence in original row order. Returns the kept rows and the
// number discarded.
func (t *Table) DedupBy(key func(Row) string) (*Table, int) {
	kept := t.empty()
	seen := make(map[string]bool, len(t.Rows))
	removed := 0

	for _, row := range t.Rows {
		k := key(row)
		if seen[k] {
			removed++

			continue
		}

		seen[k] = true
		kept.Append(row)
	}

	return kept, removed
}

// Concat appends other's rows after the receiver's, preserving each
// source's original row order. The column order is the receiver's,
// extended by any columns only other has.
func (t *Table) Concat(other *Table) *Table {
	out := t.empty()
	for _, c := range other.Columns {
		if !out.HasColumn(c) {
			out.Columns = append(out.Columns, c)
		}
	}

	out.Rows = append(out.Rows, t.Rows...)
	out.Rows = append(out.Rows, other.Rows...)

	return out
}

// SortBy stably sorts rows ascending by the rendered value of one
// column. Dates in ISO form sort chronologically under this ordering.
func (t *Table) SortBy(col string) {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].Get(col).Render() < t.Rows[j].Get(col).Render()
	})
}
