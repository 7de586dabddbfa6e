package report

import (
	"encoding/json"
	"strconv"
)

// Cell is one report value: either text or a number.
type Cell struct {
	text     string
	number   float64
	isNumber bool
}

// Row is an ordered sequence of cells.
type Row []Cell

// Rows is an ordered sequence of rows.
type Rows []Row

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{text: s}
}

// Number returns a numeric cell.
func Number(v float64) Cell {
	return Cell{number: v, isNumber: true}
}

// Bool returns a text cell holding "true" or "false".
func Bool(b bool) Cell {
	return Text(strconv.FormatBool(b))
}

// IsNumber reports whether c holds a number.
func (c Cell) IsNumber() bool {
	return c.isNumber
}

// Float returns the numeric value of c, or 0 for text cells.
func (c Cell) Float() float64 {
	return c.number
}

// String renders the cell the way the console report prints it: numbers in
// their shortest decimal form without exponent.
func (c Cell) String() string {
	if c.isNumber {
		return strconv.FormatFloat(c.number, 'f', -1, 64)
	}
	return c.text
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if c.isNumber {
		return json.Marshal(c.number)
	}
	return json.Marshal(c.text)
}

func (c Cell) MarshalYAML() (interface{}, error) {
	if c.isNumber {
		return c.number, nil
	}
	return c.text, nil
}

// Strings renders every cell of the row.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}

// Label returns the first cell's text, or "" for an empty row.
func (r Row) Label() string {
	if len(r) == 0 {
		return ""
	}
	return r[0].String()
}

// Values returns the numeric cells after the label.
func (r Row) Values() []float64 {
	var out []float64
	for _, c := range r[min(1, len(r)):] {
		if c.IsNumber() {
			out = append(out, c.Float())
		}
	}
	return out
}

// Strings renders every row.
func (rs Rows) Strings() [][]string {
	out := make([][]string, len(rs))
	for i, r := range rs {
		out[i] = r.Strings()
	}
	return out
}

// Find returns the first row whose label is label.
func (rs Rows) Find(label string) (Row, bool) {
	for _, r := range rs {
		if r.Label() == label {
			return r, true
		}
	}
	return nil, false
}
