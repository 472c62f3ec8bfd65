// Package reader loads tabular lead lists (delimited text or spreadsheet)
// into a uniform row shape, normalizing missing or synthetic headers.
package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// ErrInputUnreadable is returned when a file cannot be decoded in any known
// encoding, or contains no data at all.
var ErrInputUnreadable = errors.New("reader: input unreadable")

// Cell is a single (column-name, value) pair preserving source order.
type Cell struct {
	Column string
	Value  string
}

// RawRow is an untyped record exactly as read from the input file.
type RawRow []Cell

// Get returns the value for a column name, or "" if absent.
func (r RawRow) Get(column string) string {
	for _, c := range r {
		if c.Column == column {
			return c.Value
		}
	}
	return ""
}

// Result is the outcome of reading an input file.
type Result struct {
	Columns           []string
	Rows              []RawRow
	SyntheticHeaders  bool
}

// Read loads a delimited-text or spreadsheet file, detecting its format from
// the extension, and returns the parsed columns/rows.
func Read(path string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm":
		return readExcel(path)
	case ".xls":
		return readExcel(path)
	default:
		return readDelimited(path)
	}
}

var syntheticHeaderRe = regexp.MustCompile(`^(column[_\s]?\d+|unnamed:?\s*\d+|field\d+|col\d+)$`)

func looksSynthetic(headers []string) bool {
	if len(headers) == 0 {
		return true
	}
	synthetic := 0
	for _, h := range headers {
		if syntheticHeaderRe.MatchString(strings.ToLower(strings.TrimSpace(h))) {
			synthetic++
		}
	}
	return synthetic*2 >= len(headers)
}

var alphaRunRe = regexp.MustCompile(`[A-Za-z]{3,}`)

// looksLikeData reports whether a candidate header row actually holds data:
// at least 3 of the first 5 non-empty cells contain an alphabetic run of
// length >= 3 (names like "Smith" or "Main St" satisfy it; so does a
// placeholder like "Column_1", whose "Column" is such a run).
func looksLikeData(row []string) bool {
	checked := 0
	hits := 0
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		checked++
		if alphaRunRe.MatchString(cell) {
			hits++
		}
		if checked >= 5 {
			break
		}
	}
	return hits >= 3
}

func syntheticColumnNames(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = "Column_" + strconv.Itoa(i+1)
	}
	return cols
}

// trimBOMAndSpace removes UTF-8 BOM remnants and surrounding whitespace from
// a header cell.
func trimBOMAndSpace(s string) string {
	s = strings.TrimPrefix(s, "\xef\xbb\xbf")
	return strings.TrimFunc(s, unicode.IsSpace)
}

func toRawRows(columns []string, records [][]string) []RawRow {
	rows := make([]RawRow, 0, len(records))
	for _, rec := range records {
		row := make(RawRow, len(columns))
		for i, col := range columns {
			var v string
			if i < len(rec) {
				v = rec[i]
			}
			row[i] = Cell{Column: col, Value: v}
		}
		rows = append(rows, row)
	}
	return rows
}

func readExcel(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets", ErrInputUnreadable)
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: empty sheet", ErrInputUnreadable)
	}

	header := all[0]
	for i, h := range header {
		header[i] = trimBOMAndSpace(h)
	}
	data := all[1:]

	if looksSynthetic(header) && len(data) > 0 && looksLikeData(header) {
		data = all
		header = syntheticColumnNames(len(header))
	}

	return &Result{
		Columns:          header,
		Rows:             toRawRows(header, data),
		SyntheticHeaders: looksSynthetic(header),
	}, nil
}
