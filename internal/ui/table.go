package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Column configures a column in the table.
type Column struct {
	Header       string
	MaxWidth     int    // 0 = unlimited
	Ellipsis     string // default: "…"
	PaddingRight int    // default: 2 spaces
}

type Table struct {
	columns []Column
	rows    [][]string
}

func NewTable(columns ...Column) *Table {
	for i := range columns {
		if columns[i].PaddingRight == 0 {
			columns[i].PaddingRight = 2
		}
		if columns[i].Ellipsis == "" {
			columns[i].Ellipsis = "…"
		}
	}
	return &Table{columns: columns}
}

// AddRow appends a row. Missing cells render empty, extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	for i := range t.columns {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) Render(out io.Writer) {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		widths[i] = utf8.RuneCountInString(c.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			cell = t.fit(i, cell)
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeRow := func(cells []string) {
		var b strings.Builder
		for i, cell := range cells {
			cell = t.fit(i, cell)
			b.WriteString(cell)
			pad := widths[i] - utf8.RuneCountInString(cell) + t.columns[i].PaddingRight
			b.WriteString(strings.Repeat(" ", pad))
		}
		fmt.Fprintln(out, strings.TrimRight(b.String(), " "))
	}

	headers := make([]string, len(t.columns))
	separator := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Header
		separator[i] = strings.Repeat("-", widths[i])
	}
	writeRow(headers)
	writeRow(separator)
	for _, row := range t.rows {
		writeRow(row)
	}
}

// fit truncates a cell from the end when the column has a MaxWidth.
func (t *Table) fit(col int, cell string) string {
	maxW := t.columns[col].MaxWidth
	if maxW <= 0 || utf8.RuneCountInString(cell) <= maxW {
		return cell
	}
	ell := t.columns[col].Ellipsis
	keep := maxW - utf8.RuneCountInString(ell)
	if keep < 1 {
		keep = 1
	}
	runes := []rune(cell)
	return string(runes[:keep]) + ell
}
