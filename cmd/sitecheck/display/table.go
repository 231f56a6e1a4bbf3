package display

import (
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

// A Table is a header row followed by rows of the same width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// gutter separates padded columns.
const gutter = 2

// WriteTable writes t with each column padded to its widest cell. Nothing is
// written for a table without rows.
func WriteTable(w io.Writer, t Table) error {
	if len(t.Rows) == 0 || len(t.Headers) == 0 {
		return nil
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	write := func(row []string) error {
		var line strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				line.WriteString(cell)
			} else {
				line.WriteString(runewidth.FillRight(cell, widths[i]+gutter))
			}
		}
		line.WriteString("\n")
		_, err := io.WriteString(w, line.String())
		return err
	}

	if err := write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteDelimited writes t as delimited text, quoting cells as needed.
func WriteDelimited(w io.Writer, t Table, delimiter rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delimiter
	if err := writer.Write(t.Headers); err != nil {
		return err
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return err
	}
	return writer.Error()
}

// ParseDelimiter checks that a delimiter is a single character.
func ParseDelimiter(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' {
		return 0, errors.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
