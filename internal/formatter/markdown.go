// Package formatter renders canonical responses as aligned markdown tables.
package formatter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"newsgate/internal/models"
	"newsgate/pkg/utils"
)

// DefaultMaxCellWidth caps the display width of free-text cells.
const DefaultMaxCellWidth = 60

const minColumnWidth = 3

// Formatter renders tables. Cells wider than MaxCellWidth are truncated
// with an ellipsis; zero disables truncation.
type Formatter struct {
	strings      *utils.StringHelper
	MaxCellWidth int
}

// New creates a formatter with DefaultMaxCellWidth.
func New() *Formatter {
	return &Formatter{strings: utils.NewStringHelper(), MaxCellWidth: DefaultMaxCellWidth}
}

// Articles renders one row per article.
func (f *Formatter) Articles(resp *models.ArticlesResponse) string {
	header := []string{"#", "Title", "Category", "Published", "URL"}

	var rows [][]string
	if resp != nil {
		for i, a := range resp.Articles {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				f.cell(a.Title, true),
				f.cell(a.Category, true),
				a.PublishedAt,
				f.cell(a.URL, false),
			})
		}
	}

	return f.Table(header, rows)
}

// Sources renders one row per source.
func (f *Formatter) Sources(resp *models.SourcesResponse) string {
	header := []string{"ID", "Name", "Category", "Language", "Country", "URL"}

	var rows [][]string
	if resp != nil {
		for _, s := range resp.Sources {
			rows = append(rows, []string{
				f.cell(s.ID, false),
				f.cell(s.Name, true),
				f.cell(s.Category, false),
				s.Language,
				s.Country,
				f.cell(s.URL, false),
			})
		}
	}

	return f.Table(header, rows)
}

// Table renders header and rows as a markdown table whose columns are padded
// to a common display width, so wide runes line up in a terminal.
func (f *Formatter) Table(header []string, rows [][]string) string {
	colCount := len(header)
	for _, row := range rows {
		colCount = max(colCount, len(row))
	}

	if colCount == 0 {
		return ""
	}

	colWidths := make([]int, colCount)
	measure := func(row []string) {
		for i, c := range row {
			colWidths[i] = max(colWidths[i], runewidth.StringWidth(c))
		}
	}

	measure(header)

	for _, row := range rows {
		measure(row)
	}

	for i := range colWidths {
		colWidths[i] = max(colWidths[i], minColumnWidth)
	}

	var sb strings.Builder

	writeRow(&sb, header, colWidths)

	sb.WriteString("|")

	for _, w := range colWidths {
		sb.WriteString(" " + strings.Repeat("-", w) + " |")
	}

	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(&sb, row, colWidths)
	}

	return sb.String()
}

func writeRow(sb *strings.Builder, row []string, colWidths []int) {
	sb.WriteString("|")

	for j, w := range colWidths {
		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(content, w))
		sb.WriteString(" |")
	}

	sb.WriteString("\n")
}

// cell flattens s for a table and truncates free text to MaxCellWidth.
func (f *Formatter) cell(s string, truncate bool) string {
	s = f.strings.NormalizeWhitespace(s)

	if truncate && f.MaxCellWidth > 0 && runewidth.StringWidth(s) > f.MaxCellWidth {
		s = runewidth.Truncate(s, f.MaxCellWidth, "…")
	}

	return f.strings.EscapeTableCell(s)
}

