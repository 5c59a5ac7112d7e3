// Package render formats query results for the terminal and for export.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/eduardofuncao/pgenv/internal/db"
	"github.com/eduardofuncao/pgenv/internal/styles"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatTSV      Format = "tsv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// DefaultCellWidth is the widest a table cell is drawn before truncation.
const DefaultCellWidth = 40

type Options struct {
	// Title is shown above HTML output.
	Title string
	// CellWidth truncates table cells; 0 means DefaultCellWidth.
	CellWidth int
}

// ParseFormat accepts the format names and their short forms.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "t", "table":
		return FormatTable, nil
	case "c", "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	case "j", "json":
		return FormatJSON, nil
	case "m", "md", "markdown":
		return FormatMarkdown, nil
	case "h", "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// Write renders frame to w.
func Write(w io.Writer, frame *db.DataFrame, format Format, opts Options) error {
	content, err := String(frame, format, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, content)
	return err
}

// String renders frame in the given format.
func String(frame *db.DataFrame, format Format, opts Options) (string, error) {
	headers := frame.ColumnNames()
	rows := frame.Records()

	switch format {
	case FormatTable:
		return formatTable(frame, opts.CellWidth), nil
	case FormatCSV:
		return formatCSV(headers, rows)
	case FormatTSV:
		return formatTSV(headers, rows), nil
	case FormatJSON:
		return formatJSON(frame)
	case FormatMarkdown:
		return formatMarkdown(headers, rows), nil
	case FormatHTML:
		return formatHTML(opts.Title, headers, rows), nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

func formatTable(frame *db.DataFrame, cellWidth int) string {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}

	headers := frame.ColumnNames()
	for i, h := range headers {
		headers[i] = runewidth.Truncate(h, cellWidth, "…")
	}

	rows := frame.Records()
	for _, row := range rows {
		for j, cell := range row {
			row[j] = runewidth.Truncate(singleLine(cell), cellWidth, "…")
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeader.Padding(0, 1)
			}
			if row >= 0 && row < frame.Len() && frame.Rows[row][col] == nil {
				return styles.TableNull.Padding(0, 1)
			}
			return styles.TableCell.Padding(0, 1)
		})

	return t.String() + "\n"
}

func singleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
}

func formatCSV(headers []string, rows [][]string) (string, error) {
	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return "", err
	}
	if err := writer.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatTSV(headers []string, rows [][]string) string {
	var buf strings.Builder

	buf.WriteString(strings.Join(headers, "\t") + "\n")
	for _, row := range rows {
		buf.WriteString(strings.Join(row, "\t") + "\n")
	}
	return buf.String()
}

// formatJSON keeps scanned types so numbers stay numbers and NULL is null.
func formatJSON(frame *db.DataFrame) (string, error) {
	data, err := json.MarshalIndent(frame.Maps(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func formatMarkdown(headers []string, rows [][]string) string {
	var buf strings.Builder

	buf.WriteString("|")
	for _, header := range headers {
		buf.WriteString(" " + escapeMarkdown(header) + " |")
	}
	buf.WriteString("\n|")
	for range headers {
		buf.WriteString(" --- |")
	}
	buf.WriteString("\n")

	for _, row := range rows {
		buf.WriteString("|")
		for _, cell := range row {
			buf.WriteString(" " + escapeMarkdown(cell) + " |")
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(singleLine(s), "|", `\|`)
}

func formatHTML(title string, headers []string, rows [][]string) string {
	var buf strings.Builder

	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	buf.WriteString("<meta charset=\"UTF-8\"/>\n")
	buf.WriteString("<style>\n")
	buf.WriteString("table {border-collapse: collapse; width: auto;}\n")
	buf.WriteString("th {font-family: sans-serif; border: 1px solid #ccc; padding: 8px; background-color: #f2f2f2; text-align: left; font-weight: bold;}\n")
	buf.WriteString("td {font-family: sans-serif; border: 1px solid #ccc; padding: 8px; text-align: left;}\n")
	buf.WriteString("tr.odd {background-color: #f9f9f9;}\n")
	buf.WriteString("</style>\n</head>\n<body>\n")

	if title != "" {
		buf.WriteString(fmt.Sprintf("<h3>%s</h3>\n", escapeHTML(title)))
	}

	buf.WriteString("<table>\n<thead>\n<tr>\n")
	for _, header := range headers {
		buf.WriteString(fmt.Sprintf("<th>%s</th>\n", escapeHTML(header)))
	}
	buf.WriteString("</tr>\n</thead>\n<tbody>\n")

	for i, row := range rows {
		rowClass := ""
		if i%2 == 1 {
			rowClass = " class=\"odd\""
		}
		buf.WriteString(fmt.Sprintf("<tr%s>\n", rowClass))
		for _, cell := range row {
			buf.WriteString(fmt.Sprintf("<td>%s</td>\n", escapeHTML(cell)))
		}
		buf.WriteString("</tr>\n")
	}

	buf.WriteString("</tbody>\n</table>\n</body>\n</html>\n")
	return buf.String()
}

func escapeHTML(s string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	).Replace(s)
}
