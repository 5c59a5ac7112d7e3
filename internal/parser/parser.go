// Package parser lays out and highlights SQL for display.
package parser

import (
	"regexp"
	"strings"

	"github.com/eduardofuncao/pgenv/internal/styles"
)

// clauseKeywords start a new line; longest first so compound keywords win.
var clauseKeywords = []string{
	"FULL OUTER JOIN", "LEFT OUTER JOIN", "RIGHT OUTER JOIN",
	"LEFT JOIN", "RIGHT JOIN", "INNER JOIN", "FULL JOIN", "CROSS JOIN",
	"INSERT INTO", "DELETE FROM", "GROUP BY", "ORDER BY", "UNION ALL",
	"SELECT", "FROM", "WHERE", "HAVING", "LIMIT", "OFFSET", "UNION",
	"UPDATE", "VALUES", "SET", "JOIN",
}

var highlightKeywords = []string{
	"SELECT", "FROM", "WHERE", "JOIN", "LEFT", "RIGHT", "INNER", "FULL", "CROSS", "OUTER",
	"ON", "GROUP", "BY", "HAVING", "ORDER", "LIMIT", "OFFSET", "UNION", "ALL",
	"INSERT", "INTO", "UPDATE", "DELETE", "VALUES", "SET", "AND", "OR", "NOT",
	"IN", "EXISTS", "BETWEEN", "LIKE", "ILIKE", "IS", "NULL", "DISTINCT", "AS",
	"CASE", "WHEN", "THEN", "ELSE", "END", "WITH", "RETURNING", "ASC", "DESC",
}

var (
	clausePattern    = keywordPattern(clauseKeywords)
	highlightPattern = keywordPattern(highlightKeywords)
	stringPattern    = regexp.MustCompile(`'(?:[^']|'')*'`)
)

func keywordPattern(keywords []string) *regexp.Regexp {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(k), " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// FormatSQLWithLineBreaks puts each clause on its own line.
func FormatSQLWithLineBreaks(sql string) string {
	if strings.TrimSpace(sql) == "" {
		return ""
	}

	formatted := clausePattern.ReplaceAllStringFunc(sql, func(match string) string {
		return "\n" + match
	})

	var lines []string
	for _, line := range strings.Split(formatted, "\n") {
		if trimmed := strings.Join(strings.Fields(line), " "); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}

// HighlightSQL colors keywords and string literals. Keywords inside string
// literals are left alone.
func HighlightSQL(sql string) string {
	var b strings.Builder
	last := 0
	for _, loc := range stringPattern.FindAllStringIndex(sql, -1) {
		b.WriteString(highlightKeywordsIn(sql[last:loc[0]]))
		b.WriteString(styles.SQLString.Render(sql[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(highlightKeywordsIn(sql[last:]))
	return b.String()
}

func highlightKeywordsIn(s string) string {
	return highlightPattern.ReplaceAllStringFunc(s, func(match string) string {
		return styles.SQLKeyword.Render(match)
	})
}
