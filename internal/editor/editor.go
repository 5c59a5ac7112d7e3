// Package editor opens $EDITOR on a temporary .sql file to write a query.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const instructions = `-- Enter your SQL query below
-- Save and exit to continue, or leave it empty to cancel
--
`

// ErrEmpty is returned when the editor was closed without any SQL.
var ErrEmpty = fmt.Errorf("empty query")

// Edit lets the user write SQL for the query called name, starting from
// initial, and returns the trimmed result.
func Edit(name, initial string) (string, error) {
	editorCmd := os.Getenv("EDITOR")
	if editorCmd == "" {
		editorCmd = "vim"
	}

	tmpFile, err := os.CreateTemp("", "pgenv-"+sanitize(name)+"-*.sql")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.WriteString(instructions + initial); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmpFile.Close()

	cmd := exec.Command(editorCmd, tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run editor: %w", err)
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}

	sql := StripInstructions(string(data))
	if sql == "" {
		return "", ErrEmpty
	}
	return sql, nil
}

// StripInstructions drops the instruction header, up to and including the
// bare "--" line, if it is still there.
func StripInstructions(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "-- Enter your SQL query below") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "--" {
			return strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		}
	}
	return ""
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' || r == '*' {
			return '_'
		}
		return r
	}, name)
}
