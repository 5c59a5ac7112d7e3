// Package viewer is an interactive, scrollable view of a query result.
package viewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/eduardofuncao/pgenv/internal/db"
	"github.com/eduardofuncao/pgenv/internal/styles"
)

const (
	maxColumnWidth = 40
	minColumnWidth = 4
	chromeHeight   = 4 // title, blank, status, help
)

type Model struct {
	table      table.Model
	frame      *db.DataFrame
	title      string
	elapsed    time.Duration
	status     string
	detailView bool
	copy       func(string) error
}

type clearStatusMsg struct{}

func New(frame *db.DataFrame, title string, elapsed time.Duration) Model {
	t := table.New(
		table.WithColumns(columnsFor(frame)),
		table.WithRows(rowsFor(frame)),
		table.WithFocused(true),
		table.WithHeight(min(frame.Len(), 20)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.ColorFaint)).
		BorderBottom(true).
		Foreground(lipgloss.Color(styles.ColorAccent)).
		Bold(true)
	s.Selected = styles.TableSelected
	t.SetStyles(s)

	return Model{
		table:   t,
		frame:   frame,
		title:   title,
		elapsed: elapsed,
		copy:    clipboard.WriteAll,
	}
}

// columnsFor sizes each column to its widest value, within limits.
func columnsFor(frame *db.DataFrame) []table.Column {
	records := frame.Records()
	cols := make([]table.Column, len(frame.Columns))
	for i, c := range frame.Columns {
		width := runewidth.StringWidth(c.Name)
		for _, rec := range records {
			width = max(width, runewidth.StringWidth(rec[i]))
		}
		width = min(max(width, minColumnWidth), maxColumnWidth)
		cols[i] = table.Column{Title: c.Name, Width: width}
	}
	return cols
}

func rowsFor(frame *db.DataFrame) []table.Row {
	records := frame.Records()
	rows := make([]table.Row, len(records))
	for i, rec := range records {
		rows[i] = table.Row(rec)
	}
	return rows
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-chromeHeight, 3))
		return m, nil
	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detailView {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc", "enter":
			m.detailView = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "enter":
		if len(m.table.SelectedRow()) > 0 {
			m.detailView = true
		}
		return m, nil
	case "y":
		return m.copySelectedRow()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// copySelectedRow puts the selected row on the clipboard as TSV.
func (m Model) copySelectedRow() (tea.Model, tea.Cmd) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return m, nil
	}

	if err := m.copy(strings.Join(row, "\t")); err != nil {
		m.status = fmt.Sprintf("Copy failed: %v", err)
	} else {
		m.status = fmt.Sprintf("Copied row %d to clipboard", m.table.Cursor()+1)
	}

	return m, func() tea.Msg {
		time.Sleep(2 * time.Second)
		return clearStatusMsg{}
	}
}

func (m Model) View() string {
	var b strings.Builder

	header := styles.Title.Render(m.title)
	info := styles.Faint.Render(fmt.Sprintf("%d rows in %.2fs", m.frame.Len(), m.elapsed.Seconds()))
	b.WriteString(header + "  " + info + "\n\n")

	if m.detailView {
		b.WriteString(m.detailContent())
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(styles.Success.Render(m.status) + "\n")
	}
	b.WriteString(styles.Faint.Render(m.helpLine()))
	return b.String()
}

func (m Model) helpLine() string {
	if m.detailView {
		return "enter/esc back • q back"
	}
	return "↑/k up • ↓/j down • enter detail • y copy row • q quit"
}

// detailContent lists the selected row one column per line.
func (m Model) detailContent() string {
	row := m.table.SelectedRow()
	width := 0
	for _, c := range m.frame.Columns {
		width = max(width, runewidth.StringWidth(c.Name))
	}

	var b strings.Builder
	for i, c := range m.frame.Columns {
		if i >= len(row) {
			break
		}
		name := runewidth.FillRight(c.Name, width)
		b.WriteString(styles.TableHeader.Render(name) + "  " + row[i] + "\n")
	}
	return b.String()
}

// Run shows frame until the user quits.
func Run(frame *db.DataFrame, title string, elapsed time.Duration) error {
	p := tea.NewProgram(New(frame, title, elapsed))
	_, err := p.Run()
	return err
}
