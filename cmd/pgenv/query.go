package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/eduardofuncao/pgenv/internal/db"
	"github.com/eduardofuncao/pgenv/internal/render"
	"github.com/eduardofuncao/pgenv/internal/spinner"
	"github.com/eduardofuncao/pgenv/internal/styles"
	"github.com/eduardofuncao/pgenv/internal/viewer"
)

type queryFlags struct {
	format   render.Format
	limit    int
	copy     bool
	selector string
}

func parseQueryFlags(args []string) (queryFlags, error) {
	flags := queryFlags{format: render.FormatTable}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--copy", "-c":
			flags.copy = true
		case "--format", "-f", "--limit", "-n":
			if i+1 >= len(args) {
				return flags, fmt.Errorf("%s needs a value", arg)
			}
			i++
			if arg == "--format" || arg == "-f" {
				format, err := render.ParseFormat(args[i])
				if err != nil {
					return flags, err
				}
				flags.format = format
				continue
			}
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 0 {
				return flags, fmt.Errorf("invalid limit: %s", args[i])
			}
			flags.limit = n
		default:
			if flags.selector != "" {
				return flags, fmt.Errorf("unexpected argument: %s", arg)
			}
			flags.selector = arg
		}
	}
	if flags.selector == "" {
		return flags, fmt.Errorf("missing SQL or saved query name")
	}
	return flags, nil
}

// resolveSQL returns inline SQL as is, or the saved query of the current
// profile matching selector by name or ID.
func (a *App) resolveSQL(selector string) (title, sql string) {
	if isLikelySQL(selector) {
		return "<inline>", selector
	}
	prof, ok := a.profiles.Current()
	if !ok {
		printError("'%s' is not SQL and there is no active profile with saved queries", selector)
	}
	q, found := prof.FindQuery(selector)
	if !found {
		printError("Could not find query with name/id: %v", selector)
	}
	return q.Name, q.SQL
}

func (a *App) handleData() {
	flags := a.parseFlagsOrExit()
	_, sql := a.resolveSQL(flags.selector)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	stop := spinner.Start("")
	rows, err := a.client().GetData(ctx, sql)
	stop()
	if err != nil {
		printError("Could not execute query: %v", err)
	}

	if flags.limit > 0 && flags.limit < len(rows) {
		rows = rows[:flags.limit]
	}
	for _, row := range rows {
		fmt.Println(formatTuple(row))
	}
}

func (a *App) handleFrame() {
	flags := a.parseFlagsOrExit()
	title, sql := a.resolveSQL(flags.selector)

	frame, elapsed := a.fetchFrame(sql)
	frame = frame.Head(flags.limit)

	opts := render.Options{Title: title}
	if flags.copy {
		content, err := render.String(frame, flags.format, opts)
		if err != nil {
			printError("Could not format result: %v", err)
		}
		if err := clipboard.WriteAll(content); err != nil {
			printError("Could not copy to clipboard: %v", err)
		}
		fmt.Println(styles.Success.Render("✓ Copied"), styles.Faint.Render(fmt.Sprintf("%d rows as %s", frame.Len(), flags.format)))
		return
	}

	if err := render.Write(os.Stdout, frame, flags.format, opts); err != nil {
		printError("Could not render result: %v", err)
	}
	if flags.format == render.FormatTable {
		fmt.Println(styles.Faint.Render(fmt.Sprintf("%d rows in %.2fs", frame.Len(), elapsed.Seconds())))
	}
}

func (a *App) handleView() {
	flags := a.parseFlagsOrExit()
	title, sql := a.resolveSQL(flags.selector)

	frame, elapsed := a.fetchFrame(sql)
	if err := viewer.Run(frame.Head(flags.limit), title, elapsed); err != nil {
		printError("Error rendering table: %v", err)
	}
}

func (a *App) handleExec() {
	flags := a.parseFlagsOrExit()
	_, sql := a.resolveSQL(flags.selector)

	engine, err := a.client().GetEngine()
	if err != nil {
		printError("Could not load settings from %s: %v", a.sourceName(), err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	stop := spinner.Start("")
	n, err := engine.Exec(ctx, sql)
	stop()
	if err != nil {
		printError("Could not execute statement: %v", err)
	}
	fmt.Println(styles.Success.Render("✓ Done:"), fmt.Sprintf("%d rows affected", n))
}

func (a *App) fetchFrame(sql string) (*db.DataFrame, time.Duration) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	start := time.Now()
	stop := spinner.Start("")
	frame, err := a.client().GetDataFrame(ctx, sql)
	stop()
	if err != nil {
		printError("Could not execute query: %v", err)
	}
	return frame, time.Since(start)
}

func (a *App) parseFlagsOrExit() queryFlags {
	flags, err := parseQueryFlags(os.Args[2:])
	if err != nil {
		printError("%v", err)
	}
	return flags
}

// formatTuple prints a row the way a fetched tuple reads: strings quoted,
// NULL bare.
func formatTuple(row db.Row) string {
	parts := make([]string, len(row))
	for i, val := range row {
		if s, ok := val.(string); ok {
			parts[i] = "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
			continue
		}
		parts[i] = db.FormatValue(val)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func isLikelySQL(s string) bool {
	upper := strings.ToUpper(strings.TrimSpace(s))
	keywords := []string{
		"SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER", "TRUNCATE",
		"WITH", "SHOW", "DESCRIBE", "DESC", "EXPLAIN", "GRANT", "REVOKE",
		"BEGIN", "COMMIT", "ROLLBACK", "PRAGMA", "VALUES", "TABLE",
	}

	for _, kw := range keywords {
		if upper == kw || strings.HasPrefix(upper, kw+" ") || strings.HasPrefix(upper, kw+"\n") {
			return true
		}
	}
	return false
}
