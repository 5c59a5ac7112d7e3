package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/eduardofuncao/pgenv/internal/config"
	"github.com/eduardofuncao/pgenv/internal/db"
	"github.com/eduardofuncao/pgenv/internal/editor"
	"github.com/eduardofuncao/pgenv/internal/parser"
	"github.com/eduardofuncao/pgenv/internal/spinner"
	"github.com/eduardofuncao/pgenv/internal/styles"
)

const pingTimeout = 10 * time.Second

func (a *App) handleInit() {
	if len(os.Args) < 4 {
		printError("Usage: pgenv init <name> <env-file> [driver] [sslmode]")
	}

	envFile, err := filepath.Abs(os.Args[3])
	if err != nil {
		printError("Could not resolve path %s: %v", os.Args[3], err)
	}

	prof := &config.Profile{Name: os.Args[2], EnvFile: envFile}
	if len(os.Args) > 4 {
		prof.Driver = os.Args[4]
	}
	if len(os.Args) > 5 {
		prof.SSLMode = os.Args[5]
	}

	engine, err := db.New(prof.Source(), profileOptions(prof)...).GetEngine()
	if err != nil {
		printError("Could not create engine for %s: %v", prof.Name, err)
	}

	if err := ping(engine); err != nil {
		printError("Could not communicate with the database %s: %v", engine, err)
	}

	if existing, ok := a.profiles.Profiles[prof.Name]; ok {
		prof.Queries = existing.Queries
	}
	a.profiles.Put(prof)
	if err := a.profiles.Save(); err != nil {
		printError("Could not save configuration file: %v", err)
	}

	fmt.Println(styles.Success.Render("✓ Profile created:"), styles.Title.Render(fmt.Sprintf("%s/%s", engine.Driver(), prof.Name)))
}

func (a *App) handleSwitch() {
	if len(os.Args) < 3 {
		printError("Usage: pgenv switch/use <name>")
	}

	name := os.Args[2]
	if _, ok := a.profiles.Profiles[name]; !ok {
		printError("Profile '%s' does not exist", name)
	}
	a.profiles.CurrentProfile = name

	if err := a.profiles.Save(); err != nil {
		printError("Could not save configuration file: %v", err)
	}
	fmt.Println(styles.Success.Render("⇄ Switched to:"), styles.Title.Render(name))
}

func (a *App) handleRemove() {
	if len(os.Args) < 3 {
		printError("Usage: pgenv remove <name>")
	}

	name := os.Args[2]
	if err := a.profiles.Remove(name); err != nil {
		printError("%v", err)
	}
	if err := a.profiles.Save(); err != nil {
		printError("Could not save configuration file: %v", err)
	}
	fmt.Println(styles.Success.Render("✓ Removed profile:"), styles.Title.Render(name))
}

func (a *App) handleList() {
	if len(a.profiles.Profiles) == 0 {
		fmt.Println(styles.Faint.Render("No profiles configured"))
		return
	}

	names := make([]string, 0, len(a.profiles.Profiles))
	for name := range a.profiles.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prof := a.profiles.Profiles[name]
		marker := styles.Faint.Render("◆")
		if name == a.profiles.CurrentProfile {
			marker = styles.Success.Render("●")
		}
		driver := prof.Driver
		if driver == "" {
			driver = db.DriverPostgres
		}
		fmt.Printf("%s %s %s\n", marker, styles.Title.Render(name),
			styles.Faint.Render(fmt.Sprintf("(%s, %s)", driver, prof.EnvFile)))

		queries := make([]config.Query, 0, len(prof.Queries))
		for _, q := range prof.Queries {
			queries = append(queries, q)
		}
		sort.Slice(queries, func(i, j int) bool { return queries[i].Id < queries[j].Id })
		for _, q := range queries {
			fmt.Printf("    %s %s\n", styles.Faint.Render(fmt.Sprintf("%d.", q.Id)), q.Name)
			for _, line := range strings.Split(parser.FormatSQLWithLineBreaks(q.SQL), "\n") {
				fmt.Println("       " + parser.HighlightSQL(line))
			}
		}
	}
}

func (a *App) handleStatus() {
	engine, err := a.client().GetEngine()
	if err != nil {
		printError("Could not load settings from %s: %v", a.sourceName(), err)
	}

	stop := spinner.Start("Checking...")
	err = ping(engine)
	stop()

	circleIcon, statusText := "●", "reachable"
	if err != nil {
		circleIcon, statusText = "○", "unreachable: "+err.Error()
	}

	fmt.Printf("%s Using %s\n", styles.Success.Render(circleIcon), styles.Title.Render(a.sourceName()))
	fmt.Printf("  %s, %s\n", engine, styles.Faint.Render(statusText))
}

func (a *App) handleEnv() {
	engine, err := a.client().GetEngine()
	if err != nil {
		printError("Could not load settings from %s: %v", a.sourceName(), err)
	}

	fmt.Println(styles.Title.Render(a.sourceName()))
	fmt.Println("  " + engine.Settings().Redacted())
	fmt.Println("  " + styles.Faint.Render(engine.String()))
}

func (a *App) handleSave() {
	if len(os.Args) < 3 {
		printError("Usage: pgenv save <query-name> [sql]")
	}

	prof, ok := a.profiles.Current()
	if !ok {
		printError("No active profile.  Use 'pgenv init' or 'pgenv switch <name>' first")
	}

	name := os.Args[2]
	var sql string
	if len(os.Args) > 3 {
		sql = os.Args[3]
	} else {
		edited, err := editor.Edit(name, "")
		if err != nil {
			printError("Error opening editor: %v", err)
		}
		sql = edited
	}

	q, err := prof.SaveQuery(name, sql)
	if err != nil {
		printError("%v", err)
	}
	if err := a.profiles.Save(); err != nil {
		printError("Could not save configuration file: %v", err)
	}
	fmt.Println(styles.Success.Render("✓ Query saved:"), styles.Title.Render(fmt.Sprintf("%d. %s", q.Id, q.Name)))
}

// ping opens and immediately releases a connection.
func ping(engine *db.Engine) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	conn, err := engine.Open(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}
