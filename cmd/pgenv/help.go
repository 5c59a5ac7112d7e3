package main

import (
	"fmt"

	"github.com/eduardofuncao/pgenv/internal/config"
	"github.com/eduardofuncao/pgenv/internal/db"
	"github.com/eduardofuncao/pgenv/internal/styles"
)

type helpEntry struct {
	usage, summary string
}

var commandHelp = map[string][]helpEntry{
	"Profiles": {
		{"init <name> <env-file> [driver] [sslmode]", "Check an env file and save it as the active profile"},
		{"switch <name>", "Switch the active profile (alias: use)"},
		{"remove <name>", "Remove a profile (alias: delete)"},
		{"list", "List profiles and their saved queries"},
		{"status", "Show the active profile and whether the server is reachable"},
		{"env", "Print the resolved settings with the password masked"},
	},
	"Queries": {
		{"save <name> [sql]", "Save a named query, opening $EDITOR without sql (alias: add)"},
		{"data <sql|name>", "Fetch rows and print them as tuples"},
		{"frame <sql|name>", "Fetch a table and render it (alias: run)"},
		{"view <sql|name>", "Open the result in the interactive viewer"},
		{"exec <sql|name>", "Run a statement and print the rows affected"},
	},
}

var helpSections = []string{"Profiles", "Queries"}

func (a *App) handleHelp() {
	fmt.Println(styles.Title.Render("pgenv - PostgreSQL settings from env files"))
	fmt.Println(styles.Faint.Render("Reads host, port, database, user and password and runs queries with them."))
	fmt.Println()

	fmt.Println(styles.Title.Render("Usage"))
	fmt.Println(styles.Separator.Render("  pgenv <command> [arguments]"))
	fmt.Println()

	for _, section := range helpSections {
		fmt.Println(styles.Title.Render(section))
		for _, e := range commandHelp[section] {
			fmt.Printf("  %-44s %s\n", e.usage, styles.Faint.Render(e.summary))
		}
		fmt.Println()
	}

	fmt.Println(styles.Title.Render("Query flags"))
	fmt.Printf("  %-44s %s\n", "-f, --format <fmt>", styles.Faint.Render("table, csv, tsv, json, markdown, html"))
	fmt.Printf("  %-44s %s\n", "-n, --limit <n>", styles.Faint.Render("Show at most n rows"))
	fmt.Printf("  %-44s %s\n", "-c, --copy", styles.Faint.Render("Copy the formatted result to the clipboard"))
	fmt.Println()

	fmt.Println(styles.Title.Render("Settings"))
	fmt.Printf("  %s\n", styles.Faint.Render(fmt.Sprintf("Without an active profile settings are read from %s.", config.DefaultEnvFile)))
	fmt.Printf("  %s\n", styles.Faint.Render(fmt.Sprintf("Drivers: %v", db.SupportedDrivers())))
	fmt.Printf("  %s\n", styles.Faint.Render("Profiles: "+config.CfgFile))
}
