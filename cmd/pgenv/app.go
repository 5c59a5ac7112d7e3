package main

import (
	"fmt"
	"os"

	"github.com/eduardofuncao/pgenv/internal/config"
	"github.com/eduardofuncao/pgenv/internal/db"
	"github.com/eduardofuncao/pgenv/internal/styles"
)

type App struct {
	profiles *config.Profiles
}

func NewApp(profiles *config.Profiles) *App {
	return &App{profiles: profiles}
}

func (a *App) Run() {
	if len(os.Args) < 2 {
		a.printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "init":
		a.handleInit()
	case "switch", "use":
		a.handleSwitch()
	case "remove", "delete":
		a.handleRemove()
	case "list":
		a.handleList()
	case "status":
		a.handleStatus()
	case "env":
		a.handleEnv()
	case "save", "add":
		a.handleSave()
	case "data":
		a.handleData()
	case "frame", "run":
		a.handleFrame()
	case "view":
		a.handleView()
	case "exec":
		a.handleExec()
	case "help", "-h", "--help":
		a.handleHelp()
	default:
		printError("Unknown command: %s", command)
	}
}

func (a *App) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("pgenv init <name> <env-file> [driver] [sslmode]")
	fmt.Println("pgenv switch <name>")
	fmt.Println("pgenv data <sql|query-name>")
	fmt.Println("pgenv frame <sql|query-name> [--format f] [--limit n] [--copy]")
	fmt.Println("pgenv help")
}

// client builds the facade for the current profile, or for ./.env when no
// profile is active.
func (a *App) client() *db.Client {
	prof, ok := a.profiles.Current()
	if !ok {
		return db.New(config.EnvFile(config.DefaultEnvFile))
	}
	return db.New(prof.Source(), profileOptions(prof)...)
}

func profileOptions(prof *config.Profile) []db.Option {
	var opts []db.Option
	if prof.Driver != "" {
		opts = append(opts, db.WithDriver(prof.Driver))
	}
	if prof.SSLMode != "" {
		opts = append(opts, db.WithSSLMode(prof.SSLMode))
	}
	return opts
}

// sourceName describes where settings are read from.
func (a *App) sourceName() string {
	if prof, ok := a.profiles.Current(); ok {
		return fmt.Sprintf("%s (%s)", prof.Name, prof.EnvFile)
	}
	return config.DefaultEnvFile
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, styles.Error.Render("✗ Error:"), msg)
	os.Exit(1)
}
