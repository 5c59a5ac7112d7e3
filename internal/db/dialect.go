package db

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/eduardofuncao/pgenv/internal/config"
)

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite3"
)

type dialect struct {
	// sqlDriver is the name registered with database/sql.
	sqlDriver   string
	dsn         func(s config.Settings, sslMode string) string
	placeholder func(index int) string
	quote       func(ident string) string
}

var dialects = map[string]dialect{
	DriverPostgres: {
		sqlDriver:   "postgres",
		dsn:         postgresKeywordDSN,
		placeholder: dollarPlaceholder,
		quote:       pq.QuoteIdentifier,
	},
	DriverPgx: {
		sqlDriver:   "pgx",
		dsn:         postgresKeywordDSN,
		placeholder: dollarPlaceholder,
		quote:       pq.QuoteIdentifier,
	},
	DriverMySQL: {
		sqlDriver:   "mysql",
		dsn:         mysqlDSN,
		placeholder: questionPlaceholder,
		quote:       backtickQuote,
	},
	DriverSQLite: {
		sqlDriver:   "sqlite3",
		dsn:         func(s config.Settings, _ string) string { return s.Database },
		placeholder: questionPlaceholder,
		quote:       pq.QuoteIdentifier,
	},
}

func lookupDialect(driver string) (dialect, error) {
	switch strings.ToLower(driver) {
	case "", "postgres", "postgresql":
		return dialects[DriverPostgres], nil
	case "pgx":
		return dialects[DriverPgx], nil
	case "mysql", "mariadb":
		return dialects[DriverMySQL], nil
	case "sqlite", "sqlite3":
		return dialects[DriverSQLite], nil
	default:
		return dialect{}, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
}

// SupportedDrivers lists the driver names accepted by WithDriver.
func SupportedDrivers() []string {
	return []string{DriverPostgres, DriverPgx, DriverMySQL, DriverSQLite}
}

// postgresKeywordDSN builds a "key=value" connection string. Both lib/pq and
// pgx parse it, and unlike a URL it takes a socket directory as host.
func postgresKeywordDSN(s config.Settings, sslMode string) string {
	pairs := []string{
		"host=" + quoteDSNValue(s.Host),
		"port=" + quoteDSNValue(s.Port),
		"dbname=" + quoteDSNValue(s.Database),
		"user=" + quoteDSNValue(s.User),
		"password=" + quoteDSNValue(s.Password),
	}
	if sslMode != "" {
		pairs = append(pairs, "sslmode="+quoteDSNValue(sslMode))
	}
	return strings.Join(pairs, " ")
}

// quoteDSNValue single-quotes values that are empty or contain spaces,
// quotes or backslashes.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func mysqlDSN(s config.Settings, _ string) string {
	cfg := mysql.NewConfig()
	cfg.User = s.User
	cfg.Passwd = s.Password
	cfg.Net = "tcp"
	cfg.Addr = s.Address()
	cfg.DBName = s.Database
	return cfg.FormatDSN()
}

func dollarPlaceholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

func questionPlaceholder(int) string {
	return "?"
}

func backtickQuote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}
