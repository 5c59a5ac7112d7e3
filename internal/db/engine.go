package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/eduardofuncao/pgenv/internal/config"
)

// Engine produces connection handles for one set of settings. It holds no
// open connection itself.
type Engine struct {
	settings  config.Settings
	driver    string
	sslMode   string
	sqlDriver string
	dialect   dialect
}

type Option func(*Engine)

// WithDriver selects the dialect: postgres (default), pgx, mysql or sqlite3.
func WithDriver(name string) Option {
	return func(e *Engine) { e.driver = name }
}

// WithSSLMode sets the sslmode parameter for the postgres dialects.
func WithSSLMode(mode string) Option {
	return func(e *Engine) { e.sslMode = mode }
}

// WithSQLDriver overrides the database/sql driver name while keeping the
// dialect's DSN, placeholders and quoting.
func WithSQLDriver(name string) Option {
	return func(e *Engine) { e.sqlDriver = name }
}

func NewEngine(settings config.Settings, opts ...Option) (*Engine, error) {
	e := &Engine{settings: settings}
	for _, opt := range opts {
		opt(e)
	}

	d, err := lookupDialect(e.driver)
	if err != nil {
		return nil, err
	}
	e.dialect = d
	e.driver = d.sqlDriver
	if e.sqlDriver == "" {
		e.sqlDriver = d.sqlDriver
	}
	return e, nil
}

func (e *Engine) Driver() string { return e.driver }

func (e *Engine) Settings() config.Settings { return e.settings }

// DSN returns the driver specific connection string, password included.
func (e *Engine) DSN() string {
	return e.dialect.dsn(e.settings, e.sslMode)
}

// String renders the engine as a URL with the password masked.
func (e *Engine) String() string {
	u := url.URL{Scheme: e.driver}
	if e.driver == DriverSQLite {
		u.Opaque = e.settings.Database
		return u.String()
	}
	u.User = url.UserPassword(e.settings.User, e.settings.Password)
	u.Host = e.settings.Address()
	u.Path = "/" + e.settings.Database
	return u.Redacted()
}

// Open returns a new handle limited to a single session and verified with a
// ping. The caller owns the handle and must Close it.
func (e *Engine) Open(ctx context.Context) (*sql.DB, error) {
	db, err := e.open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", e, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", e, err)
	}
	return db, nil
}

func (e *Engine) open() (*sql.DB, error) {
	if e.driver == DriverPgx && e.sqlDriver == DriverPgx {
		cfg, err := pgx.ParseConfig(e.DSN())
		if err != nil {
			return nil, err
		}
		return stdlib.OpenDB(*cfg), nil
	}
	return sql.Open(e.sqlDriver, e.DSN())
}

// Exec runs a statement that returns no rows on a fresh connection and
// reports the number of rows affected.
func (e *Engine) Exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	if strings.TrimSpace(stmt) == "" {
		return 0, ErrEmptyQuery
	}

	db, err := e.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("exec failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// InsertFrame appends every row of frame to an existing table, matching
// frame columns to table columns by name. All rows are written in one
// transaction. table may be schema qualified; double-quote a part that
// contains a dot, as in `public."my.table"`.
func (e *Engine) InsertFrame(ctx context.Context, table string, frame *DataFrame) (int64, error) {
	if strings.TrimSpace(table) == "" {
		return 0, fmt.Errorf("table name is empty")
	}
	if frame == nil || frame.Len() == 0 {
		return 0, nil
	}

	db, err := e.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, e.insertStatement(table, frame.ColumnNames()))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for i, row := range frame.Rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func (e *Engine) insertStatement(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = e.dialect.quote(col)
		placeholders[i] = e.dialect.placeholder(i + 1)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		e.quoteTable(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))
}

// quoteTable quotes each part of a possibly schema-qualified name.
func (e *Engine) quoteTable(table string) string {
	parts := splitQualifiedName(table)
	for i, p := range parts {
		parts[i] = e.dialect.quote(p)
	}
	return strings.Join(parts, ".")
}

// splitQualifiedName splits schema.table on dots outside double quotes.
// Quoted parts lose their quotes and "" becomes ".
func splitQualifiedName(name string) []string {
	var (
		parts  []string
		part   strings.Builder
		quoted bool
	)
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '"' && quoted && i+1 < len(name) && name[i+1] == '"':
			part.WriteByte('"')
			i++
		case c == '"':
			quoted = !quoted
		case c == '.' && !quoted:
			parts = append(parts, part.String())
			part.Reset()
		default:
			part.WriteByte(c)
		}
	}
	return append(parts, part.String())
}
