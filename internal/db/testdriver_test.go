package db

import (
	"database/sql"
	"database/sql/driver"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/mattn/go-sqlite3"

	"github.com/eduardofuncao/pgenv/internal/config"
)

const countingDriverName = "sqlite3-counting"

// countingDriver wraps sqlite3 and tracks how many connections are open.
type countingDriver struct {
	inner  driver.Driver
	open   atomic.Int64
	opened atomic.Int64
}

var counter = &countingDriver{inner: &sqlite3.SQLiteDriver{}}

func init() {
	sql.Register(countingDriverName, counter)
}

func (d *countingDriver) Open(name string) (driver.Conn, error) {
	c, err := d.inner.Open(name)
	if err != nil {
		return nil, err
	}
	d.open.Add(1)
	d.opened.Add(1)
	return &countingConn{Conn: c, d: d}, nil
}

type countingConn struct {
	driver.Conn
	d      *countingDriver
	closed bool
}

func (c *countingConn) Close() error {
	if !c.closed {
		c.closed = true
		c.d.open.Add(-1)
	}
	return c.Conn.Close()
}

// newTestDatabase creates a sqlite file with a small people table and returns
// settings pointing at it.
func newTestDatabase(t *testing.T) config.Settings {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")

	setup, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer setup.Close()

	stmts := []string{
		`CREATE TABLE people (id INTEGER PRIMARY KEY, name TEXT, score REAL, nickname TEXT)`,
		`INSERT INTO people VALUES (1, 'Alice', 9.5, 'al')`,
		`INSERT INTO people VALUES (2, 'Bob', 7.25, NULL)`,
		`INSERT INTO people VALUES (3, 'Carol', 8, 'cc')`,
		`CREATE TABLE people_copy (id INTEGER, name TEXT, score REAL, nickname TEXT)`,
	}
	for _, stmt := range stmts {
		if _, err := setup.Exec(stmt); err != nil {
			t.Fatalf("setup %q: %v", stmt, err)
		}
	}

	return config.Settings{Host: "localhost", Port: "0", Database: path, User: "test", Password: "test"}
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	s := newTestDatabase(t)
	return New(
		config.Literal(s.Host, s.Port, s.Database, s.User, s.Password),
		WithDriver(DriverSQLite),
		WithSQLDriver(countingDriverName),
	)
}

func assertNoOpenConnections(t *testing.T) {
	t.Helper()
	if n := counter.open.Load(); n != 0 {
		t.Errorf("open connections = %d, want 0", n)
	}
}
