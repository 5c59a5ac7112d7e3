package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/eduardofuncao/pgenv/internal/config"
)

// Client resolves settings from its source on every call; it never keeps a
// connection between calls.
type Client struct {
	source config.Source
	opts   []Option
}

func New(src config.Source, opts ...Option) *Client {
	return &Client{source: src, opts: opts}
}

// GetEngine resolves the settings and returns an engine for them.
func (c *Client) GetEngine() (*Engine, error) {
	settings, err := config.LoadSettings(c.source)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return NewEngine(settings, c.opts...)
}

// GetData runs query inside a transaction on a fresh connection and returns
// the rows. The transaction is committed only when every row was read.
func (c *Client) GetData(ctx context.Context, query string) ([]Row, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	engine, err := c.GetEngine()
	if err != nil {
		return nil, err
	}

	conn, err := engine.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	_, data, err := scanRows(rows)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return data, nil
}

// GetDataFrame runs query on a fresh connection and returns the result with
// named columns.
func (c *Client) GetDataFrame(ctx context.Context, query string) (*DataFrame, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	engine, err := c.GetEngine()
	if err != nil {
		return nil, err
	}

	conn, err := engine.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	columns, data, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	return &DataFrame{Columns: columns, Rows: data}, nil
}

// GetData reads the settings from .env in the working directory.
func GetData(ctx context.Context, query string) ([]Row, error) {
	return New(config.EnvFile(config.DefaultEnvFile)).GetData(ctx, query)
}

// GetDataFrame reads the settings from .env in the working directory.
func GetDataFrame(ctx context.Context, query string) (*DataFrame, error) {
	return New(config.EnvFile(config.DefaultEnvFile)).GetDataFrame(ctx, query)
}

// GetEngine reads the settings from .env in the working directory.
func GetEngine() (*Engine, error) {
	return New(config.EnvFile(config.DefaultEnvFile)).GetEngine()
}
