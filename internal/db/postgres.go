// Package db implements the PostgreSQL execution collaborator and the
// catalog introspection queries behind the relational model.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool wraps a pgx connection pool. It is the query-execution collaborator:
// it runs statements and returns row maps, and serves the catalog queries
// used to build the relational model.
type Pool struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool and verifies it with a ping.
func Connect(ctx context.Context, connString string) (*Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Pool{pool: pool}, nil
}

// Close releases the underlying pool.
func (p *Pool) Close() {
	p.pool.Close()
}

// Query runs a parameterized statement and returns every row as a
// column-name-to-value map.
func (p *Pool) Query(ctx context.Context, sql string, params ...any) ([]map[string]any, error) {
	rows, err := p.pool.Query(ctx, sql, params...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToMap)
}

// QueryRow runs a statement expected to return at most one row. A missing
// row returns (nil, nil).
func (p *Pool) QueryRow(ctx context.Context, sql string, params ...any) (map[string]any, error) {
	results, err := p.Query(ctx, sql, params...)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// Exec runs a statement and returns the number of affected rows.
func (p *Pool) Exec(ctx context.Context, sql string, params ...any) (int64, error) {
	tag, err := p.pool.Exec(ctx, sql, params...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
