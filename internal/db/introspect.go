package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/Duck441/db2graphql/internal/schema"
)

// ExcludeCondition builds an "AND table_name NOT IN (...)" fragment for the
// table discovery query. Placeholders are numbered from startIdx. An empty
// exclude list produces no fragment and no parameters.
func ExcludeCondition(exclude []string, startIdx int) (string, []any) {
	if len(exclude) == 0 {
		return "", nil
	}

	placeholders := make([]string, len(exclude))
	params := make([]any, len(exclude))
	for i, name := range exclude {
		placeholders[i] = fmt.Sprintf("$%d", startIdx+i)
		params[i] = name
	}
	return fmt.Sprintf("AND table_name NOT IN (%s)", strings.Join(placeholders, ", ")), params
}

// Tables returns the base table names in a schema namespace, minus any name
// in exclude.
func (p *Pool) Tables(ctx context.Context, namespace string, exclude []string) ([]string, error) {
	fragment, extra := ExcludeCondition(exclude, 2)
	query := fmt.Sprintf(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE' %s
		ORDER BY table_name
	`, fragment)

	params := append([]any{namespace}, extra...)
	rows, err := p.pool.Query(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}

	return tables, rows.Err()
}

// Columns returns a table's columns in ordinal order with name, native type
// and nullability.
func (p *Pool) Columns(ctx context.Context, namespace, table string) ([]schema.Column, error) {
	query := `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := p.pool.Query(ctx, query, namespace, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var col schema.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.DataType, &nullable); err != nil {
			return nil, err
		}
		col.Nullable = (nullable == "YES")
		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// PrimaryKey returns the primary key column name of a table, or "" when the
// table has no primary key.
func (p *Pool) PrimaryKey(ctx context.Context, namespace, table string) (string, error) {
	query := `
		SELECT column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = $1
			AND table_name = $2
			AND constraint_name IN (
				SELECT constraint_name
				FROM information_schema.table_constraints
				WHERE table_schema = $1
					AND table_name = $2
					AND constraint_type = 'PRIMARY KEY'
			)
		ORDER BY ordinal_position
		LIMIT 1
	`

	rows, err := p.pool.Query(ctx, query, namespace, table)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var pk string
	if rows.Next() {
		if err := rows.Scan(&pk); err != nil {
			return "", err
		}
	}

	return pk, rows.Err()
}

// ForeignKeys returns the foreign key constraints held by a table.
func (p *Pool) ForeignKeys(ctx context.Context, namespace, table string) ([]schema.ForeignKey, error) {
	query := `
		SELECT
			kcu.column_name,
			ccu.table_schema AS foreign_table_schema,
			ccu.table_name AS foreign_table_name,
			ccu.column_name AS foreign_column_name
		FROM information_schema.table_constraints AS tc
		JOIN information_schema.key_column_usage AS kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
		JOIN information_schema.constraint_column_usage AS ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = $1
			AND tc.table_name = $2
		ORDER BY kcu.ordinal_position
	`

	rows, err := p.pool.Query(ctx, query, namespace, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fks []schema.ForeignKey
	for rows.Next() {
		var fk schema.ForeignKey
		if err := rows.Scan(&fk.LocalColumn, &fk.ForeignSchema, &fk.ForeignTable, &fk.ForeignColumn); err != nil {
			return nil, err
		}
		fks = append(fks, fk)
	}

	return fks, rows.Err()
}
