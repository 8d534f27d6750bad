package schema

import (
	"context"
	"fmt"
	"sort"
)

// Catalog is the metadata source the builder reads from. internal/db
// implements it against the PostgreSQL information_schema; tests supply
// fakes.
type Catalog interface {
	// Tables returns the table names in the namespace, minus any name in
	// exclude. A nil or empty exclude imposes no filter.
	Tables(ctx context.Context, namespace string, exclude []string) ([]string, error)

	// Columns returns the columns of a table in ordinal order.
	Columns(ctx context.Context, namespace, table string) ([]Column, error)

	// PrimaryKey returns the primary key column name, or "" if the table
	// has no primary key.
	PrimaryKey(ctx context.Context, namespace, table string) (string, error)

	// ForeignKeys returns the foreign key constraints held by a table.
	ForeignKeys(ctx context.Context, namespace, table string) ([]ForeignKey, error)
}

// ReferentialIntegrityError reports a foreign key pointing at a table that
// is not part of the model, typically because the target was excluded from
// discovery. Callers must keep excluded tables unreferenced by included ones.
type ReferentialIntegrityError struct {
	Table   string
	Column  string
	Missing string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("foreign key %s.%s references table %s which is not in the schema model",
		e.Table, e.Column, e.Missing)
}

// Build assembles the relational model for a schema namespace in two passes.
//
// Pass 1 discovers every table with its primary key and columns, so that all
// table records exist before any relationship is examined. Pass 2 walks each
// table's foreign keys, annotates the local column with its target and
// appends a reverse relation on the referenced table. Single-pass
// construction would break whenever a foreign key points at a table not yet
// visited.
//
// Build is deterministic for an unchanged catalog: two successive builds
// produce structurally equal models.
func Build(ctx context.Context, cat Catalog, namespace string, exclude []string) (*Schema, error) {
	names, err := cat.Tables(ctx, namespace, exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to discover tables: %w", err)
	}

	s := &Schema{Name: namespace, Tables: make(map[string]*Table, len(names))}

	for _, name := range names {
		pk, err := cat.PrimaryKey(ctx, namespace, name)
		if err != nil {
			return nil, fmt.Errorf("failed to discover primary key of %s: %w", name, err)
		}

		cols, err := cat.Columns(ctx, namespace, name)
		if err != nil {
			return nil, fmt.Errorf("failed to discover columns of %s: %w", name, err)
		}

		table := &Table{
			Name:             name,
			PrimaryKey:       pk,
			Columns:          make(map[string]*Column, len(cols)),
			ReverseRelations: []ReverseRelation{},
		}
		for i := range cols {
			col := cols[i]
			table.Columns[col.Name] = &col
		}
		s.Tables[name] = table
	}

	// Iterate in name order so reverse relations come out in a stable
	// order regardless of map iteration.
	sort.Strings(names)

	for _, name := range names {
		fks, err := cat.ForeignKeys(ctx, namespace, name)
		if err != nil {
			return nil, fmt.Errorf("failed to discover foreign keys of %s: %w", name, err)
		}

		table := s.Tables[name]
		for _, fk := range fks {
			target := s.Tables[fk.ForeignTable]
			if target == nil {
				return nil, &ReferentialIntegrityError{
					Table:   name,
					Column:  fk.LocalColumn,
					Missing: fk.ForeignTable,
				}
			}

			if col := table.Columns[fk.LocalColumn]; col != nil {
				col.Foreign = &ForeignRef{
					SchemaName: fk.ForeignSchema,
					TableName:  fk.ForeignTable,
					ColumnName: fk.ForeignColumn,
				}
			}

			target.ReverseRelations = append(target.ReverseRelations, ReverseRelation{
				ForeignSchema: namespace,
				ForeignTable:  name,
				ForeignColumn: fk.LocalColumn,
				LocalColumn:   fk.ForeignColumn,
			})
		}
	}

	return s, nil
}
