//go:build integration
// +build integration

package integration

import (
	"testing"

	"github.com/Duck441/db2graphql/internal/schema"
)

// verifyTablesExist checks that all expected tables are present in the model
func verifyTablesExist(t *testing.T, s *schema.Schema, expectedTables []string) {
	t.Helper()

	if len(s.Tables) != len(expectedTables) {
		t.Errorf("Expected %d tables, got %d", len(expectedTables), len(s.Tables))
	}

	for _, tableName := range expectedTables {
		if s.Table(tableName) == nil {
			t.Errorf("Expected table %s not found in model", tableName)
		}
	}
}

// verifyColumns checks that expected columns exist in a table
func verifyColumns(t *testing.T, table *schema.Table, expectedColumns []string) {
	t.Helper()

	for _, colName := range expectedColumns {
		if table.Columns[colName] == nil {
			t.Errorf("Expected column %s not found in %s table", colName, table.Name)
		}
	}
}

// verifyPrimaryKey checks that a table has the expected primary key
func verifyPrimaryKey(t *testing.T, table *schema.Table, expectedPK string) {
	t.Helper()

	if table.PrimaryKey != expectedPK {
		t.Errorf("Expected primary key %s, got %s", expectedPK, table.PrimaryKey)
	}
}

// verifyForeignKey checks that a foreign key annotation and its reverse
// relation both exist
func verifyForeignKey(t *testing.T, s *schema.Schema, tableName, sourceColumn, targetTable string) {
	t.Helper()

	table := s.Table(tableName)
	if table == nil {
		t.Fatalf("Table %s not found", tableName)
	}

	col := table.Columns[sourceColumn]
	if col == nil || col.Foreign == nil || col.Foreign.TableName != targetTable {
		t.Errorf("Expected foreign key from %s.%s to %s not found", tableName, sourceColumn, targetTable)
		return
	}

	target := s.Table(targetTable)
	if target == nil {
		t.Fatalf("Table %s not found", targetTable)
	}
	for _, rel := range target.ReverseRelations {
		if rel.ForeignTable == tableName && rel.ForeignColumn == sourceColumn {
			return
		}
	}
	t.Errorf("Expected reverse relation on %s from %s.%s not found", targetTable, tableName, sourceColumn)
}
