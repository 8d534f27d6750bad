package schema

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// fakeCatalog serves a fixed in-memory catalog for builder tests.
type fakeCatalog struct {
	tables      []string
	columns     map[string][]Column
	primaryKeys map[string]string
	foreignKeys map[string][]ForeignKey
}

func (f *fakeCatalog) Tables(_ context.Context, _ string, exclude []string) ([]string, error) {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}
	var out []string
	for _, name := range f.tables {
		if !excluded[name] {
			out = append(out, name)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Columns(_ context.Context, _, table string) ([]Column, error) {
	return f.columns[table], nil
}

func (f *fakeCatalog) PrimaryKey(_ context.Context, _, table string) (string, error) {
	return f.primaryKeys[table], nil
}

func (f *fakeCatalog) ForeignKeys(_ context.Context, _, table string) ([]ForeignKey, error) {
	return f.foreignKeys[table], nil
}

func newShopCatalog() *fakeCatalog {
	return &fakeCatalog{
		tables: []string{"users", "orders"},
		columns: map[string][]Column{
			"users": {
				{Name: "id", DataType: "integer"},
				{Name: "email", DataType: "character varying"},
			},
			"orders": {
				{Name: "id", DataType: "integer"},
				{Name: "user_id", DataType: "integer", Nullable: true},
			},
		},
		primaryKeys: map[string]string{"users": "id", "orders": "id"},
		foreignKeys: map[string][]ForeignKey{
			"orders": {
				{LocalColumn: "user_id", ForeignSchema: "public", ForeignTable: "users", ForeignColumn: "id"},
			},
		},
	}
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	s, err := Build(ctx, newShopCatalog(), "public", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(s.Tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(s.Tables))
	}

	users := s.Table("users")
	if users == nil {
		t.Fatal("Expected table users not found")
	}
	if users.PrimaryKey != "id" {
		t.Errorf("Expected primary key id, got %q", users.PrimaryKey)
	}

	// The foreign key on orders.user_id must annotate the local column...
	orders := s.Table("orders")
	userID := orders.Columns["user_id"]
	if userID == nil || userID.Foreign == nil {
		t.Fatal("Expected foreign key annotation on orders.user_id")
	}
	wantRef := &ForeignRef{SchemaName: "public", TableName: "users", ColumnName: "id"}
	if !reflect.DeepEqual(userID.Foreign, wantRef) {
		t.Errorf("Expected foreign ref %+v, got %+v", wantRef, userID.Foreign)
	}

	// ...and produce exactly one reverse relation on the referenced table.
	if len(users.ReverseRelations) != 1 {
		t.Fatalf("Expected 1 reverse relation on users, got %d", len(users.ReverseRelations))
	}
	wantRev := ReverseRelation{
		ForeignSchema: "public",
		ForeignTable:  "orders",
		ForeignColumn: "user_id",
		LocalColumn:   "id",
	}
	if users.ReverseRelations[0] != wantRev {
		t.Errorf("Expected reverse relation %+v, got %+v", wantRev, users.ReverseRelations[0])
	}

	// Tables without inbound foreign keys keep an empty, non-nil list.
	if orders.ReverseRelations == nil || len(orders.ReverseRelations) != 0 {
		t.Errorf("Expected empty reverse relations on orders, got %v", orders.ReverseRelations)
	}
}

func TestBuildIdempotent(t *testing.T) {
	ctx := context.Background()
	cat := newShopCatalog()

	first, err := Build(ctx, cat, "public", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := Build(ctx, cat, "public", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Two builds over an unchanged catalog should be structurally equal")
	}
}

func TestBuildExcludedReference(t *testing.T) {
	ctx := context.Background()

	// Excluding a referenced table must fail the build, not silently drop
	// the relationship.
	_, err := Build(ctx, newShopCatalog(), "public", []string{"users"})
	if err == nil {
		t.Fatal("Expected error but got none")
	}

	var rie *ReferentialIntegrityError
	if !errors.As(err, &rie) {
		t.Fatalf("Expected ReferentialIntegrityError, got %T: %v", err, err)
	}
	if rie.Table != "orders" || rie.Column != "user_id" || rie.Missing != "users" {
		t.Errorf("Error should name the offending key, got %+v", rie)
	}
}

func TestBuildExcludeUnreferenced(t *testing.T) {
	ctx := context.Background()
	cat := newShopCatalog()
	cat.tables = append(cat.tables, "audit_log")
	cat.columns["audit_log"] = []Column{{Name: "id", DataType: "integer"}}
	cat.primaryKeys["audit_log"] = "id"

	s, err := Build(ctx, cat, "public", []string{"audit_log"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Table("audit_log") != nil {
		t.Error("Excluded table should not be in the model")
	}
	if len(s.Tables) != 2 {
		t.Errorf("Expected 2 tables, got %d", len(s.Tables))
	}
}
