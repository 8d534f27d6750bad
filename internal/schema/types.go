package schema

// Schema represents the relational model of one database schema namespace
// (e.g. "public"). It is built once by Build and treated as read-mostly
// afterwards; rebuilding while other goroutines read it must be serialized
// by the caller.
type Schema struct {
	Name   string
	Tables map[string]*Table
}

// Table represents a database table together with its computed reverse
// relations.
type Table struct {
	Name string

	// PrimaryKey is the name of the primary key column, or "" if the
	// table has none.
	PrimaryKey string

	Columns map[string]*Column

	// ReverseRelations lists every foreign key held by OTHER tables that
	// points at one of this table's columns. They are computed during
	// Build, not introspected directly.
	ReverseRelations []ReverseRelation
}

// Column represents a table column.
type Column struct {
	Name     string
	DataType string
	Nullable bool

	// Foreign is set when this column carries a foreign key constraint.
	Foreign *ForeignRef
}

// ForeignRef identifies the column a foreign key points at.
type ForeignRef struct {
	SchemaName string
	TableName  string
	ColumnName string
}

// ForeignKey is a foreign key constraint as discovered from the catalog.
type ForeignKey struct {
	LocalColumn   string
	ForeignSchema string
	ForeignTable  string
	ForeignColumn string
}

// ReverseRelation records, on a referenced table, that ForeignTable holds a
// foreign key on ForeignColumn pointing at this table's LocalColumn.
type ReverseRelation struct {
	ForeignSchema string
	ForeignTable  string
	ForeignColumn string
	LocalColumn   string
}

// Table returns the named table, or nil if the model does not contain it.
func (s *Schema) Table(name string) *Table {
	if s == nil {
		return nil
	}
	return s.Tables[name]
}
