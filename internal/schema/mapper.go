package schema

import "fmt"

// GraphqlType is one of the abstract scalar kinds a database column maps to.
type GraphqlType string

const (
	TypeBoolean GraphqlType = "Boolean"
	TypeFloat   GraphqlType = "Float"
	TypeInt     GraphqlType = "Int"
	TypeString  GraphqlType = "String"
)

// UnsupportedTypeError reports a native column type with no abstract
// mapping. It is a hard stop: silently defaulting would corrupt
// type-sensitive logic downstream.
type UnsupportedTypeError struct {
	Column   string
	DataType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("column %s has unsupported data type %q", e.Column, e.DataType)
}

// AvailableTypes returns the fixed list of recognized abstract scalar type
// names.
func AvailableTypes() []string {
	return []string{
		string(TypeBoolean),
		string(TypeFloat),
		string(TypeInt),
		string(TypeString),
	}
}

// MapColumn maps a native catalog type name to its abstract scalar kind.
// Pure and deterministic. Unrecognized types return *UnsupportedTypeError
// naming the column and the native type.
func MapColumn(columnName string, col Column) (GraphqlType, error) {
	switch col.DataType {
	case "boolean":
		return TypeBoolean, nil
	case "numeric", "real", "double precision":
		return TypeFloat, nil
	case "integer", "smallint", "bigint":
		return TypeInt, nil
	case "character varying", "character", "text", "bytea",
		"timestamp with time zone", "USER-DEFINED":
		return TypeString, nil
	default:
		return "", &UnsupportedTypeError{Column: columnName, DataType: col.DataType}
	}
}
