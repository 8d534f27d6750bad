// Package query translates declarative filter conditions and pagination
// directives into SQL predicates on a squirrel query builder.
//
// Security: the raw-equality operator ("<=>") and the raw where fragment
// embed caller-supplied content into the statement without parameter
// binding. Both paths are trusted-input-only; callers exposing them to
// untrusted filter input must enforce an allowlist at a higher layer.
package query

// Condition is an ordered (operator, column, value) triple.
//
// Operators:
//
//	"~"    case-insensitive contains match (only the first embedded space
//	       in the value becomes a wildcard)
//	"#"    membership: value is a comma-separated list
//	"<=>"  raw unparameterized equality (trusted input only)
//	other  passed through as a direct column-operator-value comparison
type Condition struct {
	Op     string `json:"op"`
	Column string `json:"column"`
	Value  any    `json:"value"`
}

// RawWhere is a raw SQL fragment with bound parameters, appended after the
// structured filter conditions.
type RawWhere struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params,omitempty"`
}

// Directive is a single pagination instruction. Recognized ops are "limit",
// "offset" and "orderby"; unknown ops are silently ignored so newer callers
// keep working against older adapters.
type Directive struct {
	Op    string `json:"op"`
	Value any    `json:"value"`
}

// Pagination is an ordered list of directives, applied in the order
// supplied.
type Pagination []Directive

// Arguments is the generic argument bag accepted by every read operation.
// Every part is optional; an absent part is a no-op.
type Arguments struct {
	// Filter maps a table name to the conditions applied when querying
	// that table.
	Filter map[string][]Condition `json:"filter,omitempty"`

	Where      *RawWhere  `json:"where,omitempty"`
	Pagination Pagination `json:"pagination,omitempty"`

	// Debug logs the generated statement and parameters before
	// execution. Diagnostic only; never part of a cache key.
	Debug bool `json:"-"`

	// SkipCache forces a fresh execution; the result still refreshes the
	// cache afterward. Never part of a cache key.
	SkipCache bool `json:"-"`
}
