package query

import (
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// condKind is the closed set of condition variants. Every operator token
// resolves to exactly one kind; tokens outside the fixed set fall through
// to kindCompare.
type condKind int

const (
	kindFuzzy   condKind = iota // ~
	kindIn                      // #
	kindRawEq                   // <=>
	kindCompare                 // anything else: direct comparison
)

func kindOf(op string) condKind {
	switch op {
	case "~":
		return kindFuzzy
	case "#":
		return kindIn
	case "<=>":
		return kindRawEq
	default:
		return kindCompare
	}
}

// Apply attaches the predicates for one table to a select builder in fixed
// order: structured filter conditions first, then the raw where fragment,
// then pagination directives in the order supplied.
func Apply(b sq.SelectBuilder, table string, args Arguments) sq.SelectBuilder {
	for _, c := range args.Filter[table] {
		b = applyCondition(b, c)
	}
	if args.Where != nil {
		b = b.Where(sq.Expr(args.Where.SQL, args.Where.Params...))
	}
	return ApplyPagination(b, args.Pagination)
}

// applyCondition is the single exhaustive dispatch over condition kinds.
func applyCondition(b sq.SelectBuilder, c Condition) sq.SelectBuilder {
	switch kindOf(c.Op) {
	case kindFuzzy:
		// Only the first embedded space becomes a wildcard. Narrow on
		// purpose; widening it changes which rows match.
		v := strings.Replace(toString(c.Value), " ", "%", 1)
		return b.Where(sq.ILike{c.Column: "%" + v + "%"})
	case kindIn:
		items := strings.Split(toString(c.Value), ",")
		return b.Where(sq.Eq{c.Column: items})
	case kindRawEq:
		// Unparameterized on purpose; trusted input only (see package doc).
		return b.Where(sq.Expr(fmt.Sprintf("%s = %v", c.Column, c.Value)))
	default:
		return b.Where(sq.Expr(fmt.Sprintf("%s %s ?", c.Column, c.Op), c.Value))
	}
}

// ApplyPagination applies limit, offset and orderby directives in the order
// supplied. Unknown directive ops are skipped.
func ApplyPagination(b sq.SelectBuilder, p Pagination) sq.SelectBuilder {
	for _, d := range p {
		switch d.Op {
		case "limit":
			b = b.Limit(toUint64(d.Value))
		case "offset":
			b = b.Offset(toUint64(d.Value))
		case "orderby":
			if clause := orderClause(toString(d.Value)); clause != "" {
				b = b.OrderBy(clause)
			}
		}
	}
	return b
}

// orderClause splits an "column direction" string into an ORDER BY clause.
// A missing direction defaults to ascending.
func orderClause(v string) string {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return ""
	}
	column := fields[0]
	dir := "ASC"
	if len(fields) > 1 && strings.EqualFold(fields[1], "desc") {
		dir = "DESC"
	}
	return column + " " + dir
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toUint64(v any) uint64 {
	switch n := v.(type) {
	case int:
		return uint64(n)
	case int64:
		return uint64(n)
	case uint64:
		return n
	case float64:
		return uint64(n)
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
