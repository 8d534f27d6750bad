// Package gql builds an executable GraphQL schema on top of the adapter.
// Every table in the relational model gets list, first-of and total queries
// plus an upsert mutation, all delegating to the adapter facade.
package gql

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/Duck441/db2graphql"
	"github.com/Duck441/db2graphql/internal/schema"
)

// Resolver turns the relational model into GraphQL types and resolvers.
// Type construction is cached so shared tables are built once.
type Resolver struct {
	adapter   *db2graphql.Adapter
	typeCache map[string]*graphql.Object
}

// New creates a resolver over an adapter with an already-built schema.
func New(adapter *db2graphql.Adapter) *Resolver {
	return &Resolver{
		adapter:   adapter,
		typeCache: make(map[string]*graphql.Object),
	}
}

// BuildSchema constructs the executable GraphQL schema: per table a
// getPage<Table> list query, getFirstOf<Table> single-row query,
// getPageTotal<Table> aggregate and a putItem<Table> mutation.
func (r *Resolver) BuildSchema() (graphql.Schema, error) {
	model := r.adapter.Schema()
	if model == nil {
		return graphql.Schema{}, fmt.Errorf("relational model is not built; call GetSchema first")
	}

	names := make([]string, 0, len(model.Tables))
	for name := range model.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	queryFields := graphql.Fields{}
	mutationFields := graphql.Fields{}

	for _, name := range names {
		name := name
		table := model.Tables[name]
		obj, err := r.tableType(table)
		if err != nil {
			return graphql.Schema{}, err
		}

		suffix := exportedName(name)
		queryFields["getPage"+suffix] = &graphql.Field{
			Type: graphql.NewList(obj),
			Args: readArgs(),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				args, err := argumentsFrom(name, p)
				if err != nil {
					return nil, err
				}
				return r.adapter.Page(p.Context, name, args)
			},
		}
		queryFields["getFirstOf"+suffix] = &graphql.Field{
			Type: obj,
			Args: readArgs(),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				args, err := argumentsFrom(name, p)
				if err != nil {
					return nil, err
				}
				return r.adapter.FirstOf(p.Context, name, args)
			},
		}
		queryFields["getPageTotal"+suffix] = &graphql.Field{
			Type: graphql.Int,
			Args: readArgs(),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				args, err := argumentsFrom(name, p)
				if err != nil {
					return nil, err
				}
				total, err := r.adapter.PageTotal(p.Context, name, args)
				return int(total), err
			},
		}
		mutationFields["putItem"+suffix] = &graphql.Field{
			Type: obj,
			Args: r.mutationArgs(table),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				data := make(map[string]any)
				for col := range table.Columns {
					if v, ok := p.Args[col]; ok {
						data[col] = v
					}
				}
				return r.adapter.Upsert(p.Context, name, data, db2graphql.Arguments{})
			},
		}
	}

	config := graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: queryFields}),
	}
	if len(mutationFields) > 0 {
		config.Mutation = graphql.NewObject(graphql.ObjectConfig{Name: "Mutation", Fields: mutationFields})
	}
	return graphql.NewSchema(config)
}

// tableType builds (and caches) the GraphQL object for a table, one field
// per column typed through the column type mapper.
func (r *Resolver) tableType(table *schema.Table) (*graphql.Object, error) {
	if obj, ok := r.typeCache[table.Name]; ok {
		return obj, nil
	}

	fields := graphql.Fields{}
	for name, col := range table.Columns {
		scalar, err := r.scalarFor(name, *col)
		if err != nil {
			return nil, err
		}
		colName := name
		fields[name] = &graphql.Field{
			Type: scalar,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				row, ok := p.Source.(map[string]any)
				if !ok {
					return nil, nil
				}
				return row[colName], nil
			},
		}
	}

	obj := graphql.NewObject(graphql.ObjectConfig{
		Name:   exportedName(table.Name),
		Fields: fields,
	})
	r.typeCache[table.Name] = obj
	return obj, nil
}

func (r *Resolver) scalarFor(name string, col schema.Column) (graphql.Output, error) {
	kind, err := r.adapter.MapDbColumnToGraphqlType(name, col)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "Boolean":
		return graphql.Boolean, nil
	case "Float":
		return graphql.Float, nil
	case "Int":
		return graphql.Int, nil
	default:
		return graphql.String, nil
	}
}

func (r *Resolver) mutationArgs(table *schema.Table) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{}
	for name, col := range table.Columns {
		scalar, err := r.scalarFor(name, *col)
		if err != nil {
			continue
		}
		input, ok := scalar.(graphql.Input)
		if !ok {
			continue
		}
		args[name] = &graphql.ArgumentConfig{Type: input}
	}
	args["_debug"] = &graphql.ArgumentConfig{Type: graphql.Boolean}
	return args
}

func readArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"filter":  &graphql.ArgumentConfig{Type: graphql.String},
		"where":   &graphql.ArgumentConfig{Type: graphql.String},
		"limit":   &graphql.ArgumentConfig{Type: graphql.Int},
		"offset":  &graphql.ArgumentConfig{Type: graphql.Int},
		"orderby": &graphql.ArgumentConfig{Type: graphql.String},
		"_debug":  &graphql.ArgumentConfig{Type: graphql.Boolean},
		"_cache":  &graphql.ArgumentConfig{Type: graphql.Boolean},
	}
}

// argumentsFrom converts resolver params into the adapter argument bag.
// The filter argument is a JSON array of [operator, column, value] triples.
func argumentsFrom(table string, p graphql.ResolveParams) (db2graphql.Arguments, error) {
	var args db2graphql.Arguments

	if raw, ok := p.Args["filter"].(string); ok && raw != "" {
		conditions, err := parseFilter(raw)
		if err != nil {
			return args, fmt.Errorf("invalid filter: %w", err)
		}
		args.Filter = map[string][]db2graphql.Condition{table: conditions}
	}

	if raw, ok := p.Args["where"].(string); ok && raw != "" {
		args.Where = &db2graphql.RawWhere{SQL: raw}
	}

	if limit, ok := p.Args["limit"].(int); ok {
		args.Pagination = append(args.Pagination, db2graphql.Directive{Op: "limit", Value: limit})
	}
	if offset, ok := p.Args["offset"].(int); ok {
		args.Pagination = append(args.Pagination, db2graphql.Directive{Op: "offset", Value: offset})
	}
	if orderby, ok := p.Args["orderby"].(string); ok && orderby != "" {
		args.Pagination = append(args.Pagination, db2graphql.Directive{Op: "orderby", Value: orderby})
	}

	if debug, ok := p.Args["_debug"].(bool); ok {
		args.Debug = debug
	}
	if useCache, ok := p.Args["_cache"].(bool); ok {
		args.SkipCache = !useCache
	}

	return args, nil
}

func parseFilter(raw string) ([]db2graphql.Condition, error) {
	var triples [][]any
	if err := json.Unmarshal([]byte(raw), &triples); err != nil {
		return nil, err
	}

	conditions := make([]db2graphql.Condition, 0, len(triples))
	for _, t := range triples {
		if len(t) != 3 {
			return nil, fmt.Errorf("condition must be an [operator, column, value] triple, got %v", t)
		}
		op, okOp := t[0].(string)
		column, okCol := t[1].(string)
		if !okOp || !okCol {
			return nil, fmt.Errorf("operator and column must be strings, got %v", t)
		}
		conditions = append(conditions, db2graphql.Condition{Op: op, Column: column, Value: t[2]})
	}
	return conditions, nil
}

// exportedName converts a snake_case table name into the CamelCase GraphQL
// type suffix ("order_items" -> "OrderItems").
func exportedName(table string) string {
	parts := strings.Split(table, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "")
}
