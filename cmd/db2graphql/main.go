package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/spf13/cobra"

	"github.com/Duck441/db2graphql"
	"github.com/Duck441/db2graphql/internal/gql"
)

var (
	dbURL      string
	schemaName string
	exclude    string
	listenAddr string
)

var rootCmd = &cobra.Command{
	Use:   "db2graphql",
	Short: "Expose a PostgreSQL schema through a generated GraphQL API",
	Long:  `db2graphql introspects a PostgreSQL schema into a relational model and serves generated page, first-of and upsert operations for every table.`,
}

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Print the introspected relational model as JSON",
	RunE:  runIntrospect,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated GraphQL API over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVarP(&schemaName, "schema", "s", "public", "Database schema name")
	rootCmd.PersistentFlags().StringVarP(&exclude, "exclude", "e", "", "Tables to exclude (comma-separated)")
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", ":8080", "HTTP listen address")
	rootCmd.AddCommand(introspectCmd, serveCmd)
}

// parseExclude splits the comma-separated exclude flag. Excluded tables must
// not be referenced by included ones or the build fails.
func parseExclude(flag string) []string {
	if flag == "" {
		return nil
	}
	parts := strings.Split(flag, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func buildAdapter(ctx context.Context) (*db2graphql.Adapter, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("--db-url must be specified")
	}

	adapter, err := db2graphql.Connect(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if _, err := adapter.GetSchema(ctx, schemaName, parseExclude(exclude)); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to build relational model: %w", err)
	}
	return adapter, nil
}

func runIntrospect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	adapter, err := buildAdapter(ctx)
	if err != nil {
		return err
	}
	defer adapter.Close()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(adapter.Schema()); err != nil {
		return fmt.Errorf("failed to encode relational model: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	adapter, err := buildAdapter(ctx)
	if err != nil {
		return err
	}
	defer adapter.Close()

	gqlSchema, err := gql.New(adapter).BuildSchema()
	if err != nil {
		return fmt.Errorf("failed to build GraphQL schema: %w", err)
	}

	http.Handle("/graphql", graphqlHandler(gqlSchema))
	slog.Info("listening", "addr", listenAddr)
	return http.ListenAndServe(listenAddr, nil)
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// graphqlHandler executes POSTed GraphQL requests against the generated
// schema.
func graphqlHandler(schema graphql.Schema) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
