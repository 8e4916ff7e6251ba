package assistant

import "context"

// QueryRunner executes generated SQL against the HR database.
type QueryRunner interface {
	// Dialect names the SQL flavour for the generation prompt.
	Dialect() string
	// TableInfo describes the queryable tables as CREATE TABLE statements.
	TableInfo(ctx context.Context) (string, error)
	// Run executes a read-only query and returns its rows rendered with
	// FormatResult. An empty result is the empty string.
	Run(ctx context.Context, query string) (string, error)
}
