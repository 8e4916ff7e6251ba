package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/assistant"
	_ "github.com/mattn/go-sqlite3"
)

// Open opens the SQLite copy of the HR database read-only.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}

type queryRunner struct {
	db *sql.DB
}

func NewAssistantQueryRunner(db *sql.DB) assistant.QueryRunner {
	return &queryRunner{db: db}
}

func (q *queryRunner) Dialect() string {
	return "SQLite"
}

// TableInfo implements assistant.QueryRunner.
func (q *queryRunner) TableInfo(ctx context.Context) (string, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT sql FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name NOT IN ('auth', 'schema_migrations')
		ORDER BY name
	`)
	if err != nil {
		return "", fmt.Errorf("failed to read table info: %w", err)
	}
	defer rows.Close()

	var statements []string
	for rows.Next() {
		var stmt sql.NullString
		if err := rows.Scan(&stmt); err != nil {
			return "", fmt.Errorf("failed to scan table info: %w", err)
		}
		if stmt.Valid {
			statements = append(statements, strings.TrimSpace(stmt.String)+";")
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to read table info: %w", err)
	}
	return strings.Join(statements, "\n\n"), nil
}

// Run implements assistant.QueryRunner.
func (q *queryRunner) Run(ctx context.Context, query string) (string, error) {
	tx, err := q.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return "", err
	}

	var values [][]any
	for rows.Next() {
		row := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return "", err
		}
		values = append(values, row)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	return assistant.FormatResult(values), nil
}
