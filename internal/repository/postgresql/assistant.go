package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/assistant"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/database"
)

const assistantStatementTimeout = "10s"

// Tables the assistant may describe to the model. Credentials are left out.
var assistantTables = []string{"employee", "attendance", "leave_requests"}

type assistantQueryRunner struct {
	db database.Pool
	tx *TxManager
}

// NewAssistantQueryRunner runs assistant queries in read-only transactions.
func NewAssistantQueryRunner(db database.Pool) assistant.QueryRunner {
	return &assistantQueryRunner{db: db, tx: NewTxManager(db)}
}

func (a *assistantQueryRunner) Dialect() string {
	return "PostgreSQL"
}

// TableInfo implements assistant.QueryRunner.
func (a *assistantQueryRunner) TableInfo(ctx context.Context) (string, error) {
	query := `
		SELECT table_name, column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = ANY($1)
		ORDER BY table_name, ordinal_position
	`
	rows, err := a.db.Query(ctx, query, assistantTables)
	if err != nil {
		return "", fmt.Errorf("failed to read table info: %w", err)
	}
	defer rows.Close()

	var (
		b       strings.Builder
		current string
	)
	for rows.Next() {
		var table, column, dataType, nullable string
		if err := rows.Scan(&table, &column, &dataType, &nullable); err != nil {
			return "", fmt.Errorf("failed to scan table info: %w", err)
		}
		if table != current {
			if current != "" {
				b.WriteString("\n);\n\n")
			}
			fmt.Fprintf(&b, "CREATE TABLE %s (", table)
			current = table
		} else {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "\n\t%s %s", column, strings.ToUpper(dataType))
		if nullable == "NO" {
			b.WriteString(" NOT NULL")
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to read table info: %w", err)
	}
	if current != "" {
		b.WriteString("\n);")
	}
	return b.String(), nil
}

// Run implements assistant.QueryRunner.
func (a *assistantQueryRunner) Run(ctx context.Context, query string) (string, error) {
	var result string
	err := a.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		q := GetQuerier(ctx, a.db)
		if _, err := q.Exec(ctx, "SET LOCAL statement_timeout = '"+assistantStatementTimeout+"'"); err != nil {
			return fmt.Errorf("failed to set statement timeout: %w", err)
		}

		rows, err := q.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		var values [][]any
		for rows.Next() {
			row, err := rows.Values()
			if err != nil {
				return err
			}
			values = append(values, row)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		result = assistant.FormatResult(values)
		return nil
	})
	return result, err
}
