package postgresql

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pgxmockReadOnly = pgx.TxOptions{AccessMode: pgx.ReadOnly}

func TestAssistantQueryRunner_Run(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	runner := NewAssistantQueryRunner(mock)
	query := "SELECT first_name, emp_leave_balance FROM employee LIMIT 5;"

	mock.ExpectBeginTx(pgxmockReadOnly)
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL statement_timeout = '10s'")).
		WillReturnResult(pgxmock.NewResult("SET", 0))
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(pgxmock.NewRows([]string{"first_name", "emp_leave_balance"}).
			AddRow("John", int64(3)).
			AddRow("Jane", int64(5)))
	mock.ExpectCommit()

	result, err := runner.Run(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, "[('John', 3), ('Jane', 5)]", result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssistantQueryRunner_RunEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	runner := NewAssistantQueryRunner(mock)

	mock.ExpectBeginTx(pgxmockReadOnly)
	mock.ExpectExec("SET LOCAL statement_timeout").WillReturnResult(pgxmock.NewResult("SET", 0))
	mock.ExpectQuery("SELECT").WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	result, err := runner.Run(context.Background(), "SELECT id FROM employee WHERE FALSE;")
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssistantQueryRunner_RunRollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	runner := NewAssistantQueryRunner(mock)
	queryErr := errors.New(`column "salary" does not exist`)

	mock.ExpectBeginTx(pgxmockReadOnly)
	mock.ExpectExec("SET LOCAL statement_timeout").WillReturnResult(pgxmock.NewResult("SET", 0))
	mock.ExpectQuery("SELECT salary").WillReturnError(queryErr)
	mock.ExpectRollback()

	_, err = runner.Run(context.Background(), "SELECT salary FROM employee;")
	assert.ErrorIs(t, err, queryErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssistantQueryRunner_TableInfo(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	runner := NewAssistantQueryRunner(mock)

	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs(assistantTables).
		WillReturnRows(pgxmock.NewRows([]string{"table_name", "column_name", "data_type", "is_nullable"}).
			AddRow("attendance", "id", "integer", "NO").
			AddRow("attendance", "date", "date", "YES").
			AddRow("employee", "id", "integer", "NO"))

	info, err := runner.TableInfo(context.Background())
	require.NoError(t, err)
	want := "CREATE TABLE attendance (\n\tid INTEGER NOT NULL,\n\tdate DATE\n);\n\n" +
		"CREATE TABLE employee (\n\tid INTEGER NOT NULL\n);"
	assert.Equal(t, want, info)
	assert.Equal(t, "PostgreSQL", runner.Dialect())
	assert.NoError(t, mock.ExpectationsWereMet())
}
