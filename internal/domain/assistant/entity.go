package assistant

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Example is one few-shot sample shown to the model before the question.
type Example struct {
	Question  string `yaml:"question"`
	SQLQuery  string `yaml:"sql_query"`
	SQLResult string `yaml:"sql_result"`
	Answer    string `yaml:"answer"`
}

// Text is the flattened form used for similarity ranking.
func (e Example) Text() string {
	return e.Question + " " + e.SQLQuery + " " + e.SQLResult + " " + e.Answer
}

// FormatResult renders rows as a list of tuples, e.g.
// [('Cristiano', 'Ronaldo', 2025-07-01), ('Jane', 'Smith', 5)].
func FormatResult(rows [][]any) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatValue(v))
		}
		if len(row) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	}
	b.WriteByte(']')
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "\\'") + "'"
	case []byte:
		return formatValue(string(val))
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return "'" + val.Format("2006-01-02") + "'"
		}
		return "'" + val.Format(time.RFC3339) + "'"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case fmt.Stringer:
		return val.String()
	case driver.Valuer:
		inner, err := val.Value()
		if err != nil {
			return fmt.Sprint(v)
		}
		return formatValue(inner)
	default:
		return fmt.Sprint(val)
	}
}
