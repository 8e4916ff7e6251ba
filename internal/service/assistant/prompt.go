package assistant

import (
	"strings"
	"text/template"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/assistant"
)

const sqlPromptText = `You are an expert SQL assistant for a {{.Dialect}} HR database.

Database Schema:
{{.TableInfo}}

Here are some example questions and their SQL queries:
{{range $i, $e := .Examples}}
Example {{inc $i}}:
Question: {{$e.Question}}
SQLQuery: {{$e.SQLQuery}}
{{end}}
Rules:
1. Generate ONLY raw SQL queries - no markdown, explanations, or code blocks
2. Use {{.Dialect}} syntax
3. Limit results with "LIMIT 5" when appropriate
4. Query only necessary columns
5. Use proper JOINs when accessing multiple tables
6. Handle date comparisons with {{.Dialect}} date functions
7. Be case-sensitive with column names as shown in schema
8. Only read data, never modify it

Question: {{.Question}}
SQLQuery:`

const answerPromptText = `Based on the SQL query results, provide a clear, helpful answer to the user's question.

Question: {{.Question}}
SQL Query: {{.SQL}}
SQL Result: {{.Result}}

Instructions:
- Provide a conversational, natural language response
- If no results were found, explain this clearly
- Include relevant details from the results
- Be concise but informative
- Don't mention the SQL query in your response

Answer:`

var sqlPrompt = template.Must(template.New("sql").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(sqlPromptText))

var answerPrompt = template.Must(template.New("answer").Parse(answerPromptText))

type sqlPromptData struct {
	Dialect   string
	TableInfo string
	Examples  []assistant.Example
	Question  string
}

type answerPromptData struct {
	Question string
	SQL      string
	Result   string
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
