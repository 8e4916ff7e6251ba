package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/assistant"
)

var (
	fencePattern     = regexp.MustCompile("```sql\\w*\\n?")
	barFencePattern  = regexp.MustCompile("```\\n?")
	prefixPattern    = regexp.MustCompile(`(?i)^SQLQuery:\s*`)
	leadingNoise     = regexp.MustCompile(`^(\s|\(|--[^\n]*\n|/\*.*?\*/)+`)
	quotedLiteral    = regexp.MustCompile(`'(?:[^']|'')*'|"(?:[^"]|"")*"`)
	readOnlyKeywords = []string{"select", "with"}
)

var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`;.*drop\s+table`),
	regexp.MustCompile(`;.*delete\s+from`),
	regexp.MustCompile(`;.*truncate`),
	regexp.MustCompile(`;.*alter\s+table`),
	regexp.MustCompile(`--.*drop`),
	regexp.MustCompile(`/\*.*drop.*\*/`),
}

// CleanSQL strips markdown fences and an "SQLQuery:" prefix from model output
// and leaves exactly one trailing semicolon.
func CleanSQL(raw string) string {
	q := fencePattern.ReplaceAllString(raw, "")
	q = barFencePattern.ReplaceAllString(q, "")
	q = strings.TrimSpace(q)
	q = prefixPattern.ReplaceAllString(q, "")
	return strings.TrimRight(q, ";") + ";"
}

// ValidateSQL rejects known destructive patterns and anything that is not a
// single SELECT or WITH statement.
func ValidateSQL(query string) error {
	lower := strings.ToLower(query)
	for _, p := range dangerousPatterns {
		if p.MatchString(lower) {
			return fmt.Errorf("%w: %s", assistant.ErrUnsafeQuery, p.String())
		}
	}

	body := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(lower), ";"))
	// Semicolons inside string literals and quoted identifiers do not end a statement.
	if strings.Contains(quotedLiteral.ReplaceAllString(body, "''"), ";") {
		return fmt.Errorf("%w: multiple statements", assistant.ErrUnsafeQuery)
	}

	body = leadingNoise.ReplaceAllString(body, "")
	for _, kw := range readOnlyKeywords {
		if strings.HasPrefix(body, kw) && (len(body) == len(kw) || !isWordByte(body[len(kw)])) {
			return nil
		}
	}
	return assistant.ErrNotReadOnlyQuery
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
