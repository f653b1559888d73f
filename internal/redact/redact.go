// Package redact scrubs credentials and internal details from strings before
// they are logged or returned to clients. Error messages from the database
// driver and the language-model client can carry connection strings, API keys
// and SQL text; everything leaving the process through a log line or an HTTP
// error body goes through String or Error first.
package redact

import (
	"log/slog"
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	JWTPlaceholder        = "[REDACTED_JWT]"
	PathPlaceholder       = "[REDACTED_PATH]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	StackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order; earlier rules see the original text.
var rules = []rule{
	{
		// key=value style secrets keep their key for context.
		pattern:     regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password|passwd|pwd)(\s*[=:]\s*)['"]?[^'"&\s,]{3,}['"]?`),
		replacement: "${1}${2}" + Placeholder,
	},
	{
		pattern:     regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
		replacement: KeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: JWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._~+/-]+=*`),
		replacement: "Bearer " + Placeholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|pgx|mysql)://[^@\s/]+@`),
		replacement: "${1}://" + CredentialPlaceholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`goroutine \d+ \[[^\]]*\]:[\s\S]*`),
		replacement: StackPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b(?:SELECT\s[^;\n]*?\sFROM|INSERT\s+INTO|UPDATE\s+\w+\s+SET|DELETE\s+FROM)\b[^;\n]*`),
		replacement: SQLPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		replacement: EmailPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?:/[\w.-]+){2,}`),
		replacement: PathPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(?:\\[^\\\s]+)+`),
		replacement: PathPlaceholder,
	},
}

// String returns input with sensitive fragments replaced by placeholders.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// ErrorAttr is a log attribute carrying the redacted error text.
func ErrorAttr(err error) slog.Attr {
	return slog.String("error", Error(err))
}
