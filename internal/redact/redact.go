// Package redact strips connection details, credentials, SQL text, file paths
// and stack traces from error strings before they are written to logs.
//
// Storage errors bubble up from the database driver with the DSN, host and
// statement text embedded; nothing that reaches a log line should carry them.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	HostPlaceholder       = "[REDACTED_HOST]"
	PathPlaceholder       = "[REDACTED_PATH]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	StackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order. Credentials go before hosts so the host rule never sees
// a userinfo section.
var rules = []rule{
	{
		// Everything from a panic or goroutine dump to the end of the message
		pattern:     regexp.MustCompile(`(?:panic:|goroutine \d+ \[)[\s\S]*`),
		replacement: StackPlaceholder,
	},
	{
		// userinfo in connection URLs
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mysql|mongodb(?:\+srv)?)://[^@\s/]+@`),
		replacement: "${1}://" + CredentialPlaceholder + "@",
	},
	{
		// key=value DSN passwords
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*[=:]\s*(?:'[^']*'|"[^"]*"|[^\s&]+)`),
		replacement: "${1}=" + CredentialPlaceholder,
	},
	{
		// statement text; keywords are matched upper-case only so prose such as
		// "failed to update task" is left alone
		pattern:     regexp.MustCompile(`\b(?:SELECT|INSERT INTO|UPDATE|DELETE FROM)\s[^;\n]*`),
		replacement: SQLPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?:/[\w.-]+){2,}`),
		replacement: PathPlaceholder,
	},
	{
		// host:port or ip:port
		pattern:     regexp.MustCompile(`\b(?:[A-Za-z][\w-]*(?:\.[\w-]+)*|\d{1,3}(?:\.\d{1,3}){3}):\d{2,5}\b`),
		replacement: HostPlaceholder,
	},
}

// String redacts sensitive fragments from input.
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

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
