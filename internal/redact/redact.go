// Package redact scrubs credentials and personal data from strings before
// they are logged. Errors coming back from the mongo and postgres drivers
// routinely embed connection URIs, and user records carry emails and
// bcrypt hashes; none of that may reach the log stream verbatim.
package redact

import (
	"log/slog"
	"regexp"
)

// Redaction placeholders.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedHashPlaceholder       = "[REDACTED_HASH]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
)

type rule struct {
	re          *regexp.Regexp
	placeholder string
}

// rules run in order; connection URIs go first so the userinfo is gone
// before the email rule could half-match "user:pass@host".
var rules = []rule{
	{
		re:          regexp.MustCompile(`(?i)\b(mongodb(?:\+srv)?|postgres(?:ql)?|mysql|redis)://[^@\s/]+@`),
		placeholder: "$1://" + RedactedCredentialPlaceholder + "@",
	},
	{
		re:          regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`),
		placeholder: RedactedHashPlaceholder,
	},
	{
		re:          regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		placeholder: RedactedJWTPlaceholder,
	},
	{
		re:          regexp.MustCompile(`(?i)\b(password|passwd|pwd)(["']?\s*[=:]\s*["']?)[^"'&\s,}]+`),
		placeholder: "$1$2" + RedactedCredentialPlaceholder,
	},
	{
		re:          regexp.MustCompile(`(?i)\b(jwt_secret|secret|api[_-]?key|token)(["']?\s*[=:]\s*["']?)[A-Za-z0-9_\-.~+/]{8,}`),
		placeholder: "$1$2" + RedactedKeyPlaceholder,
	},
	{
		re:          regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		placeholder: RedactedEmailPlaceholder,
	},
	{
		re: regexp.MustCompile(
			`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\S]*?\b(FROM|INTO|SET)\b[^;]*`,
		),
		placeholder: RedactedSQLPlaceholder,
	},
	{
		re:          regexp.MustCompile(`(?:/[\w.-]+){3,}`),
		placeholder: RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// ErrAttr returns the conventional "error" log attribute with the message
// redacted.
func ErrAttr(err error) slog.Attr {
	return slog.String("error", Error(err))
}
