// Package logging keeps secrets and user-identifying paths out of
// structured log output. Launch arguments are user-authored and may carry
// credentials (for example --token=... passed to the debuggee), so they
// are sanitized before logging.
package logging

import (
	"os"
	"regexp"
	"strings"
)

const redactionPlaceholder = "***"

// SanitizeArgs returns a sanitized string representation of the provided
// argument list. Sensitive tokens (passwords, tokens, secrets) are
// redacted while leaving the overall structure intact.
func SanitizeArgs(args []string) string {
	if len(args) == 0 {
		return ""
	}

	sanitized := make([]string, 0, len(args))
	redactNext := false

	for _, arg := range args {
		if redactNext {
			sanitized = append(sanitized, redactionPlaceholder)
			redactNext = false
			continue
		}

		if eq := strings.Index(arg, "="); eq > 0 {
			flag := arg[:eq]
			if isSensitiveKey(flag) {
				sanitized = append(sanitized, flag+"="+redactionPlaceholder)
				continue
			}
			sanitized = append(sanitized, arg)
			continue
		}

		if isSensitiveKey(arg) {
			sanitized = append(sanitized, arg)
			redactNext = true
			continue
		}

		sanitized = append(sanitized, arg)
	}

	if redactNext {
		sanitized = append(sanitized, redactionPlaceholder)
	}

	return strings.Join(sanitized, " ")
}

var sensitivePattern = regexp.MustCompile(`(?i)(password|passphrase|secret|token|apikey|privatekey)=([^\s]{1,128})`)

// SanitizeText redacts sensitive key/value pairs inside freeform strings.
func SanitizeText(text string) string {
	if text == "" {
		return ""
	}
	return sensitivePattern.ReplaceAllStringFunc(text, func(match string) string {
		parts := strings.SplitN(match, "=", 2)
		if len(parts) != 2 {
			return match
		}
		return parts[0] + "=" + redactionPlaceholder
	})
}

// SanitizePath replaces the user's home directory prefix with "~" so
// logs shared in bug reports do not leak usernames.
func SanitizePath(path string) string {
	if path == "" {
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(os.PathSeparator)) {
		return "~" + path[len(home):]
	}
	return path
}

func isSensitiveKey(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "password") ||
		strings.Contains(lower, "passphrase") ||
		strings.Contains(lower, "secret") ||
		strings.Contains(lower, "token") ||
		strings.Contains(lower, "apikey") ||
		strings.Contains(lower, "privatekey")
}
