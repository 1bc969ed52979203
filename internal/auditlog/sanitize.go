package auditlog

import "strings"

const redacted = "<redacted>"

// sensitiveFlags take a secret or secret-bearing value.
var sensitiveFlags = map[string]struct{}{
	"--key":      {},
	"--password": {},
	"--file":     {},
}

// SanitizeArgs redacts sensitive flag values for audit storage. Both the
// "--flag value" and "--flag=value" forms are handled.
func SanitizeArgs(args []string) []string {
	sanitized := make([]string, 0, len(args))
	skipNext := false

	for _, arg := range args {
		if skipNext {
			sanitized = append(sanitized, redacted)
			skipNext = false
			continue
		}

		if _, ok := sensitiveFlags[arg]; ok {
			sanitized = append(sanitized, arg)
			skipNext = true
			continue
		}

		if key, _, ok := strings.Cut(arg, "="); ok {
			if _, ok := sensitiveFlags[key]; ok {
				sanitized = append(sanitized, key+"="+redacted)
				continue
			}
		}

		sanitized = append(sanitized, arg)
	}

	return sanitized
}
