package util

import (
	"fmt"
	"regexp"
)

// validNameChars matches only alphanumeric characters, hyphens, and periods.
var validNameChars = regexp.MustCompile(`^[a-zA-Z0-9.\-]+$`)

// ValidateNodeName checks that a node name is usable as a hostname, which
// the provider configures on the server at build time:
//   - 2 to 63 characters
//   - only a-z, A-Z, 0-9, hyphens and periods
//   - starts with an alphanumeric character
//   - does not end with a hyphen or period
func ValidateNodeName(name string) error {
	if len(name) < 2 || len(name) > 63 {
		return fmt.Errorf("node name must be 2 to 63 characters, got %d", len(name))
	}
	if !validNameChars.MatchString(name) {
		return fmt.Errorf("node name %q contains invalid characters (only a-z, A-Z, 0-9, hyphens, and periods are allowed)", name)
	}
	if !isAlphanumeric(name[0]) {
		return fmt.Errorf("node name must start with an alphanumeric character, got %q", string(name[0]))
	}
	if last := name[len(name)-1]; last == '-' || last == '.' {
		return fmt.Errorf("node name must not end with a hyphen or period, got %q", string(last))
	}
	return nil
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
