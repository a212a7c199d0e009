// Package userutil derives per-user names for the IPC endpoint and the
// single-instance lock.
package userutil

import (
	"os"
	"os/user"
	"regexp"
	"strings"
)

var invalidNameRune = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// currentUserFn is a test seam.
var currentUserFn = user.Current

// SanitizeUsername maps value onto [a-zA-Z0-9._-], using "unknown" for
// blank input.
func SanitizeUsername(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return invalidNameRune.ReplaceAllString(value, "_")
}

// CurrentUsername returns the sanitized login name from USERNAME, USER or
// the OS account database, in that order.
func CurrentUsername() string {
	for _, key := range []string{"USERNAME", "USER"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return SanitizeUsername(v)
		}
	}
	if u, err := currentUserFn(); err == nil {
		return SanitizeUsername(u.Username)
	}
	return SanitizeUsername("")
}
