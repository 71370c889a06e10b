package sharedtypes

import (
	"regexp"
	"strings"
)

var usernameRE = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidUsername reports whether s is 3-30 chars of alphanumerics, underscores
// and hyphens.
func ValidUsername(s string) bool {
	return len(s) >= 3 && len(s) <= 30 && usernameRE.MatchString(s)
}

// ValidEmail is a shallow shape check; deliverability is not our problem.
func ValidEmail(s string) bool {
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(s, " \t")
}
