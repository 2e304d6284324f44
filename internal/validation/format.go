package validation

import (
	"net/mail"
	"regexp"
	"strings"
)

// formatRegex is the first structural pass: local part of letters, digits
// and ._%+-, an @, then a dotted domain ending in a 2+ letter TLD.
var formatRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// CheckFormat validates the structure of a normalized email address. Rules
// run in a fixed order and the first violation wins; exactly one reason is
// ever reported. The RFC 5322 parse is a deliberate second structural pass
// on top of the pattern match.
func CheckFormat(email string) (bool, string) {
	if email == "" {
		return false, "Empty or invalid email"
	}

	if !formatRegex.MatchString(email) {
		return false, "Invalid email format"
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return false, "Invalid email format (failed strict parse)"
	}

	if strings.Count(email, "@") != 1 {
		return false, "Multiple @ symbols"
	}

	at := strings.Index(email, "@")
	local, domain := email[:at], email[at+1:]

	if len(local) > 64 {
		return false, "Local part too long"
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return false, "Local part cannot start/end with dot"
	}
	if strings.Contains(local, "..") {
		return false, "Consecutive dots in local part"
	}

	if len(domain) > 253 {
		return false, "Domain too long"
	}
	if strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return false, "Domain cannot start/end with hyphen"
	}

	return true, "Valid format"
}
