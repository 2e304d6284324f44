package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ignite/list-validator/internal/contacts"
)

// placeholderPatterns flag addresses that look like seeded test data. The
// first hit wins; scanning stops there.
var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^test@`),
	regexp.MustCompile(`@test\.`),
	regexp.MustCompile(`@example\.`),
	regexp.MustCompile(`placeholder`),
	regexp.MustCompile(`sample`),
	regexp.MustCompile(`^john\.?doe@`),
	regexp.MustCompile(`^jane\.?doe@`),
}

var alphaRegex = regexp.MustCompile(`[a-zA-Z]`)

// CheckQuality runs the data-quality heuristics over a record and returns
// every triggered issue, in order. Unlike the format check this accumulates:
// a record can be flagged for its email, name and company at once.
func CheckQuality(rec *contacts.Record) []string {
	var issues []string

	email := contacts.NormalizeEmail(rec.Email)
	for _, pattern := range placeholderPatterns {
		if pattern.MatchString(email) {
			issues = append(issues, "Appears to be test/placeholder data")
			break
		}
	}

	if firstName := strings.TrimSpace(rec.FirstName); firstName != "" {
		if utf8.RuneCountInString(firstName) < 2 {
			issues = append(issues, "First name too short")
		}
		if !alphaRegex.MatchString(firstName) {
			issues = append(issues, "First name contains no letters")
		}
	}

	if company := strings.TrimSpace(rec.Company); company != "" {
		if utf8.RuneCountInString(company) < 2 {
			issues = append(issues, "Company name too short")
		}
	}

	return issues
}
