package validation

import "strings"

// defaultDomainTypos maps common misspellings of popular mail domains to
// their canonical form. Corrections are informational: they never make a
// record invalid on their own.
var defaultDomainTypos = map[string]string{
	"gmai.com":    "gmail.com",
	"gmial.com":   "gmail.com",
	"gmail.co":    "gmail.com",
	"hotmial.com": "hotmail.com",
	"hotmai.com":  "hotmail.com",
	"yahooo.com":  "yahoo.com",
	"yaho.com":    "yahoo.com",
	"outlok.com":  "outlook.com",
	"outloo.com":  "outlook.com",
}

// CorrectDomainTypos looks up everything after the first "@" in the typo
// table and rewrites the domain to its canonical form on a hit. Emails
// without an "@" (or whose post-@ remainder is not in the table, including
// multi-@ strings) pass through unchanged.
func CorrectDomainTypos(email string, typos map[string]string) (string, bool) {
	at := strings.Index(email, "@")
	if at < 0 {
		return email, false
	}

	domain := email[at+1:]
	canonical, ok := typos[domain]
	if !ok {
		return email, false
	}

	return email[:at] + "@" + canonical, true
}
