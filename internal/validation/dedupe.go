package validation

import (
	"github.com/ignite/list-validator/internal/contacts"
)

// Deduplicate retains only the first occurrence of each normalized email,
// preserving the relative order of first occurrences. Records without an
// email share the key "" and are deduplicated like any other key: the first
// blank-email record survives, later ones are dropped. That quirk is part of
// the contract: blank emails are caught by the required-field check, not
// here.
func Deduplicate(records []*contacts.Record) ([]*contacts.Record, int) {
	seen := make(map[string]bool, len(records))
	unique := make([]*contacts.Record, 0, len(records))

	for _, rec := range records {
		key := contacts.NormalizeEmail(rec.Email)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, rec)
	}

	return unique, len(records) - len(unique)
}
