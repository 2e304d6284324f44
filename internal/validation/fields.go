package validation

import (
	"strings"

	"github.com/ignite/list-validator/internal/contacts"
)

// DefaultRequiredFields are the fields every contact must carry to be mailable.
var DefaultRequiredFields = []string{"email", "first_name"}

// CheckRequiredFields reports whether every required field is present and
// non-blank on the record, and returns the names of those that are not.
func CheckRequiredFields(rec *contacts.Record, required []string) (bool, []string) {
	var missing []string
	for _, name := range required {
		if strings.TrimSpace(rec.Get(name)) == "" {
			missing = append(missing, name)
		}
	}
	return len(missing) == 0, missing
}
