package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignite/list-validator/internal/contacts"
)

func rec(email, firstName string) *contacts.Record {
	return &contacts.Record{Email: email, FirstName: firstName, Extra: map[string]string{}}
}

func TestDeduplicate(t *testing.T) {
	input := []*contacts.Record{
		rec("a@b.com", "Ann"),
		rec(" A@B.COM ", "Ann Again"), // same email after normalization
		rec("c@d.com", "Cody"),
		rec("a@b.com", "Ann Thrice"),
	}

	unique, removed := Deduplicate(input)

	assert.Equal(t, 2, removed)
	if assert.Len(t, unique, 2) {
		// First occurrences survive, in original order.
		assert.Equal(t, "Ann", unique[0].FirstName)
		assert.Equal(t, "Cody", unique[1].FirstName)
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	input := []*contacts.Record{
		rec("a@b.com", "Ann"),
		rec("a@b.com", "Ann Again"),
		rec("c@d.com", "Cody"),
	}

	once, removed := Deduplicate(input)
	assert.Equal(t, 1, removed)

	twice, removedAgain := Deduplicate(once)
	assert.Equal(t, 0, removedAgain)
	assert.Equal(t, once, twice)
}

// Blank emails all share the key "": the first blank record is retained and
// later ones are dropped as duplicates. Changing this would silently shift
// counts between duplicates and missing-field invalids.
func TestDeduplicateBlankEmails(t *testing.T) {
	input := []*contacts.Record{
		rec("", "First Blank"),
		rec("a@b.com", "Ann"),
		rec("   ", "Second Blank"),
		rec("", "Third Blank"),
	}

	unique, removed := Deduplicate(input)

	assert.Equal(t, 2, removed)
	if assert.Len(t, unique, 2) {
		assert.Equal(t, "First Blank", unique[0].FirstName)
		assert.Equal(t, "Ann", unique[1].FirstName)
	}
}

func TestDeduplicateEmptyInput(t *testing.T) {
	unique, removed := Deduplicate(nil)
	assert.Empty(t, unique)
	assert.Equal(t, 0, removed)
}
