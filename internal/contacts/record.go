package contacts

import "strings"

// CanonicalField is a normalized field name used across all import sources.
type CanonicalField string

const (
	FieldEmail     CanonicalField = "email"
	FieldFirstName CanonicalField = "first_name"
	FieldCompany   CanonicalField = "company"
)

// columnAliases maps lowercase header names to canonical fields.
// When multiple raw headers mean the same thing, they all map here.
var columnAliases = map[string]CanonicalField{
	// Email
	"email":            FieldEmail,
	"email_address":    FieldEmail,
	"emailaddress":     FieldEmail,
	"e-mail":           FieldEmail,
	"mail":             FieldEmail,
	"subscriber_email": FieldEmail,

	// First name
	"first_name": FieldFirstName,
	"firstname":  FieldFirstName,
	"fname":      FieldFirstName,
	"first":      FieldFirstName,
	"first name": FieldFirstName,
	"given_name": FieldFirstName,

	// Company
	"company":      FieldCompany,
	"company_name": FieldCompany,
	"companyname":  FieldCompany,
	"organization": FieldCompany,
	"org":          FieldCompany,
	"business":     FieldCompany,
}

// Record is one contact row: the canonical fields the pipeline understands
// plus every unmapped column preserved verbatim in Extra. ValidationErrors
// is attached by the classifier when the record lands in the invalid
// partition.
type Record struct {
	Email     string
	FirstName string
	Company   string

	// Anything that doesn't map to a canonical field, keyed by raw header.
	Extra map[string]string

	ValidationErrors []string
}

// Get returns the value of a canonical field by name, falling back to the
// pass-through bag for anything else.
func (r *Record) Get(name string) string {
	switch CanonicalField(name) {
	case FieldEmail:
		return r.Email
	case FieldFirstName:
		return r.FirstName
	case FieldCompany:
		return r.Company
	default:
		return r.Extra[name]
	}
}

// ColumnMapping holds the resolved mapping from CSV column indices to canonical fields.
type ColumnMapping struct {
	EmailIdx int
	FieldMap map[int]CanonicalField // column index -> canonical field
	RawNames []string               // original header names
}

// MapColumns takes a raw CSV header row and returns a resolved mapping.
// A header without a recognizable email column still maps (EmailIdx = -1);
// its records surface later as missing-required-field invalids rather than
// failing the load.
func MapColumns(header []string) *ColumnMapping {
	m := &ColumnMapping{
		EmailIdx: -1,
		FieldMap: make(map[int]CanonicalField, len(header)),
		RawNames: header,
	}

	for i, h := range header {
		normalized := normalizeHeader(h)
		if field, ok := columnAliases[normalized]; ok {
			if _, taken := m.FieldMap[i]; taken {
				continue
			}
			m.FieldMap[i] = field
			if field == FieldEmail && m.EmailIdx < 0 {
				m.EmailIdx = i
			}
		}
	}

	// Fallback: scan for any header containing "email" if no exact match
	if m.EmailIdx < 0 {
		for i, h := range header {
			if strings.Contains(strings.ToLower(h), "email") {
				m.FieldMap[i] = FieldEmail
				m.EmailIdx = i
				break
			}
		}
	}

	return m
}

// NewRecord builds a Record from one CSV row using the resolved mapping.
// All values are whitespace-trimmed; unmapped columns land in Extra.
func NewRecord(row []string, mapping *ColumnMapping) *Record {
	rec := &Record{Extra: make(map[string]string)}

	for i, val := range row {
		val = strings.TrimSpace(val)

		field, mapped := mapping.FieldMap[i]
		if !mapped {
			rawHeader := ""
			if i < len(mapping.RawNames) {
				rawHeader = strings.TrimSpace(mapping.RawNames[i])
			}
			if rawHeader != "" {
				rec.Extra[rawHeader] = val
			}
			continue
		}

		switch field {
		case FieldEmail:
			if rec.Email == "" {
				rec.Email = val
			}
		case FieldFirstName:
			if rec.FirstName == "" {
				rec.FirstName = val
			}
		case FieldCompany:
			if rec.Company == "" {
				rec.Company = val
			}
		}
	}

	return rec
}

// NormalizeEmail lowercases and trims an email for comparison and lookup.
// Stray quoting and angle brackets from exports are stripped as well.
func NormalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	email = strings.Trim(email, "\"'<>")
	return email
}

// Domain returns the part of a normalized email after the first "@", or ""
// when there is none.
func Domain(email string) string {
	at := strings.Index(email, "@")
	if at < 0 || at >= len(email)-1 {
		return ""
	}
	return email[at+1:]
}

func normalizeHeader(header string) string {
	normalized := strings.ToLower(strings.TrimSpace(header))
	normalized = strings.Trim(normalized, "\"'")
	return normalized
}
