package validation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/list-validator/internal/contacts"
	"github.com/ignite/list-validator/internal/pkg/logger"
)

// correctionMarker tags informational typo-correction notes. A record whose
// issues all carry this marker is still classified valid.
const correctionMarker = "corrected"

// DomainStat tracks per-domain occurrences and the last known MX validity.
type DomainStat struct {
	Count int
	Valid bool
}

// RunStatistics is the aggregate state of one validation run. Counters only
// ever increase during the run; Duration is set once at completion.
type RunStatistics struct {
	RunID             uuid.UUID
	TotalContacts     int
	ValidContacts     int
	InvalidContacts   int
	DuplicatesRemoved int
	ErrorCounts       map[string]int
	DomainStats       map[string]*DomainStat
	Duration          time.Duration
}

// ValidationRate returns valid/total as a percentage, 0.0 on an empty run.
func (s *RunStatistics) ValidationRate() float64 {
	if s.TotalContacts == 0 {
		return 0.0
	}
	return float64(s.ValidContacts) / float64(s.TotalContacts) * 100
}

// InvalidRate returns invalid/total as a percentage, 0.0 on an empty run.
func (s *RunStatistics) InvalidRate() float64 {
	if s.TotalContacts == 0 {
		return 0.0
	}
	return float64(s.InvalidContacts) / float64(s.TotalContacts) * 100
}

// Result is the outcome of a run: both partitions in input order, plus the
// finalized statistics.
type Result struct {
	Valid   []*contacts.Record
	Invalid []*contacts.Record
	Stats   *RunStatistics
}

// Options configures a Validator.
type Options struct {
	// CheckMX enables the DNS mail-exchange check. Off by default: it costs
	// one network round-trip per unique domain.
	CheckMX bool
	// MX overrides the DNS collaborator; nil selects the system resolver.
	MX MXLookup
	// MXTimeout bounds each DNS lookup. Zero means 5 seconds.
	MXTimeout time.Duration
	// DomainTypos entries are merged over the built-in typo table.
	DomainTypos map[string]string
	// DisposableDomains are added to the built-in disposable set.
	DisposableDomains []string
	// RequiredFields overrides the required contact fields.
	RequiredFields []string
}

// Validator runs the full check pipeline over a contact list and classifies
// every record. Lookup tables are fixed at construction so tests can inject
// alternates.
type Validator struct {
	typos      map[string]string
	disposable map[string]struct{}
	required   []string
	checkMX    bool
	mx         MXLookup
	mxCache    map[string]mxOutcome

	stats *RunStatistics
}

type mxOutcome struct {
	ok  bool
	msg string
}

// New builds a Validator from the given options.
func New(opts Options) *Validator {
	typos := make(map[string]string, len(defaultDomainTypos)+len(opts.DomainTypos))
	for k, v := range defaultDomainTypos {
		typos[k] = v
	}
	for k, v := range opts.DomainTypos {
		typos[strings.ToLower(k)] = strings.ToLower(v)
	}

	disposable := make(map[string]struct{}, len(defaultDisposableDomains)+len(opts.DisposableDomains))
	for d := range defaultDisposableDomains {
		disposable[d] = struct{}{}
	}
	for _, d := range opts.DisposableDomains {
		disposable[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}

	required := opts.RequiredFields
	if len(required) == 0 {
		required = DefaultRequiredFields
	}

	mx := opts.MX
	if mx == nil && opts.CheckMX {
		mx = NewResolver(opts.MXTimeout)
	}

	return &Validator{
		typos:      typos,
		disposable: disposable,
		required:   required,
		checkMX:    opts.CheckMX,
		mx:         mx,
		mxCache:    make(map[string]mxOutcome),
		stats: &RunStatistics{
			RunID:       uuid.New(),
			ErrorCounts: make(map[string]int),
			DomainStats: make(map[string]*DomainStat),
		},
	}
}

// Run deduplicates the input, validates every surviving record and splits
// them into the valid and invalid partitions. Per-record failures never
// abort the run; they become issue strings on the record.
func (v *Validator) Run(ctx context.Context, records []*contacts.Record) *Result {
	start := time.Now()
	v.stats.TotalContacts = len(records)

	unique, removed := Deduplicate(records)
	v.stats.DuplicatesRemoved = removed
	logger.Info("removed duplicate contacts",
		"run_id", v.stats.RunID, "duplicates", removed, "remaining", len(unique))

	result := &Result{Stats: v.stats}

	for i, rec := range unique {
		if i > 0 && i%100 == 0 {
			logger.Info("validation progress", "processed", i, "total", len(unique))
		}

		issues := v.validateRecord(ctx, rec)

		if informationalOnly(issues) {
			v.stats.ValidContacts++
			result.Valid = append(result.Valid, rec)
			continue
		}

		rec.ValidationErrors = issues
		v.stats.InvalidContacts++
		result.Invalid = append(result.Invalid, rec)

		for _, issue := range issues {
			v.stats.ErrorCounts[errorCategory(issue)]++
		}
	}

	v.stats.Duration = time.Since(start)
	logger.Info("validation completed",
		"run_id", v.stats.RunID,
		"valid", v.stats.ValidContacts,
		"invalid", v.stats.InvalidContacts,
		"duration", v.stats.Duration.Round(time.Millisecond))

	return result
}

// validateRecord runs the fixed check order on one record: required fields →
// typo correction → format → disposable → MX (if enabled) → quality. When a
// required field is missing the email checks are skipped; there is nothing
// trustworthy to inspect.
func (v *Validator) validateRecord(ctx context.Context, rec *contacts.Record) []string {
	var issues []string

	ok, missing := CheckRequiredFields(rec, v.required)
	if !ok {
		return append(issues, "Missing required fields: "+strings.Join(missing, ", "))
	}

	email := contacts.NormalizeEmail(rec.Email)

	if corrected, changed := CorrectDomainTypos(email, v.typos); changed {
		rec.Email = corrected
		issues = append(issues, fmt.Sprintf("Domain typo corrected: %s -> %s", email, corrected))
		logger.Warn("domain typo corrected", "from_email", email, "to_email", corrected)
		email = corrected
	}

	formatOK, formatReason := CheckFormat(email)
	if !formatOK {
		issues = append(issues, "Email format: "+formatReason)
	}

	if IsDisposableDomain(email, v.disposable) {
		issues = append(issues, "Disposable email address")
	}

	if v.checkMX && formatOK {
		domain := contacts.Domain(email)
		outcome := v.lookupMX(ctx, domain)
		if !outcome.ok {
			issues = append(issues, "Domain validation: "+outcome.msg)
		}

		stat := v.stats.DomainStats[domain]
		if stat == nil {
			stat = &DomainStat{}
			v.stats.DomainStats[domain] = stat
		}
		stat.Count++
		stat.Valid = outcome.ok
	}

	return append(issues, CheckQuality(rec)...)
}

// lookupMX resolves a domain's MX outcome, hitting DNS at most once per
// domain per run.
func (v *Validator) lookupMX(ctx context.Context, domain string) mxOutcome {
	if outcome, ok := v.mxCache[domain]; ok {
		return outcome
	}

	ok, msg := CheckMX(ctx, v.mx, domain)
	outcome := mxOutcome{ok: ok, msg: msg}
	v.mxCache[domain] = outcome
	return outcome
}

// informationalOnly reports whether the issue list carries nothing but
// typo-correction notes (or is empty), in which case the record is still
// mailable.
func informationalOnly(issues []string) bool {
	for _, issue := range issues {
		if !strings.Contains(issue, correctionMarker) {
			return false
		}
	}
	return true
}

// errorCategory reduces an issue string to its breakdown key: the text
// before the first colon, or the whole string when there is none.
func errorCategory(issue string) string {
	if idx := strings.Index(issue, ":"); idx >= 0 {
		return issue[:idx]
	}
	return issue
}
