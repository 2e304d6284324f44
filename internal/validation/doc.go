// Package validation implements the contact-list check pipeline: duplicate
// elimination, required-field and email-format checks, domain typo
// correction, disposable-domain and MX reputation checks, data-quality
// heuristics, and the classifier that partitions records into valid and
// invalid while aggregating run statistics.
//
// Two policies coexist on purpose: the format check fails fast and reports
// exactly one reason, while the quality heuristics accumulate every
// triggered issue.
package validation
