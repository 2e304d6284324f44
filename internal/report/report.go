// Package report renders the end-of-run validation report as plain text
// using the Liquid template language.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osteele/liquid"

	"github.com/ignite/list-validator/internal/pkg/logger"
	"github.com/ignite/list-validator/internal/validation"
)

// topDomainLimit caps the TOP DOMAINS section.
const topDomainLimit = 10

const reportTemplate = `============================================================
CONTACT LIST VALIDATION REPORT
============================================================
Generated: {{ generated }}
Validation time: {{ duration_seconds | seconds }} seconds

SUMMARY STATISTICS
------------------------------
Total contacts processed: {{ total | number_with_delimiter }}
Valid contacts: {{ valid | number_with_delimiter }}
Invalid contacts: {{ invalid | number_with_delimiter }}
Duplicates removed: {{ duplicates | number_with_delimiter }}
Validation rate: {{ rate | percentage }}
{% if has_errors %}
ERROR BREAKDOWN
------------------------------
{{ error_lines | join: "\n" }}
{% endif %}{% if has_domains %}
TOP DOMAINS
------------------------------
{{ domain_lines | join: "\n" }}
{% endif %}
RECOMMENDATIONS
------------------------------
{% if has_recommendations %}{{ recommendations | join: "\n" }}
{% endif %}
============================================================`

// Renderer turns run statistics into the text report. The template is
// compiled once at construction.
type Renderer struct {
	engine *liquid.Engine
	tpl    *liquid.Template
}

// NewRenderer creates a Renderer with the report filters registered.
func NewRenderer() (*Renderer, error) {
	engine := liquid.NewEngine()

	// Thousand separators: {{ count | number_with_delimiter }}
	engine.RegisterFilter("number_with_delimiter", func(value interface{}) string {
		switch v := value.(type) {
		case int:
			return Comma(v)
		case int64:
			return Comma(int(v))
		default:
			return fmt.Sprintf("%v", value)
		}
	})

	// Percentage: {{ rate | percentage }}
	engine.RegisterFilter("percentage", func(value interface{}) string {
		switch v := value.(type) {
		case float64:
			return fmt.Sprintf("%.1f%%", v)
		case int:
			return fmt.Sprintf("%.1f%%", float64(v))
		default:
			return fmt.Sprintf("%v", value)
		}
	})

	// Seconds with two decimals: {{ duration_seconds | seconds }}
	engine.RegisterFilter("seconds", func(value interface{}) string {
		switch v := value.(type) {
		case float64:
			return fmt.Sprintf("%.2f", v)
		default:
			return fmt.Sprintf("%v", value)
		}
	})

	tpl, err := engine.ParseString(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}

	return &Renderer{engine: engine, tpl: tpl}, nil
}

// Render produces the full report text for one run.
func (r *Renderer) Render(stats *validation.RunStatistics) (string, error) {
	ctx := map[string]interface{}{
		"generated":        time.Now().Format("2006-01-02 15:04:05"),
		"duration_seconds": stats.Duration.Seconds(),
		"total":            stats.TotalContacts,
		"valid":            stats.ValidContacts,
		"invalid":          stats.InvalidContacts,
		"duplicates":       stats.DuplicatesRemoved,
		"rate":             stats.ValidationRate(),
	}

	errorLines := errorBreakdown(stats.ErrorCounts)
	ctx["has_errors"] = len(errorLines) > 0
	ctx["error_lines"] = errorLines

	domainLines := topDomains(stats.DomainStats)
	ctx["has_domains"] = len(domainLines) > 0
	ctx["domain_lines"] = domainLines

	recs := recommendations(stats)
	ctx["has_recommendations"] = len(recs) > 0
	ctx["recommendations"] = recs

	out, err := r.tpl.RenderString(ctx)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}

// Save renders the report and writes it to dir as
// validation_report_<timestamp>.txt, returning the path written.
func (r *Renderer) Save(dir string, stats *validation.RunStatistics) (string, error) {
	content, err := r.Render(stats)
	if err != nil {
		return "", err
	}

	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating report directory: %w", err)
		}
	}

	name := fmt.Sprintf("validation_report_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	logger.Info("report saved", "path", path, "run_id", stats.RunID)
	return path, nil
}

// errorBreakdown returns one line per error category, highest count first,
// ties broken alphabetically.
func errorBreakdown(counts map[string]int) []string {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s: %s contacts", e.name, Comma(e.count))
	}
	return lines
}

// topDomains returns the ten most frequent domains, each prefixed with a
// check mark when its last MX lookup succeeded.
func topDomains(stats map[string]*validation.DomainStat) []string {
	type entry struct {
		domain string
		stat   *validation.DomainStat
	}
	entries := make([]entry, 0, len(stats))
	for domain, stat := range stats {
		entries = append(entries, entry{domain, stat})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].stat.Count != entries[j].stat.Count {
			return entries[i].stat.Count > entries[j].stat.Count
		}
		return entries[i].domain < entries[j].domain
	})
	if len(entries) > topDomainLimit {
		entries = entries[:topDomainLimit]
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		marker := "✓"
		if !e.stat.Valid {
			marker = "✗"
		}
		lines[i] = fmt.Sprintf("%s %s: %s contacts", marker, e.domain, Comma(e.stat.Count))
	}
	return lines
}

// recommendations derives the action items from the run outcome.
func recommendations(stats *validation.RunStatistics) []string {
	var recs []string

	if stats.InvalidContacts > 0 {
		recs = append(recs, "• Remove invalid contacts before sending emails")
	}
	if stats.DuplicatesRemoved > 0 {
		recs = append(recs, "• Implement deduplication in your data collection process")
	}
	if stats.InvalidRate() > 10 {
		recs = append(recs, "• High invalid contact rate - review data collection quality")
	}
	if hasCategory(stats.ErrorCounts, "Disposable email") {
		recs = append(recs, "• Consider blocking disposable email services")
	}
	if hasCategory(stats.ErrorCounts, "Domain validation") {
		recs = append(recs, "• Some domains have DNS issues - double-check before removing")
	}

	return recs
}

func hasCategory(counts map[string]int, substr string) bool {
	for name := range counts {
		if strings.Contains(name, substr) {
			return true
		}
	}
	return false
}

// Comma formats n with thousand separators.
func Comma(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(c)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
