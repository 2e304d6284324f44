package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/list-validator/internal/validation"
)

func sampleStats() *validation.RunStatistics {
	return &validation.RunStatistics{
		RunID:             uuid.New(),
		TotalContacts:     1200,
		ValidContacts:     1000,
		InvalidContacts:   150,
		DuplicatesRemoved: 50,
		ErrorCounts: map[string]int{
			"Email format":             80,
			"Disposable email address": 40,
			"Missing required fields":  40,
			"Domain validation":        10,
		},
		DomainStats: map[string]*validation.DomainStat{
			"gmail.com": {Count: 600, Valid: true},
			"gone.com":  {Count: 30, Valid: false},
		},
		Duration: 2500 * time.Millisecond,
	}
}

func TestRenderSections(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.Render(sampleStats())
	require.NoError(t, err)

	assert.Contains(t, out, "CONTACT LIST VALIDATION REPORT")
	assert.Contains(t, out, "Validation time: 2.50 seconds")
	assert.Contains(t, out, "Total contacts processed: 1,200")
	assert.Contains(t, out, "Valid contacts: 1,000")
	assert.Contains(t, out, "Invalid contacts: 150")
	assert.Contains(t, out, "Duplicates removed: 50")
	assert.Contains(t, out, "Validation rate: 83.3%")

	assert.Contains(t, out, "ERROR BREAKDOWN")
	assert.Contains(t, out, "Email format: 80 contacts")

	assert.Contains(t, out, "TOP DOMAINS")
	assert.Contains(t, out, "✓ gmail.com: 600 contacts")
	assert.Contains(t, out, "✗ gone.com: 30 contacts")

	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "• Remove invalid contacts before sending emails")
	assert.Contains(t, out, "• Implement deduplication in your data collection process")
	assert.Contains(t, out, "• High invalid contact rate - review data collection quality")
	assert.Contains(t, out, "• Consider blocking disposable email services")
	assert.Contains(t, out, "• Some domains have DNS issues - double-check before removing")
}

func TestRenderErrorBreakdownOrder(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.Render(sampleStats())
	require.NoError(t, err)

	// Highest count first; equal counts alphabetical.
	first := strings.Index(out, "Email format: 80")
	second := strings.Index(out, "Disposable email address: 40")
	third := strings.Index(out, "Missing required fields: 40")
	fourth := strings.Index(out, "Domain validation: 10")
	require.True(t, first >= 0 && second >= 0 && third >= 0 && fourth >= 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
	assert.Less(t, third, fourth)
}

func TestRenderEmptyRun(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	stats := &validation.RunStatistics{RunID: uuid.New()}
	out, err := r.Render(stats)
	require.NoError(t, err)

	assert.Contains(t, out, "Total contacts processed: 0")
	assert.Contains(t, out, "Validation rate: 0.0%")
	assert.NotContains(t, out, "ERROR BREAKDOWN")
	assert.NotContains(t, out, "TOP DOMAINS")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.NotContains(t, out, "•")
}

func TestRenderTopDomainsLimit(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	stats := &validation.RunStatistics{
		RunID:       uuid.New(),
		DomainStats: map[string]*validation.DomainStat{},
	}
	for i := 0; i < 15; i++ {
		stats.DomainStats[string(rune('a'+i))+".com"] = &validation.DomainStat{Count: i + 1, Valid: true}
	}

	out, err := r.Render(stats)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ o.com: 15 contacts")
	assert.NotContains(t, out, "e.com")
}

func TestRenderRepeatable(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	stats := sampleStats()
	first, err := r.Render(stats)
	require.NoError(t, err)
	second, err := r.Render(stats)
	require.NoError(t, err)

	// Timestamps aside, repeated renders of the same stats agree.
	assert.Equal(t, len(first), len(second))
}

func TestSaveWritesFile(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := r.Save(dir, sampleStats())
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "validation_report_"))
	assert.True(t, strings.HasSuffix(path, ".txt"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "CONTACT LIST VALIDATION REPORT")
}

func TestComma(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Comma(tt.in))
	}
}
