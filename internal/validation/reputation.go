package validation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/ignite/list-validator/internal/contacts"
)

// defaultDisposableDomains are well-known throwaway email providers.
var defaultDisposableDomains = map[string]struct{}{
	"10minutemail.com":   {},
	"tempmail.org":       {},
	"guerrillamail.com":  {},
	"mailinator.com":     {},
	"yopmail.com":        {},
	"temp-mail.org":      {},
	"throwaway.email":    {},
	"fakeinbox.com":      {},
	"maildrop.cc":        {},
	"sharklasers.com":    {},
	"guerrillamail.info": {},
	"grr.la":             {},
}

// IsDisposableDomain reports whether the email's domain belongs to a
// disposable email service.
func IsDisposableDomain(email string, disposable map[string]struct{}) bool {
	domain := contacts.Domain(email)
	if domain == "" {
		return false
	}
	_, ok := disposable[domain]
	return ok
}

// MXLookup is the DNS collaborator the MX check delegates to.
type MXLookup interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

// Resolver wraps net.Resolver with a bounded per-lookup timeout.
type Resolver struct {
	resolver *net.Resolver
	timeout  time.Duration
}

// NewResolver returns an MXLookup backed by the system resolver. A zero
// timeout falls back to 5 seconds.
func NewResolver(timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Resolver{resolver: &net.Resolver{}, timeout: timeout}
}

func (r *Resolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.resolver.LookupMX(ctx, domain)
}

// CheckMX asks the collaborator for the domain's mail-exchange records.
// Lookup failures are never fatal; they come back as a failed outcome with
// a reason the caller attaches to the record.
func CheckMX(ctx context.Context, lookup MXLookup, domain string) (bool, string) {
	records, err := lookup.LookupMX(ctx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return false, "Domain does not exist"
		}
		return false, fmt.Sprintf("DNS lookup error: %v", err)
	}

	if len(records) == 0 {
		return false, "No MX records for domain"
	}

	return true, fmt.Sprintf("Valid MX records: %d found", len(records))
}
