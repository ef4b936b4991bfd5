package validator

import (
	"context"
	"errors"
	"net"
	"time"
)

// DefaultLookupTimeout bounds a single MX lookup so an unresponsive resolver
// cannot hang a validation call.
const DefaultLookupTimeout = 5 * time.Second

// MXResolver reports whether a domain has at least one mail-exchange record.
// The boolean answers "found"; an error means the lookup itself failed.
type MXResolver interface {
	LookupMX(ctx context.Context, domain string) (bool, error)
}

// NewNetMXResolver returns an MXResolver backed by the system resolver with a
// per-call timeout. A non-positive timeout falls back to DefaultLookupTimeout.
func NewNetMXResolver(timeout time.Duration) MXResolver {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return &netMXResolver{resolver: net.DefaultResolver, timeout: timeout}
}

type netMXResolver struct {
	resolver *net.Resolver
	timeout  time.Duration
}

func (r *netMXResolver) LookupMX(ctx context.Context, domain string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	records, err := r.resolver.LookupMX(ctx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return false, nil
		}
		return false, err
	}
	return len(records) > 0, nil
}

// MXResolverFunc adapts a function to the MXResolver interface.
type MXResolverFunc func(ctx context.Context, domain string) (bool, error)

func (f MXResolverFunc) LookupMX(ctx context.Context, domain string) (bool, error) {
	return f(ctx, domain)
}
