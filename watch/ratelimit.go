package watch

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/rentwatch"
	"golang.org/x/time/rate"
)

var _ rentwatch.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter allows at most rps requests per second to each host, with
// a burst of one. Host names are compared case-insensitively and without
// a port, so both wg-gesucht sources share one budget.
type DomainLimiter struct {
	limit rate.Limit

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter returns a DomainLimiter. A non-positive rps disables
// pacing.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{limit: limit, hosts: make(map[string]*rate.Limiter)}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiter(hostKey(domain)).Wait(ctx)
}

// Hosts returns the number of hosts seen so far.
func (d *DomainLimiter) Hosts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.hosts)
}

func (d *DomainLimiter) limiter(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.hosts[host] = l
	}
	return l
}

func hostKey(domain string) string {
	host := strings.ToLower(domain)
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return host
}
