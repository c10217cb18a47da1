// Package urlcheck classifies URLs as safe or unsafe before the browser is
// allowed to fetch them, guarding against SSRF: scheme restrictions, domain
// allow/deny lists, dangerous well-known hostnames, and classification of
// every resolved address against private/reserved IP ranges.
package urlcheck

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

// Verdict is the result of checking one URL. It is a pure value, recomputed
// on every check (including once per redirect hop).
type Verdict struct {
	Safe   bool
	Reason string
}

func allow(reason string) Verdict {
	return Verdict{Safe: true, Reason: reason}
}

func deny(format string, args ...interface{}) Verdict {
	return Verdict{Safe: false, Reason: fmt.Sprintf(format, args...)}
}

// Config controls validator behavior.
type Config struct {
	// AllowPrivateNetwork disables the reserved-IP and dangerous-hostname
	// checks. The domain deny-list still applies.
	AllowPrivateNetwork bool

	// AllowedDomains, when non-empty, restricts navigation to matching
	// hostnames. Patterns support glob wildcards (e.g. "*.example.com").
	AllowedDomains []string

	// BlockedDomains rejects matching hostnames. Takes precedence over
	// everything else, including AllowPrivateNetwork.
	BlockedDomains []string
}

// LookupFunc resolves a hostname to all of its addresses (A and AAAA).
type LookupFunc func(ctx context.Context, host string) ([]netip.Addr, error)

// Option customizes a Validator.
type Option func(*Validator)

// WithLookup replaces the DNS resolver. Used by tests to avoid the network.
func WithLookup(fn LookupFunc) Option {
	return func(v *Validator) {
		v.lookup = fn
	}
}

// Validator checks URLs against the configured SSRF policy.
// Safe for concurrent use; all methods are stateless per call.
type Validator struct {
	allowPrivate bool
	allowed      []glob.Glob
	blocked      []glob.Glob
	lookup       LookupFunc
}

// New builds a Validator. Invalid domain patterns are a constructor error.
func New(cfg Config, opts ...Option) (*Validator, error) {
	v := &Validator{
		allowPrivate: cfg.AllowPrivateNetwork,
		lookup:       defaultLookup,
	}

	for _, pattern := range cfg.AllowedDomains {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid allowed domain pattern '%s': %w", pattern, err)
		}
		v.allowed = append(v.allowed, g)
	}

	for _, pattern := range cfg.BlockedDomains {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid blocked domain pattern '%s': %w", pattern, err)
		}
		v.blocked = append(v.blocked, g)
	}

	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// allowedSchemes is the only protocol surface the browser may fetch.
var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
}

// dangerousHostnames are rejected outright unless private-network access is
// enabled: loopback aliases plus cloud-metadata and cluster-internal names.
var dangerousHostnames = map[string]bool{
	"localhost":                            true,
	"localhost.localdomain":                true,
	"ip6-localhost":                        true,
	"ip6-loopback":                         true,
	"metadata.google.internal":             true,
	"metadata.goog":                        true,
	"kubernetes.default":                   true,
	"kubernetes.default.svc":               true,
	"kubernetes.default.svc.cluster.local": true,
}

// dangerousAddrs are cloud metadata endpoints, rejected by literal value so
// the verdict names the metadata service rather than a generic range.
var dangerousAddrs = map[string]bool{
	"169.254.169.254": true, // AWS/GCP/Azure instance metadata
	"169.254.170.2":   true, // AWS ECS task metadata
	"fd00:ec2::254":   true, // AWS EC2 IPv6 metadata
}

var reservedV4 = mustPrefixes(
	"0.0.0.0/8",          // "this" network
	"10.0.0.0/8",         // private use
	"100.64.0.0/10",      // shared address space (CGN)
	"127.0.0.0/8",        // loopback
	"169.254.0.0/16",     // link-local
	"172.16.0.0/12",      // private use
	"192.0.0.0/24",       // IETF protocol assignments
	"192.0.2.0/24",       // TEST-NET-1
	"192.168.0.0/16",     // private use
	"198.51.100.0/24",    // TEST-NET-2
	"203.0.113.0/24",     // TEST-NET-3
	"224.0.0.0/4",        // multicast
	"240.0.0.0/4",        // reserved
	"255.255.255.255/32", // limited broadcast
)

var reservedV6 = mustPrefixes(
	"::1/128",       // loopback
	"::/128",        // unspecified
	"100::/64",      // discard-only
	"2001::/32",     // Teredo
	"2001:db8::/32", // documentation
	"fc00::/7",      // unique local
	"fe80::/10",     // link-local
	"ff00::/8",      // multicast
)

func mustPrefixes(cidrs ...string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(cidrs))
	for _, c := range cidrs {
		prefixes = append(prefixes, netip.MustParsePrefix(c))
	}
	return prefixes
}

// Validate performs the full safety check for one URL, including resolving
// the hostname and classifying every returned address. DNS resolution
// failures are non-fatal: the navigation itself will fail, and blocking here
// would only mask the real error.
func (v *Validator) Validate(ctx context.Context, rawURL string) Verdict {
	hostname, verdict, done := v.checkStatic(rawURL)
	if done {
		return verdict
	}

	if v.allowPrivate {
		return allow("URL accepted (private network access enabled)")
	}

	addrs, err := v.lookup(ctx, hostname)
	if err != nil {
		return allow(fmt.Sprintf("DNS resolution failed for %s; navigation will surface the error", hostname))
	}
	if len(addrs) == 0 {
		return deny("DNS returned no addresses for %s", hostname)
	}

	for _, addr := range addrs {
		if blocked, reason := classifyAddr(addr); blocked {
			return deny("hostname %s resolves to a blocked address: %s", hostname, reason)
		}
	}

	return allow("URL accepted")
}

// Precheck is the synchronous, network-free subset of Validate: every rule
// except hostname resolution. Used as a cheap pre-check where DNS validation
// will happen at navigation time anyway.
func (v *Validator) Precheck(rawURL string) Verdict {
	_, verdict, done := v.checkStatic(rawURL)
	if done {
		return verdict
	}
	return allow("precheck passed; address validation happens at navigation time")
}

// checkStatic runs the rules shared by Validate and Precheck. When done is
// true the verdict is final; otherwise hostname still needs DNS classification.
func (v *Validator) checkStatic(rawURL string) (hostname string, verdict Verdict, done bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", deny("unparseable URL: %v", err), true
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "" {
		return "", deny("URL has no scheme; http:// or https:// is required"), true
	}
	if !allowedSchemes[scheme] {
		return "", deny("scheme %q is not allowed; only http and https", scheme), true
	}

	hostname = strings.ToLower(u.Hostname())
	if hostname == "" {
		return "", deny("URL has no hostname"), true
	}

	// Deny-list wins over everything, including AllowPrivateNetwork.
	if matchAny(v.blocked, hostname) {
		return hostname, deny("hostname %s is on the deny-list", hostname), true
	}

	if dangerousHostnames[hostname] && !v.allowPrivate {
		return hostname, deny("hostname %s is a known-dangerous host", hostname), true
	}

	if len(v.allowed) > 0 && !matchAny(v.allowed, hostname) {
		return hostname, deny("hostname %s is not on the allow-list", hostname), true
	}

	// A literal IP hostname is classified directly; no DNS involved.
	if addr, err := netip.ParseAddr(hostname); err == nil {
		if !v.allowPrivate {
			if blocked, reason := classifyAddr(addr); blocked {
				return hostname, deny("%s", reason), true
			}
		}
		return hostname, allow("URL accepted"), true
	}

	return hostname, Verdict{}, false
}

func matchAny(patterns []glob.Glob, hostname string) bool {
	for _, g := range patterns {
		if g.Match(hostname) {
			return true
		}
	}
	return false
}

// classifyAddr reports whether an address falls in a private, reserved,
// link-local, multicast, loopback, or documentation range, or is a known
// cloud-metadata endpoint. IPv4-mapped IPv6 addresses are classified by
// their embedded IPv4 address.
func classifyAddr(addr netip.Addr) (bool, string) {
	if dangerousAddrs[addr.String()] {
		return true, fmt.Sprintf("%s is a cloud metadata endpoint", addr)
	}

	if addr.Is4In6() {
		if blocked, reason := classifyAddr(addr.Unmap()); blocked {
			return true, fmt.Sprintf("IPv4-mapped IPv6 address %s: %s", addr, reason)
		}
		return false, ""
	}

	prefixes := reservedV6
	if addr.Is4() {
		prefixes = reservedV4
	}
	for _, p := range prefixes {
		if p.Contains(addr) {
			return true, fmt.Sprintf("%s is in reserved range %s", addr, p)
		}
	}
	return false, ""
}

// defaultLookup resolves via the system resolver, returning every A and
// AAAA record so that a hostname pointing even one record at a private
// address is rejected.
func defaultLookup(ctx context.Context, host string) ([]netip.Addr, error) {
	ipAddrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	addrs := make([]netip.Addr, 0, len(ipAddrs))
	for _, ia := range ipAddrs {
		addr, ok := netip.AddrFromSlice(ia.IP)
		if !ok {
			continue
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}
