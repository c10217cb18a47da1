package urlcheck

import (
	"context"
	"fmt"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLookup returns a fixed answer for every hostname.
func stubLookup(addrs ...string) LookupFunc {
	return func(ctx context.Context, host string) ([]netip.Addr, error) {
		parsed := make([]netip.Addr, 0, len(addrs))
		for _, a := range addrs {
			parsed = append(parsed, netip.MustParseAddr(a))
		}
		return parsed, nil
	}
}

func failingLookup(ctx context.Context, host string) ([]netip.Addr, error) {
	return nil, fmt.Errorf("no such host")
}

func newValidator(t *testing.T, cfg Config, opts ...Option) *Validator {
	t.Helper()
	v, err := New(cfg, opts...)
	require.NoError(t, err)
	return v
}

func TestValidateRejectsNonHTTPSchemes(t *testing.T) {
	v := newValidator(t, Config{}, WithLookup(stubLookup("93.184.216.34")))

	for _, rawURL := range []string{
		"file:///etc/passwd",
		"ftp://example.com/x",
		"gopher://example.com",
		"javascript:alert(1)",
		"example.com/no-scheme",
	} {
		t.Run(rawURL, func(t *testing.T) {
			verdict := v.Validate(context.Background(), rawURL)
			assert.False(t, verdict.Safe, "reason: %s", verdict.Reason)
		})
	}
}

func TestValidateRejectsPrivateResolution(t *testing.T) {
	tests := []struct {
		name  string
		addrs []string
	}{
		{"rfc1918 ten-slash-eight", []string{"10.1.2.3"}},
		{"loopback", []string{"127.0.0.1"}},
		{"link local", []string{"169.254.10.10"}},
		{"rfc1918 192.168", []string{"192.168.1.1"}},
		{"one private among public", []string{"93.184.216.34", "10.0.0.5"}},
		{"ipv6 unique local", []string{"fd12:3456::1"}},
		{"ipv6 loopback", []string{"::1"}},
		{"ipv4 mapped ipv6 private", []string{"::ffff:192.168.0.10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newValidator(t, Config{}, WithLookup(stubLookup(tt.addrs...)))
			verdict := v.Validate(context.Background(), "http://service.example.com/")
			assert.False(t, verdict.Safe, "reason: %s", verdict.Reason)
		})
	}
}

func TestValidatePrivateRejectionIgnoresAllowList(t *testing.T) {
	// An allow-list entry must not override the reserved-range check.
	v := newValidator(t, Config{
		AllowedDomains: []string{"*.example.com"},
	}, WithLookup(stubLookup("10.0.0.1")))

	verdict := v.Validate(context.Background(), "http://evil.example.com/")
	assert.False(t, verdict.Safe)
}

func TestValidateAllowsPublicResolution(t *testing.T) {
	v := newValidator(t, Config{}, WithLookup(stubLookup("93.184.216.34", "2606:2800:220:1::1")))
	verdict := v.Validate(context.Background(), "https://example.com/page")
	assert.True(t, verdict.Safe, "reason: %s", verdict.Reason)
}

func TestValidateMetadataEndpointLiteral(t *testing.T) {
	v := newValidator(t, Config{}, WithLookup(failingLookup))
	verdict := v.Validate(context.Background(), "http://169.254.169.254/latest/meta-data/")
	require.False(t, verdict.Safe)
	assert.Contains(t, verdict.Reason, "169.254.169.254")
}

func TestValidateDenyListWinsOverPublicIP(t *testing.T) {
	v := newValidator(t, Config{
		BlockedDomains: []string{"*.internal.example"},
	}, WithLookup(stubLookup("93.184.216.34")))

	verdict := v.Validate(context.Background(), "https://a.internal.example/x")
	require.False(t, verdict.Safe)
	assert.Contains(t, verdict.Reason, "deny-list")
}

func TestValidateDenyListWinsOverAllowPrivate(t *testing.T) {
	v := newValidator(t, Config{
		AllowPrivateNetwork: true,
		BlockedDomains:      []string{"blocked.example"},
	})
	verdict := v.Validate(context.Background(), "https://blocked.example/")
	assert.False(t, verdict.Safe)
}

func TestValidateAllowListGatesUnlistedHosts(t *testing.T) {
	v := newValidator(t, Config{
		AllowedDomains: []string{"*.example.com", "example.com"},
	}, WithLookup(stubLookup("93.184.216.34")))

	assert.True(t, v.Validate(context.Background(), "https://www.example.com/").Safe)
	assert.True(t, v.Validate(context.Background(), "https://example.com/").Safe)
	assert.False(t, v.Validate(context.Background(), "https://other.org/").Safe)
}

func TestValidateDangerousHostnames(t *testing.T) {
	v := newValidator(t, Config{}, WithLookup(stubLookup("93.184.216.34")))

	for _, host := range []string{
		"localhost",
		"LOCALHOST",
		"metadata.google.internal",
		"kubernetes.default.svc.cluster.local",
	} {
		verdict := v.Validate(context.Background(), "http://"+host+"/")
		assert.False(t, verdict.Safe, "host %s should be rejected", host)
	}
}

func TestValidateAllowPrivateNetwork(t *testing.T) {
	v := newValidator(t, Config{AllowPrivateNetwork: true}, WithLookup(stubLookup("10.0.0.1")))

	assert.True(t, v.Validate(context.Background(), "http://localhost:8080/").Safe)
	assert.True(t, v.Validate(context.Background(), "http://10.0.0.1/").Safe)
	assert.True(t, v.Validate(context.Background(), "http://intranet.corp/").Safe)
}

func TestValidateLiteralIPs(t *testing.T) {
	v := newValidator(t, Config{}, WithLookup(failingLookup))

	assert.False(t, v.Validate(context.Background(), "http://127.0.0.1/").Safe)
	assert.False(t, v.Validate(context.Background(), "http://[::1]/").Safe)
	assert.False(t, v.Validate(context.Background(), "http://[::ffff:10.0.0.1]/").Safe)
	assert.True(t, v.Validate(context.Background(), "http://93.184.216.34/").Safe)
}

func TestValidateDNSFailureIsNonFatal(t *testing.T) {
	v := newValidator(t, Config{}, WithLookup(failingLookup))
	verdict := v.Validate(context.Background(), "https://does-not-resolve.example.com/")
	assert.True(t, verdict.Safe, "DNS failure should defer to navigation")
}

func TestPrecheckSkipsDNS(t *testing.T) {
	// Lookup would reject, but Precheck never calls it.
	v := newValidator(t, Config{}, WithLookup(stubLookup("10.0.0.1")))

	assert.True(t, v.Precheck("https://example.com/").Safe)
	assert.False(t, v.Precheck("ftp://example.com/").Safe)
	assert.False(t, v.Precheck("http://localhost/").Safe)
	assert.False(t, v.Precheck("http://169.254.169.254/").Safe)
}

func TestPrecheckDenyList(t *testing.T) {
	v := newValidator(t, Config{BlockedDomains: []string{"*.internal.example"}})
	verdict := v.Precheck("https://a.internal.example/x")
	assert.False(t, verdict.Safe)
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	_, err := New(Config{AllowedDomains: []string{"[unclosed"}})
	assert.Error(t, err)
}
