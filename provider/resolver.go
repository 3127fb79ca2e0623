package provider

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// ServiceName is the symbolic name under which the package-metadata provider
// registers itself for discovery.
const ServiceName = "sec_key_att_app_id_provider"

// Resolver locates a named service endpoint.
type Resolver interface {
	// WaitFor blocks until the named service can be resolved and returns
	// its base URL. There is no timeout; the wait ends only when the
	// service appears or resolution fails irrecoverably.
	WaitFor(name string) (string, error)
}

// SRVResolver resolves service names through DNS SRV records against the
// local resolver. It polls until a record appears.
type SRVResolver struct {
	// ResolverAddr is the DNS resolver to query. Defaults to the systemd
	// stub resolver.
	ResolverAddr string

	// PollInterval is the delay between resolution attempts while the
	// service is not yet registered.
	PollInterval time.Duration

	Log *slog.Logger
}

// WaitFor polls SRV resolution for the service name until a record appears.
func (r *SRVResolver) WaitFor(name string) (string, error) {
	resolverAddr := r.ResolverAddr
	if resolverAddr == "" {
		resolverAddr = "127.0.0.53:53"
	}
	interval := r.PollInterval
	if interval == 0 {
		interval = time.Second
	}

	for {
		target, port, err := resolveSRV(name, resolverAddr)
		if err == nil {
			return fmt.Sprintf("http://%s:%d", strings.TrimSuffix(target, "."), port), nil
		}

		if r.Log != nil {
			r.Log.Debug("Provider service not resolvable yet", "service", name, "err", err)
		}
		time.Sleep(interval)
	}
}

// resolveSRV queries the resolver for an SRV record of the service name and
// returns the first target and port.
func resolveSRV(name, resolverAddr string) (string, uint16, error) {
	m := new(dns.Msg)
	m.Id = dns.Id()
	m.RecursionDesired = true
	m.Question = []dns.Question{{
		Name:   dns.Fqdn(name),
		Qtype:  dns.TypeSRV,
		Qclass: dns.ClassINET,
	}}

	c := new(dns.Client)
	in, _, err := c.Exchange(m, resolverAddr)
	if err != nil {
		return "", 0, err
	}

	for _, answer := range in.Answer {
		if srv, ok := answer.(*dns.SRV); ok {
			return srv.Target, srv.Port, nil
		}
	}

	return "", 0, fmt.Errorf("no SRV records for %s", name)
}

// StaticResolver always returns a fixed base URL. It serves deployments with
// a known provider address and tests.
type StaticResolver struct {
	// Addr is the base URL of the provider service.
	Addr string
}

// WaitFor returns the configured address immediately.
func (r *StaticResolver) WaitFor(name string) (string, error) {
	return r.Addr, nil
}
