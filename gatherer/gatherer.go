package gatherer

import (
	"errors"
	"log/slog"
	"time"

	"github.com/keystored/attestation-appid/appid"
	"github.com/keystored/attestation-appid/interfaces"
)

const (
	// MaxAttempts bounds the provider retry loop.
	MaxAttempts = 3

	// RetryInterval is the delay between provider attempts.
	RetryInterval = 500 * time.Millisecond

	// SystemPackageName is the fixed package name attested for privileged
	// system callers.
	SystemPackageName = "AndroidSystem"

	// SystemPackageVersion is the fixed version attested for privileged
	// system callers.
	SystemPackageVersion = 1
)

// Gatherer resolves a UID to its encoded attestation application ID.
type Gatherer struct {
	provider interfaces.Provider
	log      *slog.Logger

	// sleep is replaced in tests to observe inter-attempt delays.
	sleep func(time.Duration)
}

// New creates a gatherer on top of a shared provider.
func New(provider interfaces.Provider, log *slog.Logger) *Gatherer {
	return &Gatherer{
		provider: provider,
		log:      log,
		sleep:    time.Sleep,
	}
}

// Gather resolves the package metadata for a UID and returns its DER-encoded
// attestation application ID. When all provider attempts fail, the returned
// error is an *interfaces.LookupError carrying the opaque keystore response
// code.
func (g *Gatherer) Gather(uid uint32) ([]byte, error) {
	keyAttestationID, err := g.lookup(uid)
	if err != nil {
		return nil, err
	}

	return appid.Encode(keyAttestationID)
}

func (g *Gatherer) lookup(uid uint32) (*interfaces.KeyAttestationAppID, error) {
	// Fixed ID for system callers.
	if uid == interfaces.UIDSystem || uid == interfaces.UIDRoot {
		return &interfaces.KeyAttestationAppID{
			Packages: []interfaces.PackageInfo{{
				Name:    SystemPackageName,
				Version: SystemPackageVersion,
			}},
		}, nil
	}

	var lastErr error
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		keyAttestationID, err := g.provider.AppID(uid)
		if err == nil {
			return keyAttestationID, nil
		}
		lastErr = err

		var rpcErr *interfaces.RPCError
		if !errors.As(err, &rpcErr) {
			g.log.Warn("Retry: attestation id lookup failed", "uid", uid, "err", err)
		} else {
			switch rpcErr.Kind {
			case interfaces.RPCServiceSpecific:
				g.log.Warn("Retry: attestation id lookup failed with service specific error",
					"uid", uid, "code", rpcErr.Code, "err", rpcErr.Msg)
			case interfaces.RPCTransactionFailed:
				// Drop the provider connection so the next attempt
				// reconnects.
				g.log.Warn("Retry: attestation id lookup transaction failed, resetting connection",
					"uid", uid, "err", rpcErr.Msg)
				g.provider.Reset()
			default:
				g.log.Warn("Retry: attestation id lookup failed", "uid", uid, "err", rpcErr.Msg)
			}
		}

		if attempt+1 < MaxAttempts {
			g.sleep(RetryInterval)
		}
	}

	g.log.Warn("Provider request for key attestation id failed", "uid", uid, "err", lastErr)
	return nil, &interfaces.LookupError{Code: interfaces.ResponseGetAttestationAppIDFailed}
}
