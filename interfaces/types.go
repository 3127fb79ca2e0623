package interfaces

// Privileged host identities. Callers with these UIDs never trigger a
// provider lookup; the gatherer synthesizes a fixed system package for them.
const (
	UIDRoot   uint32 = 0
	UIDSystem uint32 = 1000
)

// ResponseGetAttestationAppIDFailed is the opaque keystore response code
// surfaced when all provider attempts are exhausted.
const ResponseGetAttestationAppIDFailed int32 = 24

// PackageInfo describes one installed package attributed to a UID.
//
// Signatures holds DER-encoded signing certificates, not signatures; the
// historical field name is kept for wire compatibility with the provider
// service.
type PackageInfo struct {
	// Name is the package name, preserved verbatim as raw bytes in the
	// encoded output. Must be non-empty.
	Name string `json:"package_name"`

	// Version is the package version code.
	Version uint64 `json:"version_code"`

	// Signatures contains the DER-encoded signing certificates of the
	// package. May be empty.
	Signatures [][]byte `json:"signatures"`
}

// KeyAttestationAppID is the package metadata for one UID as reported by the
// provider service. Packages sharing a UID are required to share signing
// certificates, so signature digests are derived from the first package only.
type KeyAttestationAppID struct {
	Packages []PackageInfo `json:"packages"`
}

// Provider abstracts the remote package-metadata service.
//
// A single Provider instance is shared process-wide; implementations must be
// safe for concurrent use.
type Provider interface {
	// AppID looks up the package metadata for a UID. Failures are reported
	// as *RPCError so callers can dispatch on the classification.
	AppID(uid uint32) (*KeyAttestationAppID, error)

	// Reset drops any cached connection to the service. The next AppID call
	// re-establishes it. Callers already holding a connection keep using it.
	Reset()
}

// PackageSource supplies package metadata to the provider service handler.
type PackageSource interface {
	// AppIDForUID returns the packages registered for a UID, or an error if
	// the UID is unknown.
	AppIDForUID(uid uint32) (*KeyAttestationAppID, error)
}
