// Package interfaces defines the core types and contracts for the attestation
// application ID subsystem. It provides the shared vocabulary between the
// provider client, the gatherer and the DER encoder without implementation
// details.
//
// The central types are:
//
//   - PackageInfo - metadata for one installed package sharing a UID
//   - KeyAttestationAppID - the set of packages attributed to a UID
//   - RPCError - classified failure of a provider call
//
// The Provider interface abstracts the remote package-metadata service. The
// production implementation lives in the provider package; a testify mock is
// provided alongside it for tests.
package interfaces
