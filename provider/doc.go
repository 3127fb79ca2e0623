/*
Package provider implements both sides of the package-metadata provider
endpoint.

The provider maps a numeric UID to the metadata of the packages installed
under it: package names, version codes, and signing certificates. The
gatherer consumes this to build the attestation application ID.

# Client

Client keeps a single lazily-initialized handle to the service, guarded by a
mutex. Acquiring the handle blocks on service discovery with no timeout
until the service appears. The request itself is issued on a local copy of
the handle with the mutex released, so a slow lookup never serializes
concurrent callers. Reset drops the cached handle; callers already holding
one keep using it, and the next lookup re-resolves the service.

Failures are classified as interfaces.RPCError kinds:

  - ServiceSpecific - the service answered with a domain error body
  - TransactionFailed - the transport failed (dial, read); the caller is
    expected to Reset and retry
  - Other - anything else (unexpected status, unparseable body)

# Discovery

The service registers under the symbolic name ServiceName. SRVResolver
locates it through DNS SRV records against the system resolver, polling
until a record appears. StaticResolver pins a fixed endpoint for tests and
fixed-address deployments.

# Server

Handler serves the lookup endpoint over HTTP with JSON bodies, backed by a
PackageSource. Registry is the in-memory source of truth, loadable from a
YAML snapshot at startup.
*/
package provider
