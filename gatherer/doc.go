/*
Package gatherer assembles and encodes the attestation application ID for a
UID.

Privileged identities (root and system) never touch the provider service; a
fixed "AndroidSystem" package record is synthesized for them. All other UIDs
are looked up through the provider with a bounded retry loop: up to three
attempts, 500 ms apart. A transport-level failure additionally drops the
provider's cached connection so the next attempt reconnects; domain errors
are retried without touching the connection. Exhausting the budget surfaces
the opaque keystore response code, never the underlying provider error.

The assembled record is handed to the appid encoder, which is purely local
and deterministic.
*/
package gatherer
