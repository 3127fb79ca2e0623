// Command appid gathers the DER-encoded attestation application ID for a
// UID and prints it to stdout.
//
// The provider service is located through DNS SRV discovery by default; pass
// --provider-addr to pin a fixed endpoint. UIDs 0 (root) and 1000 (system)
// are answered locally with the fixed AndroidSystem record and never contact
// the provider.
package main
