// Package common holds process-wide configuration helpers shared by all
// binaries: logger setup and build identification.
package common

// PackageName tags logs and metrics emitted by this project.
const PackageName = "attestation-appid"

// Version is set at build time via -ldflags.
var Version = "dev"
