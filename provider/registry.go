package provider

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/keystored/attestation-appid/interfaces"
)

// ErrUnknownUID is returned for UIDs with no registered packages. The handler
// reports it as a service-specific error so clients do not reset their
// connection over it.
var ErrUnknownUID = errors.New("no packages registered for uid")

// ErrorCodeUnknownUID is the service-specific error code for ErrUnknownUID.
const ErrorCodeUnknownUID int32 = 1

// Registry is an in-memory package-metadata table keyed by UID. It is the
// provider service's source of truth, typically loaded once at startup from
// a snapshot file.
type Registry struct {
	mu    sync.RWMutex
	byUID map[uint32][]interfaces.PackageInfo
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byUID: make(map[uint32][]interfaces.PackageInfo)}
}

// SetPackages replaces the package list registered for a UID.
func (r *Registry) SetPackages(uid uint32, packages []interfaces.PackageInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUID[uid] = packages
}

// AppIDForUID implements interfaces.PackageSource.
func (r *Registry) AppIDForUID(uid uint32) (*interfaces.KeyAttestationAppID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	packages, ok := r.byUID[uid]
	if !ok || len(packages) == 0 {
		return nil, fmt.Errorf("uid %d: %w", uid, ErrUnknownUID)
	}

	return &interfaces.KeyAttestationAppID{Packages: packages}, nil
}

// Snapshot file format. Signing certificates are base64 of their DER bytes.
type registrySnapshot struct {
	UIDs []struct {
		UID      uint32 `yaml:"uid"`
		Packages []struct {
			PackageName string   `yaml:"package_name"`
			VersionCode uint64   `yaml:"version_code"`
			Signatures  []string `yaml:"signatures"`
		} `yaml:"packages"`
	} `yaml:"uids"`
}

// LoadRegistry parses a YAML registry snapshot.
func LoadRegistry(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read registry snapshot: %w", err)
	}

	var snapshot registrySnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("could not parse registry snapshot: %w", err)
	}

	registry := NewRegistry()
	for _, entry := range snapshot.UIDs {
		packages := make([]interfaces.PackageInfo, 0, len(entry.Packages))
		for _, pkg := range entry.Packages {
			if pkg.PackageName == "" {
				return nil, fmt.Errorf("uid %d: package with empty name", entry.UID)
			}

			signatures := make([][]byte, 0, len(pkg.Signatures))
			for i, sig := range pkg.Signatures {
				der, err := base64.StdEncoding.DecodeString(sig)
				if err != nil {
					return nil, fmt.Errorf("uid %d package %q signature %d: %w", entry.UID, pkg.PackageName, i, err)
				}
				signatures = append(signatures, der)
			}

			packages = append(packages, interfaces.PackageInfo{
				Name:       pkg.PackageName,
				Version:    pkg.VersionCode,
				Signatures: signatures,
			})
		}
		registry.SetPackages(entry.UID, packages)
	}

	return registry, nil
}
