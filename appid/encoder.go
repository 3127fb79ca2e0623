package appid

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/keystored/attestation-appid/interfaces"
)

// MaxSize is the hard ceiling on the encoded attestation application ID.
// Downstream attestation-certificate construction consumes the blob verbatim
// and rejects anything larger.
const MaxSize = 1024

// Size estimate constants. These are upper bounds on the DER overhead of the
// corresponding schema elements and drive the truncation policy.
const (
	// generalOverhead covers the outer headers: the octet string wrapper
	// around the fully-encoded data, the outer sequence, and both set-of
	// headers (4 bytes each).
	generalOverhead = 16

	// packageOverhead is the fixed per-package cost on top of the name
	// bytes: name tag and length, plus the version integer header and up to
	// 9 bytes of integer payload.
	packageOverhead = 15

	// digestOverhead is the cost of one signature digest: a two-byte header
	// plus the 32-byte SHA-256 value.
	digestOverhead = 34
)

var (
	// ErrNoPackages is returned when the input contains no packages.
	ErrNoPackages = errors.New("attestation application id has no packages")

	// ErrMissingPackageName is returned when a package has an empty name.
	ErrMissingPackageName = errors.New("attestation package info lacks package name")
)

// Encode serializes an attestation application ID to canonical DER.
//
// Packages are taken in input order until the size estimate would exceed
// MaxSize; the remainder is dropped silently. Signature digests are derived
// from the first package's signing certificates, again truncated to the
// budget. The returned slice is owned by the caller and never exceeds
// MaxSize.
func Encode(appID *interfaces.KeyAttestationAppID) ([]byte, error) {
	if appID == nil || len(appID.Packages) == 0 {
		return nil, ErrNoPackages
	}

	estimated := generalOverhead

	pkgEncodings := make([][]byte, 0, len(appID.Packages))
	for _, pkg := range appID.Packages {
		estimated += packageOverhead + len(pkg.Name)
		if estimated > MaxSize {
			break
		}

		enc, err := marshalPackageInfo(pkg)
		if err != nil {
			return nil, err
		}
		pkgEncodings = append(pkgEncodings, enc)
	}

	first := appID.Packages[0]
	digestEncodings := make([][]byte, 0, len(first.Signatures))
	for _, cert := range first.Signatures {
		estimated += digestOverhead
		if estimated > MaxSize {
			break
		}

		digest := sha256.Sum256(cert)
		var b cryptobyte.Builder
		b.AddASN1OctetString(digest[:])
		enc, err := b.Bytes()
		if err != nil {
			return nil, fmt.Errorf("encoding signature digest: %w", err)
		}
		digestEncodings = append(digestEncodings, enc)
	}

	var b cryptobyte.Builder
	b.AddASN1(cryptobyte_asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addSetOf(b, pkgEncodings)
		addSetOf(b, digestEncodings)
	})

	out, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encoding attestation application id: %w", err)
	}
	return out, nil
}

// marshalPackageInfo encodes a single AttestationPackageInfo sequence. The
// name is written as an octet string of the raw bytes, with no normalization
// and no NUL terminator.
func marshalPackageInfo(pkg interfaces.PackageInfo) ([]byte, error) {
	if pkg.Name == "" {
		return nil, ErrMissingPackageName
	}

	var b cryptobyte.Builder
	b.AddASN1(cryptobyte_asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1OctetString([]byte(pkg.Name))
		b.AddASN1Uint64(pkg.Version)
	})

	enc, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encoding package info for %q: %w", pkg.Name, err)
	}
	return enc, nil
}

// addSetOf writes a SET OF from pre-encoded members. DER requires the
// members sorted in ascending order of their encoded bytes.
func addSetOf(b *cryptobyte.Builder, members [][]byte) {
	sorted := make([][]byte, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i], sorted[j]) < 0
	})

	b.AddASN1(cryptobyte_asn1.SET, func(b *cryptobyte.Builder) {
		for _, member := range sorted {
			b.AddBytes(member)
		}
	})
}
