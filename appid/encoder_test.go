package appid

import (
	"crypto/sha256"
	"encoding/asn1"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystored/attestation-appid/interfaces"
)

// Mirror of the AAID schema for independent round-trip parsing with the
// stdlib DER parser.
type derPackageInfo struct {
	PackageName []byte
	Version     int64
}

type derAppID struct {
	PackageInfos     []derPackageInfo `asn1:"set"`
	SignatureDigests [][]byte         `asn1:"set"`
}

func decodeAppID(t *testing.T, encoded []byte) derAppID {
	t.Helper()

	var parsed derAppID
	rest, err := asn1.Unmarshal(encoded, &parsed)
	require.NoError(t, err, "encoded output must parse as the AAID schema")
	require.Empty(t, rest, "no trailing bytes after the outer sequence")
	return parsed
}

func TestEncodeRejectsEmptyInput(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, ErrNoPackages)

	_, err = Encode(&interfaces.KeyAttestationAppID{})
	assert.ErrorIs(t, err, ErrNoPackages)
}

func TestEncodeRejectsMissingPackageName(t *testing.T) {
	_, err := Encode(&interfaces.KeyAttestationAppID{
		Packages: []interfaces.PackageInfo{{Name: "", Version: 1}},
	})
	assert.ErrorIs(t, err, ErrMissingPackageName)
}

func TestEncodeSystemPackage(t *testing.T) {
	appID := &interfaces.KeyAttestationAppID{
		Packages: []interfaces.PackageInfo{{Name: "AndroidSystem", Version: 1}},
	}

	encoded, err := Encode(appID)
	require.NoError(t, err)

	assert.NotEmpty(t, encoded)
	assert.Equal(t, byte(0x30), encoded[0], "outer tag must be SEQUENCE")
	assert.Less(t, len(encoded), 30)

	parsed := decodeAppID(t, encoded)
	require.Len(t, parsed.PackageInfos, 1)
	assert.Equal(t, []byte("AndroidSystem"), parsed.PackageInfos[0].PackageName)
	assert.Equal(t, int64(1), parsed.PackageInfos[0].Version)
	assert.Empty(t, parsed.SignatureDigests)
}

func TestEncodeSignatureDigests(t *testing.T) {
	certA := []byte("certificate-a")
	certB := []byte("certificate-b")

	appID := &interfaces.KeyAttestationAppID{
		Packages: []interfaces.PackageInfo{
			{Name: "com.ex", Version: 42, Signatures: [][]byte{certA, certB}},
		},
	}

	encoded, err := Encode(appID)
	require.NoError(t, err)

	parsed := decodeAppID(t, encoded)
	require.Len(t, parsed.PackageInfos, 1)
	assert.Equal(t, []byte("com.ex"), parsed.PackageInfos[0].PackageName)
	assert.Equal(t, int64(42), parsed.PackageInfos[0].Version)

	digestA := sha256.Sum256(certA)
	digestB := sha256.Sum256(certB)
	require.Len(t, parsed.SignatureDigests, 2)
	for _, digest := range parsed.SignatureDigests {
		assert.Len(t, digest, sha256.Size)
	}
	assert.ElementsMatch(t, [][]byte{digestA[:], digestB[:]}, parsed.SignatureDigests)
}

func TestEncodeSharedUIDUsesFirstPackageDigests(t *testing.T) {
	certA := []byte("shared-signing-cert")

	appID := &interfaces.KeyAttestationAppID{
		Packages: []interfaces.PackageInfo{
			{Name: "com.a", Version: 1, Signatures: [][]byte{certA}},
			{Name: "com.b", Version: 2, Signatures: [][]byte{[]byte("x"), []byte("y")}},
		},
	}

	encoded, err := Encode(appID)
	require.NoError(t, err)

	parsed := decodeAppID(t, encoded)
	assert.Len(t, parsed.PackageInfos, 2)

	digestA := sha256.Sum256(certA)
	require.Len(t, parsed.SignatureDigests, 1, "digests come from the first package only")
	assert.Equal(t, digestA[:], parsed.SignatureDigests[0])
}

func TestEncodePackageTruncation(t *testing.T) {
	const nameLen = 200

	packages := make([]interfaces.PackageInfo, 100)
	for i := range packages {
		packages[i] = interfaces.PackageInfo{
			Name:    fmt.Sprintf("%0*d", nameLen, i),
			Version: uint64(i),
		}
	}

	encoded, err := Encode(&interfaces.KeyAttestationAppID{Packages: packages})
	require.NoError(t, err, "overflowing the budget truncates, it is not an error")
	assert.LessOrEqual(t, len(encoded), MaxSize)

	// Largest k with 16 + k*(15+200) <= 1024.
	parsed := decodeAppID(t, encoded)
	require.Len(t, parsed.PackageInfos, 4)

	wantNames := make([][]byte, 4)
	for i := range wantNames {
		wantNames[i] = []byte(packages[i].Name)
	}
	gotNames := make([][]byte, 0, len(parsed.PackageInfos))
	for _, pkg := range parsed.PackageInfos {
		gotNames = append(gotNames, pkg.PackageName)
	}
	assert.ElementsMatch(t, wantNames, gotNames, "the included packages are the input-order prefix")
}

func TestEncodeDigestTruncation(t *testing.T) {
	signatures := make([][]byte, 40)
	for i := range signatures {
		signatures[i] = []byte(fmt.Sprintf("cert-%d", i))
	}

	appID := &interfaces.KeyAttestationAppID{
		Packages: []interfaces.PackageInfo{
			{Name: "com.ex", Version: 1, Signatures: signatures},
		},
	}

	encoded, err := Encode(appID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(encoded), MaxSize)

	// est = 16 + 15 + len("com.ex") = 37; largest n with 37 + n*34 <= 1024.
	parsed := decodeAppID(t, encoded)
	assert.Len(t, parsed.SignatureDigests, 29)
}

func TestEncodeBoundedForAllInputs(t *testing.T) {
	for _, count := range []int{1, 3, 10, 50, 200} {
		packages := make([]interfaces.PackageInfo, count)
		for i := range packages {
			packages[i] = interfaces.PackageInfo{
				Name:       fmt.Sprintf("com.vendor.app%d", i),
				Version:    uint64(i + 1),
				Signatures: [][]byte{[]byte(fmt.Sprintf("cert-%d", i))},
			}
		}

		encoded, err := Encode(&interfaces.KeyAttestationAppID{Packages: packages})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(encoded), MaxSize, "count=%d", count)
		assert.NotEmpty(t, encoded)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	appID := &interfaces.KeyAttestationAppID{
		Packages: []interfaces.PackageInfo{
			{Name: "com.ex", Version: 7, Signatures: [][]byte{[]byte("b"), []byte("a")}},
			{Name: "com.other", Version: 3},
		},
	}

	first, err := Encode(appID)
	require.NoError(t, err)
	second, err := Encode(appID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncodeCanonicalSetOrdering(t *testing.T) {
	certA := []byte("aaaa-cert")
	certB := []byte("bbbb-cert")

	forward, err := Encode(&interfaces.KeyAttestationAppID{
		Packages: []interfaces.PackageInfo{
			{Name: "com.ex", Version: 1, Signatures: [][]byte{certA, certB}},
		},
	})
	require.NoError(t, err)

	reversed, err := Encode(&interfaces.KeyAttestationAppID{
		Packages: []interfaces.PackageInfo{
			{Name: "com.ex", Version: 1, Signatures: [][]byte{certB, certA}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, forward, reversed, "SET OF members are sorted, input order must not leak")
}

func TestEncodeSaturatedOutputStable(t *testing.T) {
	makePackages := func(count int) []interfaces.PackageInfo {
		packages := make([]interfaces.PackageInfo, count)
		for i := range packages {
			packages[i] = interfaces.PackageInfo{
				Name:    fmt.Sprintf("%0100d", i),
				Version: uint64(i),
			}
		}
		return packages
	}

	capped, err := Encode(&interfaces.KeyAttestationAppID{Packages: makePackages(50)})
	require.NoError(t, err)

	extended, err := Encode(&interfaces.KeyAttestationAppID{Packages: makePackages(120)})
	require.NoError(t, err)

	assert.Equal(t, capped, extended, "additions past the cap must not change the output")
}

func TestEncodeFullRangeVersion(t *testing.T) {
	appID := &interfaces.KeyAttestationAppID{
		Packages: []interfaces.PackageInfo{
			{Name: "com.ex", Version: math.MaxUint64},
		},
	}

	encoded, err := Encode(appID)
	require.NoError(t, err)

	var parsed struct {
		PackageInfos []struct {
			PackageName []byte
			Version     *big.Int
		} `asn1:"set"`
		SignatureDigests [][]byte `asn1:"set"`
	}
	rest, err := asn1.Unmarshal(encoded, &parsed)
	require.NoError(t, err)
	require.Empty(t, rest)

	require.Len(t, parsed.PackageInfos, 1)
	assert.Equal(t, new(big.Int).SetUint64(math.MaxUint64), parsed.PackageInfos[0].Version)
}
