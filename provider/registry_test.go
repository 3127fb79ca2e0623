package provider

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystored/attestation-appid/interfaces"
)

func TestLoadRegistry(t *testing.T) {
	cert := []byte("der-signing-cert")
	snapshot := `
uids:
  - uid: 10001
    packages:
      - package_name: com.example.app
        version_code: 42
        signatures:
          - ` + base64.StdEncoding.EncodeToString(cert) + `
  - uid: 10002
    packages:
      - package_name: com.example.other
        version_code: 7
`

	registry, err := LoadRegistry(strings.NewReader(snapshot))
	require.NoError(t, err)

	appID, err := registry.AppIDForUID(10001)
	require.NoError(t, err)
	require.Len(t, appID.Packages, 1)
	assert.Equal(t, interfaces.PackageInfo{
		Name:       "com.example.app",
		Version:    42,
		Signatures: [][]byte{cert},
	}, appID.Packages[0])

	appID, err = registry.AppIDForUID(10002)
	require.NoError(t, err)
	require.Len(t, appID.Packages, 1)
	assert.Empty(t, appID.Packages[0].Signatures)
}

func TestLoadRegistryRejectsBadSnapshot(t *testing.T) {
	cases := map[string]string{
		"invalid yaml": "uids: [",
		"empty package name": `
uids:
  - uid: 10001
    packages:
      - package_name: ""
        version_code: 1
`,
		"invalid signature encoding": `
uids:
  - uid: 10001
    packages:
      - package_name: com.ex
        version_code: 1
        signatures:
          - "not base64!!"
`,
	}

	for name, snapshot := range cases {
		_, err := LoadRegistry(strings.NewReader(snapshot))
		assert.Error(t, err, name)
	}
}

func TestRegistryUnknownUID(t *testing.T) {
	registry := NewRegistry()
	registry.SetPackages(10001, nil)

	_, err := registry.AppIDForUID(10001)
	assert.ErrorIs(t, err, ErrUnknownUID)

	_, err = registry.AppIDForUID(999)
	assert.ErrorIs(t, err, ErrUnknownUID)
}
