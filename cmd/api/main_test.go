package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CameronXie/mealserve/internal/config"
)

func TestPublicKeySource(t *testing.T) {
	fileKey, filePEM := newPublicKeyPEM(t)
	envKey, envPEM := newPublicKeyPEM(t)

	path := filepath.Join(t.TempDir(), "public.pem")
	require.NoError(t, os.WriteFile(path, filePEM, 0o600))
	t.Setenv("TEST_PUBLIC_KEY_BASE64", base64.StdEncoding.EncodeToString(envPEM))

	cases := map[string]struct {
		cfg      config.JWT
		expected *rsa.PublicKey
	}{
		"should read the file when set": {
			cfg:      config.JWT{PublicKeyEnv: "TEST_PUBLIC_KEY_BASE64", PublicKeyFile: path},
			expected: fileKey,
		},
		"should fall back to the environment variable": {
			cfg:      config.JWT{PublicKeyEnv: "TEST_PUBLIC_KEY_BASE64"},
			expected: envKey,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			pk, err := publicKeySource(tc.cfg).FetchPublicKey()

			require.NoError(t, err)
			assert.Equal(t, tc.expected, pk)
		})
	}
}

func newPublicKeyPEM(t *testing.T) (*rsa.PublicKey, []byte) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)

	return &privateKey.PublicKey, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
}
