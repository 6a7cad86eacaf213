package keyfetcher

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"os"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

type PublicKeyFetcher interface {
	FetchPublicKey() (*rsa.PublicKey, error)
}

// From loads PEM encoded key material.
type From func() ([]byte, error)

// FetchPublicKey parses the loaded key as an RSA public key.
func (f From) FetchPublicKey() (*rsa.PublicKey, error) {
	keyBytes, err := f()
	if err != nil {
		return nil, err
	}

	return jwt.ParseRSAPublicKeyFromPEM(keyBytes)
}

// FromBase64Env reads the Base64 encoded PEM stored in the environment variable key.
func FromBase64Env(key string) From {
	return func() ([]byte, error) {
		keyBase64 := os.Getenv(key)
		if keyBase64 == "" {
			return nil, fmt.Errorf("environment variable %s is not set", key)
		}

		return base64.StdEncoding.DecodeString(keyBase64)
	}
}

// FromFile reads a PEM file from path.
func FromFile(path string) From {
	return func() ([]byte, error) {
		return os.ReadFile(path)
	}
}

type cachedPublicKeyFetcher struct {
	fetcher PublicKeyFetcher
	mu      sync.Mutex
	key     *rsa.PublicKey
}

func (c *cachedPublicKeyFetcher) FetchPublicKey() (*rsa.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key != nil {
		return c.key, nil
	}

	key, err := c.fetcher.FetchPublicKey()
	if err != nil {
		return nil, err
	}

	c.key = key
	return key, nil
}

// Cached keeps the first successfully parsed key. Failed fetches are retried on the next call.
func Cached(fetcher PublicKeyFetcher) PublicKeyFetcher {
	return &cachedPublicKeyFetcher{fetcher: fetcher}
}
