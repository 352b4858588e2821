package config

import (
	"encoding/base64"
	"fmt"
	"strings"

	gokeyring "github.com/zalando/go-keyring"
)

const (
	keyringService = "gitwiz"
	keyringAccount = "api-key"

	schemeKeyring = "keyring:"
	schemePlain   = "plain:"
)

// Keyring is the slice of the platform keychain the Store needs. Tests
// substitute an in-memory implementation to simulate keychain failures.
type Keyring interface {
	Set(service, account, secret string) error
	Get(service, account string) (string, error)
}

type systemKeyring struct{}

// SystemKeyring returns the platform keychain.
func SystemKeyring() Keyring {
	return systemKeyring{}
}

func (systemKeyring) Set(service, account, secret string) error {
	return gokeyring.Set(service, account, secret)
}

func (systemKeyring) Get(service, account string) (string, error) {
	return gokeyring.Get(service, account)
}

// encodeAPIKey prefers the keychain and falls back to a visible plain
// encoding when the keychain errors. The scheme prefix makes the
// fallback apparent in the stored document.
func encodeAPIKey(kr Keyring, key string) (encoded string, fallback bool) {
	if err := kr.Set(keyringService, keyringAccount, key); err == nil {
		return schemeKeyring + keyringAccount, false
	}
	return schemePlain + base64.StdEncoding.EncodeToString([]byte(key)), true
}

// decodeAPIKey resolves a stored reference back to the key. An empty
// reference resolves to an empty key.
func decodeAPIKey(kr Keyring, encoded string) (string, error) {
	switch {
	case encoded == "":
		return "", nil
	case strings.HasPrefix(encoded, schemeKeyring):
		key, err := kr.Get(keyringService, strings.TrimPrefix(encoded, schemeKeyring))
		if err != nil {
			return "", fmt.Errorf("failed to read the API key from the keychain: %w", err)
		}
		return key, nil
	case strings.HasPrefix(encoded, schemePlain):
		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(encoded, schemePlain))
		if err != nil {
			return "", fmt.Errorf("failed to decode the stored API key: %w", err)
		}
		return string(raw), nil
	default:
		// Do not echo the stored value: a malformed entry may still
		// hold a real key.
		return "", fmt.Errorf("unrecognized API key encoding in config")
	}
}

// KeyStorageDescription names where the stored API key reference points,
// for diagnostic output.
func KeyStorageDescription(settings *Settings) string {
	switch {
	case settings.EncryptedAPIKey == "":
		return "not set"
	case strings.HasPrefix(settings.EncryptedAPIKey, schemeKeyring):
		return "system keychain"
	default:
		return "config file (visible encoding)"
	}
}
