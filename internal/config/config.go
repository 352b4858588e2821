package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const configFileName = "config.json"

// Settings is the persisted provider configuration.
type Settings struct {
	Provider        string `json:"provider,omitempty"`
	Model           string `json:"model,omitempty"`
	EncryptedAPIKey string `json:"encryptedApiKey,omitempty"`
}

// Path returns the settings file location. GITWIZ_CONFIG_DIR overrides
// the platform default, which tests rely on to stay isolated.
func Path() (string, error) {
	if dir := os.Getenv("GITWIZ_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, "gitwiz", configFileName), nil
}

// Store reads and writes Settings. Settings are parsed once per process
// and cached; Save refreshes the cache, so a load after a save reflects
// the new values within the same run.
type Store struct {
	path    string
	keyring Keyring

	mu     sync.Mutex
	cached *Settings
}

// NewStore creates a Store at the default path, backed by the platform
// keychain.
func NewStore() (*Store, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return NewStoreAt(path, SystemKeyring()), nil
}

// NewStoreAt creates a Store at an explicit path with an explicit
// keychain. Tests use it to simulate an unavailable keychain.
func NewStoreAt(path string, keyring Keyring) *Store {
	return &Store{path: path, keyring: keyring}
}

// Load returns the persisted settings. A missing file yields empty
// settings, not an error.
func (s *Store) Load() (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		copied := *s.cached
		return &copied, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	s.cached = &settings
	copied := settings
	return &copied, nil
}

// Save persists settings and refreshes the load cache.
func (s *Store) Save(settings *Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	copied := *settings
	s.cached = &copied
	return nil
}

// SetAPIKey records key in settings, preferring the keychain. The
// returned flag reports that the keychain was unavailable and the key
// fell back to the visible plain encoding; callers warn on it.
func (s *Store) SetAPIKey(settings *Settings, key string) bool {
	encoded, fallback := encodeAPIKey(s.keyring, key)
	settings.EncryptedAPIKey = encoded
	return fallback
}

// APIKey resolves the API key referenced by settings. An unset key
// resolves to an empty string.
func (s *Store) APIKey(settings *Settings) (string, error) {
	return decodeAPIKey(s.keyring, settings.EncryptedAPIKey)
}

// RedactKey returns a short fixed-length prefix of key for diagnostics.
// The full key must never appear in any output.
func RedactKey(key string) string {
	const visible = 6
	if key == "" {
		return ""
	}
	if len(key) <= visible {
		return "******"
	}
	return key[:visible] + "…"
}
