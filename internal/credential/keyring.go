package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"github.com/nhle/meeting-tracker/internal/model"
)

const serviceName = "tracker"

// ServiceKeyName is the keyring entry holding the REST data service key.
const ServiceKeyName = "service-key"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/tracker/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("tracker-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Store reads and writes credentials in one keyring.
type Store struct {
	ring keyring.Keyring
}

// Open returns a Store over the system keyring.
func Open() (*Store, error) {
	ring, err := openKeyring()
	if err != nil {
		return nil, err
	}
	return NewStore(ring), nil
}

// NewStore wraps an existing keyring, e.g. keyring.NewArrayKeyring in tests.
func NewStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Get retrieves a credential value by key. A missing key yields "" and
// no error.
func (s *Store) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores a credential value by key.
func (s *Store) Set(key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "Meeting Tracker " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes a credential by key. Removing a missing key is not an
// error.
func (s *Store) Delete(key string) error {
	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}

// ResolveServiceKey fills cfg.ServiceKey from the keyring when the REST
// backend is selected and no key came from the config file or
// environment.
func (s *Store) ResolveServiceKey(cfg *model.BackendConfig) error {
	if cfg.Driver != model.DriverREST || cfg.ServiceKey != "" {
		return nil
	}
	key, err := s.Get(ServiceKeyName)
	if err != nil {
		return err
	}
	cfg.ServiceKey = key
	return nil
}
