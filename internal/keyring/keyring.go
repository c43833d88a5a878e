package keyring

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/logger"
)

var (
	// ErrNotFound is returned when no token is stored
	ErrNotFound = errors.New("token not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Store persists the session token in the OS keyring, falling back to a
// mode-0600 file under the config directory when no keyring service is
// reachable (headless hosts, CI).
type Store struct {
	configDir string
}

// New returns a token store rooted at the given config directory.
func New(configDir string) *Store {
	return &Store{configDir: configDir}
}

func (s *Store) tokenFile() string {
	return filepath.Join(s.configDir, "token")
}

// Get retrieves the stored session token.
// Returns ErrNotFound if no token is stored anywhere.
func (s *Store) Get() (string, error) {
	token, err := keyring.Get(constants.AppName, constants.KeyringTokenUser)
	if err == nil {
		return token, nil
	}
	if err != keyring.ErrNotFound {
		logger.Debug("OS keyring unavailable, trying token file", "error", err)
	}

	data, ferr := os.ReadFile(s.tokenFile())
	if ferr != nil {
		if os.IsNotExist(ferr) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read token file: %w", ferr)
	}
	token = strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotFound
	}
	return token, nil
}

// Set stores the session token.
func (s *Store) Set(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	err := keyring.Set(constants.AppName, constants.KeyringTokenUser, token)
	if err == nil {
		return nil
	}
	logger.Debug("OS keyring unavailable, writing token file", "error", err)

	if mkErr := os.MkdirAll(s.configDir, 0700); mkErr != nil {
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, mkErr)
	}
	if wErr := os.WriteFile(s.tokenFile(), []byte(token), 0600); wErr != nil {
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, wErr)
	}
	return nil
}

// Delete removes the stored session token from both backends.
// Missing entries are not an error: logout must always succeed locally.
func (s *Store) Delete() error {
	kerr := keyring.Delete(constants.AppName, constants.KeyringTokenUser)
	if kerr != nil && kerr != keyring.ErrNotFound {
		logger.Debug("keyring delete failed", "error", kerr)
	}
	ferr := os.Remove(s.tokenFile())
	if ferr != nil && !os.IsNotExist(ferr) {
		return fmt.Errorf("failed to delete token file: %w", ferr)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
