package services

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const keyringServiceName = "jarvis"

// KeyringService keeps connection secrets in the OS keyring so they do not
// have to live in .env files.
type KeyringService struct {
}

func NewKeyringService() *KeyringService {
	return &KeyringService{}
}

func (s *KeyringService) StoreSecret(name, value string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("secret name is required")
	}
	if value == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(keyringServiceName, name, value)
}

// Secret satisfies config.SecretSource.
func (s *KeyringService) Secret(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("secret name is required")
	}
	return keyring.Get(keyringServiceName, name)
}

// DeleteSecret is a no-op for secrets that were never stored.
func (s *KeyringService) DeleteSecret(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("secret name is required")
	}
	err := keyring.Delete(keyringServiceName, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
