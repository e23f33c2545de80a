package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyringService_RoundTrip(t *testing.T) {
	keyring.MockInit()
	s := NewKeyringService()

	require.NoError(t, s.StoreSecret("database_url", "postgres://jarvis@db/jarvis"))
	got, err := s.Secret("database_url")
	require.NoError(t, err)
	assert.Equal(t, "postgres://jarvis@db/jarvis", got)

	require.NoError(t, s.DeleteSecret("database_url"))
	_, err = s.Secret("database_url")
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	assert.NoError(t, s.DeleteSecret("database_url"))
}

func TestKeyringService_Validation(t *testing.T) {
	keyring.MockInit()
	s := NewKeyringService()

	assert.EqualError(t, s.StoreSecret("", "x"), "secret name is required")
	assert.EqualError(t, s.StoreSecret("database_url", ""), "secret value is empty")
	_, err := s.Secret(" ")
	assert.EqualError(t, err, "secret name is required")
}
