package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderAuthenticate(t *testing.T) {
	p := NewMockProvider()

	identity, err := p.Authenticate("admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", identity.Username)
	assert.Contains(t, identity.Groups, AdminGroup)
}

func TestMockProviderRejectsEverythingElse(t *testing.T) {
	p := NewMockProvider()

	_, err := p.Authenticate("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.Authenticate("someone", "admin")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMockProviderLookup(t *testing.T) {
	p := NewMockProvider()

	identity, err := p.LookupUser("admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", identity.Username)

	_, err = p.LookupUser("someone")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
