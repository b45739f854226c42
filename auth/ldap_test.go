package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstCN(t *testing.T) {
	assert.Equal(t, "FULANO DE TAL", FirstCN("CN=FULANO DE TAL,OU=Gestores,DC=ebserh,DC=gov,DC=br"))
	assert.Equal(t, "Grupo X", FirstCN("cn=Grupo X,ou=Groups"))
	assert.Equal(t, "", FirstCN("OU=Sem CN,DC=ebserh"))
	assert.Equal(t, "", FirstCN(""))
}

func TestNewLDAPProviderRequiresConfig(t *testing.T) {
	_, err := NewLDAPProvider("", "", "EBSERHNET", "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewLDAPProvider("ldap://ad.example.com", "", "EBSERHNET", "", "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	p, err := NewLDAPProvider("ldap://ad.example.com", "DC=ebserh,DC=gov,DC=br", "EBSERHNET", "", "")
	assert.NoError(t, err)
	assert.NotNil(t, p)
}
