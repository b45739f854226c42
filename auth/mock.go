package auth

import "log"

// AdminGroup is the directory group that maps to the UDP role. The mock
// provider hands it out so a development login gets full access.
const AdminGroup = "GLO-SEC-HCPE-SETISD"

// MockProvider accepts exactly admin/admin and returns a canned
// administrator identity. Used when no directory is configured.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Authenticate(username, password string) (*Identity, error) {
	if username != "admin" || password != "admin" {
		log.Printf("Mock authentication failed for user %s", username)
		return nil, ErrInvalidCredentials
	}

	log.Printf("Mock authentication successful for user %s", username)
	return p.adminIdentity(), nil
}

func (p *MockProvider) LookupUser(username string) (*Identity, error) {
	if username != "admin" {
		return nil, ErrUserNotFound
	}
	return p.adminIdentity(), nil
}

func (p *MockProvider) adminIdentity() *Identity {
	return &Identity{
		Username:    "admin",
		DisplayName: "Mock Admin",
		Email:       "admin@mock.com",
		Groups:      []string{AdminGroup, "Users"},
	}
}
