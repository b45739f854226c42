package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDirectoryUnavailable = errors.New("directory server is down or unreachable")
	ErrNotConfigured        = errors.New("authentication is not configured")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrUserNotFound         = errors.New("user not found in directory")
)

// Identity holds the attributes the directory returns for a user
type Identity struct {
	Username       string
	DisplayName    string
	Email          string
	Department     string
	ManagerDN      string
	Title          string
	EmployeeNumber string
	Groups         []string
}

// Provider authenticates credentials against a directory (or a mock).
// Implementations must release every directory connection they open,
// including on error paths.
type Provider interface {
	// Authenticate validates the credential pair and returns the user's
	// directory attributes, group memberships included.
	Authenticate(username, password string) (*Identity, error)

	// LookupUser fetches directory attributes without a credential check.
	// Requires a configured service account on directory-backed providers.
	LookupUser(username string) (*Identity, error)
}
