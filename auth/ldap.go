package auth

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// LDAPProvider authenticates against Active Directory. The user's own
// credentials perform the first bind; when a service account is
// configured, a second connection runs the group search so that
// restricted users still resolve their memberships.
type LDAPProvider struct {
	URL          string
	BaseDN       string
	BindDomain   string
	BindUser     string
	BindPassword string
}

// NewLDAPProvider validates directory configuration up front
func NewLDAPProvider(url, baseDN, bindDomain, bindUser, bindPassword string) (*LDAPProvider, error) {
	if url == "" || baseDN == "" {
		return nil, fmt.Errorf("%w: AD_URL and AD_BASEDN are required", ErrNotConfigured)
	}
	return &LDAPProvider{
		URL:          url,
		BaseDN:       baseDN,
		BindDomain:   bindDomain,
		BindUser:     bindUser,
		BindPassword: bindPassword,
	}, nil
}

func (p *LDAPProvider) Authenticate(username, password string) (*Identity, error) {
	conn, err := ldap.DialURL(p.URL)
	if err != nil {
		return nil, ErrDirectoryUnavailable
	}
	defer conn.Close()

	userBindDN := fmt.Sprintf("%s\\%s", p.BindDomain, username)
	if err := conn.Bind(userBindDN, password); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("directory bind error: %w", err)
	}

	// Search on the user's own connection unless a service account exists.
	searchConn := conn
	if p.BindUser != "" && p.BindPassword != "" {
		sc, err := ldap.DialURL(p.URL)
		if err != nil {
			return nil, ErrDirectoryUnavailable
		}
		defer sc.Close()
		if err := sc.Bind(p.BindUser, p.BindPassword); err != nil {
			return nil, fmt.Errorf("service account bind error: %w", err)
		}
		searchConn = sc
	}

	identity, err := p.searchUser(searchConn, username)
	if err != nil {
		return nil, err
	}

	log.Printf("AD authentication successful for user %s", username)
	return identity, nil
}

func (p *LDAPProvider) LookupUser(username string) (*Identity, error) {
	if p.BindUser == "" || p.BindPassword == "" {
		return nil, fmt.Errorf("%w: user lookup requires a configured AD service account", ErrNotConfigured)
	}

	conn, err := ldap.DialURL(p.URL)
	if err != nil {
		return nil, ErrDirectoryUnavailable
	}
	defer conn.Close()

	if err := conn.Bind(p.BindUser, p.BindPassword); err != nil {
		return nil, fmt.Errorf("service account bind error: %w", err)
	}

	return p.searchUser(conn, username)
}

func (p *LDAPProvider) searchUser(conn *ldap.Conn, username string) (*Identity, error) {
	req := ldap.NewSearchRequest(
		p.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		fmt.Sprintf("(&(objectClass=user)(sAMAccountName=%s))", ldap.EscapeFilter(username)),
		[]string{"*"},
		nil,
	)

	res, err := conn.Search(req)
	if err != nil {
		return nil, fmt.Errorf("directory search error: %w", err)
	}
	if len(res.Entries) == 0 {
		return nil, ErrUserNotFound
	}

	entry := res.Entries[0]
	identity := &Identity{
		Username:       username,
		DisplayName:    entry.GetAttributeValue("displayName"),
		Email:          entry.GetAttributeValue("mail"),
		Department:     entry.GetAttributeValue("department"),
		ManagerDN:      entry.GetAttributeValue("manager"),
		Title:          entry.GetAttributeValue("title"),
		EmployeeNumber: entry.GetAttributeValue("employeeNumber"),
	}

	for _, groupDN := range entry.GetAttributeValues("memberOf") {
		if cn := FirstCN(groupDN); cn != "" {
			identity.Groups = append(identity.Groups, cn)
		}
	}

	return identity, nil
}

// FirstCN extracts the first CN= component of a distinguished name.
// Returns "" when the DN carries none.
func FirstCN(dn string) string {
	for _, part := range strings.Split(dn, ",") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(strings.ToUpper(part), "CN=") {
			return part[3:]
		}
	}
	return ""
}
