package domain

// Principal is the authenticated identity attached to a request after token
// validation. The two variants correspond to the account's login path; both
// expose the same capability set so nothing downstream branches on the shape.
type Principal interface {
	UserID() string
	Subject() string
	Role() string
	DisplayName() string
	Avatar() string
}

// LocalPrincipal is the principal for email/password accounts.
type LocalPrincipal struct {
	user User
}

// OAuth2Principal is the principal for third-party provider accounts.
type OAuth2Principal struct {
	user User
}

// NewPrincipal resolves the principal variant from the user's provider. This
// happens exactly once, in the request authenticator.
func NewPrincipal(user User) Principal {
	if user.Provider == ProviderGoogle {
		return OAuth2Principal{user: user}
	}
	return LocalPrincipal{user: user}
}

func (p LocalPrincipal) UserID() string      { return p.user.UserID }
func (p LocalPrincipal) Subject() string     { return p.user.Email }
func (p LocalPrincipal) Role() string        { return p.user.Role }
func (p LocalPrincipal) DisplayName() string { return p.user.Name }
func (p LocalPrincipal) Avatar() string      { return p.user.Picture }

func (p OAuth2Principal) UserID() string      { return p.user.UserID }
func (p OAuth2Principal) Subject() string     { return p.user.Email }
func (p OAuth2Principal) Role() string        { return p.user.Role }
func (p OAuth2Principal) DisplayName() string { return p.user.Name }
func (p OAuth2Principal) Avatar() string      { return p.user.Picture }
