package domain

import "time"

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	// ProviderLocal marks accounts created through email/password registration.
	ProviderLocal AuthProvider = "LOCAL"
	// ProviderGoogle marks accounts created or linked through Google sign-in.
	ProviderGoogle AuthProvider = "GOOGLE"
)

// Role values assigned to users. A user holds exactly one role.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents one account. PasswordHash is empty for pure OAuth accounts;
// ProviderID is empty for pure local accounts. Both may be set after linking.
type User struct {
	UserID       string       `json:"userID"`
	Email        string       `json:"email"`
	Username     string       `json:"username"`
	Name         string       `json:"name"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"role"`
	Picture      string       `json:"picture,omitempty"`
	Provider     AuthProvider `json:"provider"`
	ProviderID   string       `json:"providerID,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// OAuthAssertion is a verified third-party identity assertion, produced by the
// upstream OAuth2 handshake after ID-token validation.
type OAuthAssertion struct {
	Provider   AuthProvider
	ProviderID string
	Email      string
	Name       string
	Picture    string
}
