package domain

// TokenExpirationHours is the fixed lifetime of issued bearer tokens.
const TokenExpirationHours = 1

// AuthResult is returned by a successful login.
type AuthResult struct {
	Token                string `json:"token"`
	User                 *User  `json:"user"`
	TokenExpirationHours int    `json:"tokenExpirationHours"`
}

// DeleteResult is returned by a successful employee deletion.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}
