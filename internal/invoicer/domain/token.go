package domain

import "time"

// TokenPair is what a successful login hands back. RefreshToken is empty when
// the pair comes from a refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // always "Bearer"
	ExpiresIn    time.Duration
}
