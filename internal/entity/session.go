package entity

import "time"

type Session struct {
	AccessToken  string
	RefreshToken string
	User         *User

	// ExpiresAt is zero when the access token carries no readable expiry.
	ExpiresAt time.Time
}

// Authenticated reports whether the session holds a token that has not
// expired at now.
func (s Session) Authenticated(now time.Time) bool {
	if s.AccessToken == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.IsAdmin
}
