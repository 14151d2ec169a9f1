package dto

import "time"

// AuthUser is the identity resolved from a verified access token.
type AuthUser struct {
	UserID    int64
	Login     string
	TokenID   string
	ExpiresAt time.Time
}
