package models

import "time"

// AccessToken is one opaque bearer credential of a user. A user may
// hold several at once (one per device); logout revokes them all.
type AccessToken struct {
	ID        int64
	UserID    int64
	TokenHash string
	CreatedAt time.Time
}
