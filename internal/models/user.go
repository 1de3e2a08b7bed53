package models

import "time"

type User struct {
	ID    int64
	Name  string
	Email string
	// Password holds the argon2id hash, never the plaintext.
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
