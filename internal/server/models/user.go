package models

import "time"

// User is the account record the auth collaborator scopes everything by.
type User struct {
	ID           string
	UserName     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// RefreshToken is a server-stored, rotating long-lived token.
type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}
