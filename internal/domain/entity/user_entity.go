package entity

import "time"

// User is the identity aggregate.
// Password holds the bcrypt hash and is never serialised to clients.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"date"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRef is the owner reference embedded in profile responses,
// populated with the owner's current name and avatar when loaded.
type UserRef struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}
