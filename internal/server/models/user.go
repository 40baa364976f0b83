// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// MemberProjection is the only view of a user exposed through a project.
type MemberProjection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Projection strips everything but the display fields.
func (u *User) Projection() MemberProjection {
	return MemberProjection{ID: u.ID, Name: u.Name, Email: u.Email}
}
