// Package models defines client-side data models used by the moviedb CLI.
package models

import "time"

// User is a local account. It is created by registration and never mutated.
type User struct {
	ID       string
	Username string
	Email    string

	// PasswordHash is the encoded credential produced by cryptox.HashPassword.
	PasswordHash string

	CreatedAt time.Time
}
