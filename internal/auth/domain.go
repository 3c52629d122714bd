// Package auth orchestrates login, registration and profile verification
// against the upstream backend.
package auth

// Credentials is the login payload. The backend authenticates by user
// name, not email.
type Credentials struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up payload.
type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
