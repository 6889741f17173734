package auth

import "github.com/cyclesync/cyclesync-client/internal/domain"

// CredentialsInput is what the auth form submits.
type CredentialsInput struct {
	Email    string
	Password string
}

// Validate checks the form before any request goes out.
func (i CredentialsInput) Validate() error {
	if i.Email == "" {
		return domain.NewValidationError("email", "email is required")
	}
	if i.Password == "" {
		return domain.NewValidationError("password", "password is required")
	}
	return nil
}
