package auth

import (
	"context"

	"github.com/mmynk/groupsplit/internal/models"
)

// Authenticator registers and signs in users.
// The service layer depends on this interface so the credential scheme can change
// without touching RPC handlers.
type Authenticator interface {
	// Register creates a new account. Returns ErrEmailExists if the email is taken.
	Register(ctx context.Context, name, email, credential string) (*models.User, error)

	// Authenticate returns the user if the credential matches, or ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the scheme's rules.
	ValidateCredential(credential string) error
}
