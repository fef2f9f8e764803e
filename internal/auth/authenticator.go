package auth

import (
	"context"

	"github.com/info-mnml/Otokogi/internal/models"
)

// Authenticator abstracts over authentication methods so the service layer
// does not depend on the credential format (password today, passkeys or
// OAuth later).
type Authenticator interface {
	// Register creates a new account for the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the account.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks whether the credential meets the method's
	// requirements before any account is touched.
	ValidateCredential(credential string) error
}
