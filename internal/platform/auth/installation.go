package auth

import (
	"context"

	"github.com/google/uuid"
)

// InstallationVerifier trusts a client-generated installation UUID as the
// bearer token. It is meant for local development and self-hosted setups
// without Firebase; the UUID is normalized to its canonical lowercase form.
type InstallationVerifier struct{}

// Verify accepts any well-formed UUID.
func (InstallationVerifier) Verify(_ context.Context, token string) (*User, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &User{UID: id.String(), Anonymous: true}, nil
}

// Compile-time interface check
var _ Verifier = InstallationVerifier{}
