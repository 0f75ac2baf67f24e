package auth

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"
)

const anonymousProvider = "anonymous"

// firebaseErrors is checked in order; the first matching predicate wins.
var firebaseErrors = []struct {
	is  func(error) bool
	err error
}{
	{fbauth.IsCertificateFetchFailed, ErrCertificateFetch},
	{fbauth.IsIDTokenExpired, ErrTokenExpired},
	{fbauth.IsIDTokenRevoked, ErrTokenRevoked},
	{fbauth.IsUserDisabled, ErrUserDisabled},
}

// FirebaseVerifier checks Firebase ID tokens. The mobile app signs in
// anonymously on first launch, so the Firebase UID is stable for the
// lifetime of the installation.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier wraps an Admin SDK auth client.
func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// Verify validates idToken, including a revocation check.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*User, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		for _, fe := range firebaseErrors {
			if fe.is(err) {
				return nil, fe.err
			}
		}
		return nil, ErrInvalidToken
	}

	email, _ := token.Claims["email"].(string)
	return &User{
		UID:       token.UID,
		Email:     email,
		Anonymous: token.Firebase.SignInProvider == anonymousProvider,
	}, nil
}

var _ Verifier = (*FirebaseVerifier)(nil)
