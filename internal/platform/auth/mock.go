package auth

import "context"

// MockVerifier accepts any token. Tests set User or Error to script the result.
type MockVerifier struct {
	User  *User
	Error error
}

func (m *MockVerifier) Verify(context.Context, string) (*User, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.User, nil
}

// TestUser returns the anonymous installation used across handler tests.
func TestUser() *User {
	return &User{UID: "test-install-123", Anonymous: true}
}

var _ Verifier = (*MockVerifier)(nil)
