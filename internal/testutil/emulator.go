// Package testutil connects tests to the local Firebase emulators.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

const (
	AuthEmulatorHost      = "127.0.0.1:7110"
	FirestoreEmulatorHost = "127.0.0.1:7130"
	ProjectID             = "demo-test-project"
	fakeAPIKey            = "fake-api-key" //nolint:gosec // Test-only fake key for emulator
)

func reachable(host string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", host)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// SkipIfFirestoreUnavailable skips the test unless the Firestore emulator is listening.
func SkipIfFirestoreUnavailable(t *testing.T) {
	t.Helper()
	if !reachable(FirestoreEmulatorHost) {
		t.Skip("Firestore emulator not available")
	}
}

// SkipIfEmulatorUnavailable skips the test unless both Auth and Firestore emulators are listening.
func SkipIfEmulatorUnavailable(t *testing.T) {
	t.Helper()
	if !reachable(AuthEmulatorHost) || !reachable(FirestoreEmulatorHost) {
		t.Skip("Firebase emulators not available")
	}
}

// SetupEmulator points the Admin SDK at the emulators for the rest of the test.
func SetupEmulator(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_AUTH_EMULATOR_HOST", AuthEmulatorHost)
	t.Setenv("FIRESTORE_EMULATOR_HOST", FirestoreEmulatorHost)
}

// emulatorCall sends a request to an emulator REST endpoint and decodes the
// JSON reply into out when out is non-nil.
func emulatorCall(t *testing.T, method, url string, body, out any) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("encode emulator request: %v", err)
		}
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, &payload)
	if err != nil {
		t.Fatalf("build emulator request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= http.StatusBadRequest {
		t.Fatalf("%s %s: status %d", method, url, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode emulator response: %v", err)
		}
	}
}

// ClearAccounts removes every account from the Auth emulator.
func ClearAccounts(t *testing.T) {
	t.Helper()
	emulatorCall(t, http.MethodDelete,
		fmt.Sprintf("http://%s/emulator/v1/projects/%s/accounts", AuthEmulatorHost, ProjectID), nil, nil)
}

// ClearFirestore removes every document from the Firestore emulator.
func ClearFirestore(t *testing.T) {
	t.Helper()
	emulatorCall(t, http.MethodDelete,
		fmt.Sprintf("http://%s/emulator/v1/projects/%s/databases/(default)/documents", FirestoreEmulatorHost, ProjectID),
		nil, nil)
}

// SignUpResponse is the identity toolkit reply for a new account.
type SignUpResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
}

func signUp(t *testing.T, body map[string]any) *SignUpResponse {
	t.Helper()
	var out SignUpResponse
	emulatorCall(t, http.MethodPost,
		fmt.Sprintf("http://%s/identitytoolkit.googleapis.com/v1/accounts:signUp?key=%s", AuthEmulatorHost, fakeAPIKey),
		body, &out)
	return &out
}

// CreateTestUser registers an email/password account and returns its ID token.
func CreateTestUser(t *testing.T, email, password string) *SignUpResponse {
	t.Helper()
	return signUp(t, map[string]any{"email": email, "password": password, "returnSecureToken": true})
}

// SignInAnonymously creates an anonymous account the way the mobile app does
// on first launch.
func SignInAnonymously(t *testing.T) *SignUpResponse {
	t.Helper()
	return signUp(t, map[string]any{"returnSecureToken": true})
}

func newEmulatorApp(t *testing.T) *firebase.App {
	t.Helper()
	SetupEmulator(t)
	app, err := firebase.NewApp(context.Background(), &firebase.Config{ProjectID: ProjectID})
	if err != nil {
		t.Fatalf("failed to create firebase app: %v", err)
	}
	return app
}

// NewAuthClient returns an Auth client bound to the emulator.
func NewAuthClient(t *testing.T) *auth.Client {
	t.Helper()
	client, err := newEmulatorApp(t).Auth(context.Background())
	if err != nil {
		t.Fatalf("failed to create auth client: %v", err)
	}
	return client
}

// NewFirestoreClient returns a Firestore client bound to the emulator and
// closes it when the test ends.
func NewFirestoreClient(t *testing.T) *firestore.Client {
	t.Helper()
	client, err := newEmulatorApp(t).Firestore(context.Background())
	if err != nil {
		t.Fatalf("failed to create firestore client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
