// Package firebase initializes the Firebase Admin SDK clients the server needs:
// Auth for verifying installation tokens and Firestore for the key-value backend.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrNothingToInitialize is returned when neither client was requested.
var ErrNothingToInitialize = errors.New("firebase: no clients requested")

// Config holds Firebase configuration.
type Config struct {
	ProjectID                    string
	GoogleApplicationCredentials string // Path to service account JSON (optional)

	// EnableAuth and EnableFirestore select which clients to create.
	EnableAuth      bool
	EnableFirestore bool
}

// Clients holds initialized Firebase clients. A client is nil when it was
// not requested in Config.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// InitializeClients sets up the Firebase app and returns the requested clients.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	if !cfg.EnableAuth && !cfg.EnableFirestore {
		return nil, ErrNothingToInitialize
	}

	var opts []option.ClientOption
	if cfg.GoogleApplicationCredentials != "" {
		creds, err := os.ReadFile(cfg.GoogleApplicationCredentials)
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	clients := &Clients{}
	if cfg.EnableAuth {
		if clients.Auth, err = fbApp.Auth(ctx); err != nil {
			return nil, fmt.Errorf("firebase auth: %w", err)
		}
	}
	if cfg.EnableFirestore {
		if clients.Firestore, err = fbApp.Firestore(ctx); err != nil {
			return nil, fmt.Errorf("firestore: %w", err)
		}
	}
	return clients, nil
}

// Close closes the Firestore client.
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
