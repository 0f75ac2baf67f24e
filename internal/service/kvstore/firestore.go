package kvstore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	installationsCollection = "installations"
	keysCollection          = "keys"
)

// firestoreEntry maps to the per-key document.
type firestoreEntry struct {
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// FirestoreProvider stores each key as its own document under
// installations/{installationID}/keys/{key}.
type FirestoreProvider struct {
	client *firestore.Client
}

// NewFirestoreProvider creates a Firestore-backed provider.
func NewFirestoreProvider(client *firestore.Client) *FirestoreProvider {
	return &FirestoreProvider{client: client}
}

// Store returns the keyspace for installationID.
func (p *FirestoreProvider) Store(installationID string) Store {
	if installationID == "" {
		return errStore{err: ErrEmptyInstallation}
	}
	return &firestoreStore{
		keys: p.client.Collection(installationsCollection).Doc(installationID).Collection(keysCollection),
	}
}

type firestoreStore struct {
	keys *firestore.CollectionRef
}

func (s *firestoreStore) Get(ctx context.Context, key string) (string, bool, error) {
	doc, err := s.keys.Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", false, nil
		}
		return "", false, err
	}
	var entry firestoreEntry
	if err := doc.DataTo(&entry); err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *firestoreStore) Set(ctx context.Context, key, value string) error {
	_, err := s.keys.Doc(key).Set(ctx, firestoreEntry{
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	})
	return err
}

// Remove relies on Firestore deletes being no-ops for missing documents.
func (s *firestoreStore) Remove(ctx context.Context, key string) error {
	_, err := s.keys.Doc(key).Delete(ctx)
	return err
}

// Compile-time interface checks
var (
	_ Provider = (*FirestoreProvider)(nil)
	_ Store    = (*firestoreStore)(nil)
)
