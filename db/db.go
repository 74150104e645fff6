package db

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

// HashString hashes a string with SHA-256 and returns its hex form. Used to
// derive stable Firestore document IDs.
func HashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

var (
	client     *firestore.Client
	clientOnce sync.Once
)

// InitFirestore initializes and returns the singleton Firestore client from a
// base64-encoded service account credential.
func InitFirestore(encodedCreds string) (*firestore.Client, error) {
	var initErr error

	clientOnce.Do(func() {
		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			initErr = fmt.Errorf("decode Firestore credentials: %w", err)
			return
		}

		opt := option.WithCredentialsJSON(creds)
		app, err := firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			initErr = fmt.Errorf("initialize Firebase app: %w", err)
			return
		}

		client, err = app.Firestore(context.Background())
		if err != nil {
			initErr = fmt.Errorf("get Firestore client: %w", err)
			return
		}
	})

	return client, initErr
}

// CloseFirestore closes the Firestore client.
func CloseFirestore() {
	if client != nil {
		client.Close()
	}
}
