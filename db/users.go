package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"go-airwatch/types"
)

// GetUser fetches one account document by UID.
func GetUser(ctx context.Context, client *firestore.Client, uid string) (types.UserData, error) {
	var user types.UserData

	doc, err := client.Collection("users").Doc(uid).Get(ctx)
	if err != nil {
		return user, err
	}
	if err := doc.DataTo(&user); err != nil {
		return user, fmt.Errorf("error converting document to UserData: %w", err)
	}
	user.UID = doc.Ref.ID
	return user, nil
}

// GetAlertEligibleUsers returns every user with both a phone number and a
// home location on file. Firestore cannot express two inequality filters on
// different fields, so eligibility is checked client-side.
func GetAlertEligibleUsers(ctx context.Context, client *firestore.Client) ([]types.UserData, error) {
	var eligible []types.UserData

	iter := client.Collection("users").Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating users: %w", err)
		}

		var user types.UserData
		if err := doc.DataTo(&user); err != nil {
			return nil, fmt.Errorf("error converting document %s to UserData: %w", doc.Ref.ID, err)
		}
		user.UID = doc.Ref.ID

		if user.AlertEligible() {
			eligible = append(eligible, user)
		}
	}

	return eligible, nil
}
