package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"go-airwatch/types"
)

// SaveLookup records one user-initiated AQI query.
func SaveLookup(ctx context.Context, client *firestore.Client, lookup types.Lookup) (string, error) {
	ref, _, err := client.Collection("lookups").Add(ctx, lookup)
	if err != nil {
		return "", fmt.Errorf("failed to save lookup for %s: %w", lookup.UID, err)
	}
	return ref.ID, nil
}

// GetLookupsForUser lists a user's saved AQI lookups, newest first.
func GetLookupsForUser(ctx context.Context, client *firestore.Client, uid string) ([]types.Lookup, error) {
	var lookups []types.Lookup

	iter := client.Collection("lookups").
		Where("uid", "==", uid).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating lookups: %w", err)
		}

		var lookup types.Lookup
		if err := doc.DataTo(&lookup); err != nil {
			return nil, fmt.Errorf("error converting document %s to Lookup: %w", doc.Ref.ID, err)
		}
		lookup.ID = doc.Ref.ID
		lookups = append(lookups, lookup)
	}

	return lookups, nil
}

// SaveAssessment stores a health self-assessment.
func SaveAssessment(ctx context.Context, client *firestore.Client, assessment types.Assessment) (string, error) {
	ref, _, err := client.Collection("assessments").Add(ctx, assessment)
	if err != nil {
		return "", fmt.Errorf("failed to save assessment for %s: %w", assessment.UID, err)
	}
	return ref.ID, nil
}

// GetLatestAssessment returns the user's most recent self-assessment.
func GetLatestAssessment(ctx context.Context, client *firestore.Client, uid string) (types.Assessment, error) {
	var assessment types.Assessment

	docs, err := client.Collection("assessments").
		Where("uid", "==", uid).
		OrderBy("createdAt", firestore.Desc).
		Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return assessment, fmt.Errorf("error querying assessments: %w", err)
	}
	if len(docs) == 0 {
		return assessment, fmt.Errorf("no assessment on file for %s", uid)
	}

	if err := docs[0].DataTo(&assessment); err != nil {
		return assessment, fmt.Errorf("error converting document to Assessment: %w", err)
	}
	assessment.ID = docs[0].Ref.ID
	return assessment, nil
}

// SaveReport persists a generated health advisory.
func SaveReport(ctx context.Context, client *firestore.Client, report types.Report) (string, error) {
	ref, _, err := client.Collection("reports").Add(ctx, report)
	if err != nil {
		return "", fmt.Errorf("failed to save report for %s: %w", report.UID, err)
	}
	return ref.ID, nil
}

// GetReport fetches one stored report by ID.
func GetReport(ctx context.Context, client *firestore.Client, reportID string) (types.Report, error) {
	var report types.Report

	doc, err := client.Collection("reports").Doc(reportID).Get(ctx)
	if err != nil {
		return report, err
	}
	if err := doc.DataTo(&report); err != nil {
		return report, fmt.Errorf("error converting document to Report: %w", err)
	}
	report.ID = doc.Ref.ID
	return report, nil
}

// GetReportsForUser lists a user's stored reports, newest first.
func GetReportsForUser(ctx context.Context, client *firestore.Client, uid string) ([]types.Report, error) {
	var reports []types.Report

	iter := client.Collection("reports").
		Where("uid", "==", uid).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating reports: %w", err)
		}

		var report types.Report
		if err := doc.DataTo(&report); err != nil {
			return nil, fmt.Errorf("error converting document %s to Report: %w", doc.Ref.ID, err)
		}
		report.ID = doc.Ref.ID
		reports = append(reports, report)
	}

	return reports, nil
}
