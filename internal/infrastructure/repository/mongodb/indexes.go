package mongodb

import (
	"context"
	"fmt"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. It is safe to
// call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionTokens: {
			{Keys: bson.D{{Key: "verifier", Value: 1}}, Options: options.Index().SetSparse(true)},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "token_type", Value: 1}}},
		},
		contract.CascadeCourse: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		contract.CascadeCourseEnrollments: {
			{Keys: bson.D{{Key: "course_id", Value: 1}}},
		},
		contract.CascadeEnrollments: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "course_id", Value: 1}}},
		},
		contract.CascadeLessons: {
			{Keys: bson.D{{Key: "course_id", Value: 1}, {Key: "order", Value: 1}}},
		},
		contract.CascadeUserProgress: {
			{Keys: bson.D{{Key: "course_id", Value: 1}, {Key: "user_id", Value: 1}}},
		},
		contract.CascadeCertificates: {
			{Keys: bson.D{{Key: "verification_code", Value: 1}}, Options: options.Index().SetUnique(true).SetName(certCodeIndex)},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "course_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName(certPairIndex)},
			{Keys: bson.D{{Key: "course_id", Value: 1}}},
		},
		CollectionActivities: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		CollectionProducts: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		CollectionStats: {
			{Keys: bson.D{{Key: "taken_at", Value: -1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
