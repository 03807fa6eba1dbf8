package repository

import (
	"context"
	"errors"

	"mocktest-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmissionRepository struct {
	Col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{Col: db.Collection("submissions")}
}

// EnsureIndexes creates the unique (test_id, user_id) index that backs the
// at-most-one-submission invariant.
func (r *SubmissionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "test_id", Value: 1},
			{Key: "user_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Upsert creates or overwrites the (test, user) submission as one atomic
// operation, so duplicate-tab submissions cannot produce two documents.
func (r *SubmissionRepository) Upsert(ctx context.Context, sub *models.Submission) error {
	filter := bson.M{"test_id": sub.TestID, "user_id": sub.UserID}
	update := bson.M{
		"$set": bson.M{
			"user_name":    sub.UserName,
			"answers":      sub.Answers,
			"submitted_at": sub.SubmittedAt,
		},
		"$setOnInsert": bson.M{
			"test_id": sub.TestID,
			"user_id": sub.UserID,
		},
	}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *SubmissionRepository) FindByTestAndUser(ctx context.Context, testID, userID string) (*models.Submission, error) {
	var sub models.Submission
	err := r.Col.FindOne(ctx, bson.M{"test_id": testID, "user_id": userID}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepository) FindByTest(ctx context.Context, testID string) ([]models.Submission, error) {
	cur, err := r.Col.Find(ctx, bson.M{"test_id": testID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var subs []models.Submission
	for cur.Next(ctx) {
		var s models.Submission
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, cur.Err()
}
