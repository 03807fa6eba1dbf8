package repository

import (
	"context"

	"mocktest-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FeedbackRepository struct {
	Col *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{Col: db.Collection("feedbacks")}
}

func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "test_id", Value: 1},
			{Key: "user_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Upsert keeps one feedback document per (test, user); re-rating replaces
// the previous rating.
func (r *FeedbackRepository) Upsert(ctx context.Context, fb *models.Feedback) error {
	filter := bson.M{"test_id": fb.TestID, "user_id": fb.UserID}
	update := bson.M{
		"$set": bson.M{
			"rating":     fb.Rating,
			"comment":    fb.Comment,
			"created_at": fb.CreatedAt,
		},
		"$setOnInsert": bson.M{
			"test_id": fb.TestID,
			"user_id": fb.UserID,
		},
	}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *FeedbackRepository) FindByTest(ctx context.Context, testID string) ([]models.Feedback, error) {
	cur, err := r.Col.Find(ctx, bson.M{"test_id": testID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var items []models.Feedback
	for cur.Next(ctx) {
		var f models.Feedback
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, cur.Err()
}
