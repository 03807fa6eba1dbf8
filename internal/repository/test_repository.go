package repository

import (
	"context"
	"errors"
	"time"

	"mocktest-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TestRepository struct {
	Col *mongo.Collection
}

func NewTestRepository(db *mongo.Database) *TestRepository {
	return &TestRepository{Col: db.Collection("tests")}
}

// EnsureIndexes creates the unique link-token index. Called once at startup.
func (r *TestRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "link_token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *TestRepository) Create(ctx context.Context, test *models.Test) error {
	if test.ID == "" {
		test.ID = primitive.NewObjectID().Hex()
	}
	test.CreatedAt = time.Now().UTC()
	test.UpdatedAt = test.CreatedAt
	if test.RegisteredUsers == nil {
		test.RegisteredUsers = []string{}
	}
	_, err := r.Col.InsertOne(ctx, test)
	return err
}

func (r *TestRepository) FindByID(ctx context.Context, id string) (*models.Test, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *TestRepository) FindByLink(ctx context.Context, token string) (*models.Test, error) {
	return r.findOne(ctx, bson.M{"link_token": token})
}

func (r *TestRepository) findOne(ctx context.Context, filter bson.M) (*models.Test, error) {
	var test models.Test
	err := r.Col.FindOne(ctx, filter).Decode(&test)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) Update(ctx context.Context, id string, update bson.M) error {
	update["updated_at"] = time.Now().UTC()
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *TestRepository) Delete(ctx context.Context, id string) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// AddRegistration adds userID to the registration set as a single atomic
// update, so concurrent requests cannot lose writes. $addToSet makes the
// operation idempotent. Returns the updated registration count.
func (r *TestRepository) AddRegistration(ctx context.Context, id, userID string) (int, error) {
	return r.updateRegistration(ctx, id, bson.M{"$addToSet": bson.M{"registered_users": userID}})
}

// RemoveRegistration removes userID with an atomic $pull; a no-op when the
// user was never registered.
func (r *TestRepository) RemoveRegistration(ctx context.Context, id, userID string) (int, error) {
	return r.updateRegistration(ctx, id, bson.M{"$pull": bson.M{"registered_users": userID}})
}

func (r *TestRepository) updateRegistration(ctx context.Context, id string, update bson.M) (int, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var test models.Test
	err := r.Col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&test)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, models.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return test.RegistrationCount(), nil
}

func (r *TestRepository) FindByCreator(ctx context.Context, userID string) ([]models.Test, error) {
	return r.findAll(ctx, bson.M{"created_by": userID})
}

func (r *TestRepository) FindByRegisteredUser(ctx context.Context, userID string) ([]models.Test, error) {
	return r.findAll(ctx, bson.M{"registered_users": userID})
}

func (r *TestRepository) findAll(ctx context.Context, filter bson.M) ([]models.Test, error) {
	cur, err := r.Col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var tests []models.Test
	for cur.Next(ctx) {
		var t models.Test
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, cur.Err()
}
