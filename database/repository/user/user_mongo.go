package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reviewdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const userQueryTimeout = 5 * time.Second

// ratingFields names the summary fields a role's rating is stored under.
var ratingFields = map[models.Role][2]string{
	models.RoleAsker:   {"asker_rating", "asker_review_count"},
	models.RoleOfferer: {"offerer_rating", "offerer_review_count"},
}

// MongoUserRepo reads the users collection. Accounts are written by the auth service;
// this service only updates rating summaries.
type MongoUserRepo struct {
	coll *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) UserRepository {
	repo := &MongoUserRepo{coll: db.Collection("users")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_user_id"),
	})
	if err != nil {
		zap.L().Warn("user index creation failed", zap.Error(err))
	}
	return repo
}

// GetByIDWithProjection returns nil, nil when the user does not exist. A nil projection
// loads the whole document.
func (r *MongoUserRepo) GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, userQueryTimeout)
	defer cancel()

	opts := options.FindOne()
	if len(projection) > 0 {
		opts.SetProjection(projection)
	}

	user := &models.User{}
	err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(user)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}
	return user, nil
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.GetByIDWithProjection(ctx, id, nil)
}

// UpdateRating overwrites the rating summary of role on user id.
func (r *MongoUserRepo) UpdateRating(ctx context.Context, id string, role models.Role, summary models.RatingSummary) error {
	fields, ok := ratingFields[role]
	if !ok {
		return fmt.Errorf("no rating fields for role %q", role)
	}

	ctx, cancel := context.WithTimeout(ctx, userQueryTimeout)
	defer cancel()

	set := bson.D{
		{Key: fields[0], Value: summary.Average},
		{Key: fields[1], Value: summary.Count},
		{Key: "updated_at", Value: time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("update rating of user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update rating: user %s not found", id)
	}
	return nil
}
