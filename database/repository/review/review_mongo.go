package reviewRepo

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

const uniqueBookingAuthorIndex = "uniq_booking_author"

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo(db *mongo.Database) ReviewRepository {
	repo := &MongoReviewRepo{coll: db.Collection("reviews")}

	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("review index creation failed", zap.Error(err))
	}
	return repo
}

// ensureIndexes creates reviewIndexes on the collection.
func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.coll.Indexes().CreateMany(ctx, reviewIndexes()); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// reviewIndexes lists the lookup indexes and the (booking, author) uniqueness constraint.
func reviewIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}, {Key: "author_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(uniqueBookingAuthorIndex),
		},
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "author_role", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "recipient_role", Value: 1}, {Key: "created_at", Value: -1}}},
	}
}

// FindByBookingAndAuthor retrieves the review authorID left on bookingID.
func (r *MongoReviewRepo) FindByBookingAndAuthor(ctx context.Context, bookingID, authorID string) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var review models.Review
	filter := bson.M{"booking_id": bookingID, "author_id": authorID}
	if err := r.coll.FindOne(ctx, filter).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review for booking %s: %w", bookingID, err)
	}
	return &review, nil
}

// Create inserts a new review document.
func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ListByAuthor returns the reviews authorID wrote as role.
func (r *MongoReviewRepo) ListByAuthor(ctx context.Context, authorID string, role models.Role) ([]models.Review, error) {
	return r.find(ctx, listFilter("author", authorID, role))
}

// ListByRecipient returns the reviews recipientID received as role.
func (r *MongoReviewRepo) ListByRecipient(ctx context.Context, recipientID string, role models.Role) ([]models.Review, error) {
	return r.find(ctx, listFilter("recipient", recipientID, role))
}

// listFilter matches the submitted reviews where userID is the given side ("author" or
// "recipient") acting as role. Drafts never show up in listings.
func listFilter(side, userID string, role models.Role) bson.M {
	return bson.M{
		side + "_id":   userID,
		side + "_role": role,
		"status":       models.ReviewStatusSubmitted,
	}
}

func (r *MongoReviewRepo) find(ctx context.Context, filter bson.M) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// SummaryForRecipient computes average rating and count for recipientID in role.
func (r *MongoReviewRepo) SummaryForRecipient(ctx context.Context, recipientID string, role models.Role) (models.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: listFilter("recipient", recipientID, role)}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.RatingSummary
	if err := cursor.All(ctx, &results); err != nil {
		return models.RatingSummary{}, fmt.Errorf("error decoding aggregation result: %w", err)
	}
	if len(results) == 0 {
		return models.RatingSummary{}, nil
	}
	return results[0], nil
}
