package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reviewdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	bookingsCollection = "bookings"
	reviewsCollection  = "reviews"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{coll: db.Collection(bookingsCollection)}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func (repo *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a booking document by ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// sideField maps a role to the booking field holding that participant.
func sideField(role models.Role) string {
	if role == models.RoleOfferer {
		return "provider_id"
	}
	return "user_id"
}

// GetUnreviewed joins each candidate booking with the reviews userID wrote for it and
// keeps only bookings without one.
func (repo *MongoBookingRepo) GetUnreviewed(ctx context.Context, role models.Role, userID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Aggregate(ctx, unreviewedPipeline(role, userID))
	if err != nil {
		return nil, fmt.Errorf("aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding unreviewed bookings: %w", err)
	}
	return bookings, nil
}

func unreviewedPipeline(role models.Role, userID string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			sideField(role): userID,
			"status":        bson.M{"$in": models.ReviewableStatuses},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": reviewsCollection,
			"let":  bson.M{"bookingId": "$id"},
			"pipeline": mongo.Pipeline{
				{{Key: "$match", Value: bson.M{
					"$expr": bson.M{"$and": bson.A{
						bson.M{"$eq": bson.A{"$booking_id", "$$bookingId"}},
						bson.M{"$eq": bson.A{"$author_id", userID}},
					}},
				}}},
				{{Key: "$limit", Value: 1}},
			},
			"as": "own_reviews",
		}}},
		{{Key: "$match", Value: bson.M{"own_reviews": bson.M{"$size": 0}}}},
		{{Key: "$project", Value: bson.M{"own_reviews": 0, "_id": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}, {Key: "end", Value: -1}}}},
	}
}
