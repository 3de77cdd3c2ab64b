package userRepo

import (
	"context"

	"reviewdesk/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID. It returns nil, nil when no user matches.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error)
	// UpdateRating stores the rating summary a user has in role.
	UpdateRating(ctx context.Context, id string, role models.Role, summary models.RatingSummary) error
}
