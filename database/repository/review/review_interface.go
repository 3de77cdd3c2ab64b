package reviewRepo

import (
	"context"
	"errors"

	"reviewdesk/models"
)

// ErrDuplicateReview is returned by Create when the author already reviewed the booking.
var ErrDuplicateReview = errors.New("review already exists for this booking and author")

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// FindByBookingAndAuthor returns the review authorID wrote for bookingID, or nil, nil.
	FindByBookingAndAuthor(ctx context.Context, bookingID, authorID string) (*models.Review, error)
	// Create inserts a review. It returns ErrDuplicateReview when the (booking, author) pair exists.
	Create(ctx context.Context, review *models.Review) error
	// ListByAuthor returns reviews written by authorID while acting as role, newest first.
	ListByAuthor(ctx context.Context, authorID string, role models.Role) ([]models.Review, error)
	// ListByRecipient returns reviews received by recipientID in role, newest first.
	ListByRecipient(ctx context.Context, recipientID string, role models.Role) ([]models.Review, error)
	// SummaryForRecipient aggregates the submitted ratings recipientID received in role.
	SummaryForRecipient(ctx context.Context, recipientID string, role models.Role) (models.RatingSummary, error)
}
