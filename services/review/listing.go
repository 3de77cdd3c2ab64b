package review

import (
	"context"
	"fmt"

	"reviewdesk/models"
)

// GetUserReviews returns the reviews userID wrote (authored) or received while acting as
// role, in the order the store returns them.
func (s *DefaultReviewService) GetUserReviews(ctx context.Context, role models.Role, userID string, authored bool) ([]models.Review, error) {
	var (
		reviews []models.Review
		err     error
	)
	if authored {
		reviews, err = s.Reviews.ListByAuthor(ctx, userID, role)
	} else {
		reviews, err = s.Reviews.ListByRecipient(ctx, userID, role)
	}
	if err != nil {
		return nil, fmt.Errorf("GetUserReviews: %w", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// GetUnreviewedBookings returns the bookings where userID acted as role that userID can
// review now and has not reviewed yet.
func (s *DefaultReviewService) GetUnreviewedBookings(ctx context.Context, role models.Role, userID string) ([]models.Booking, error) {
	candidates, err := s.Bookings.GetUnreviewed(ctx, role, userID)
	if err != nil {
		return nil, fmt.Errorf("GetUnreviewedBookings: %w", err)
	}

	bookings := make([]models.Booking, 0, len(candidates))
	for i := range candidates {
		b := &candidates[i]
		if b.RoleOf(userID) != role {
			continue
		}
		if s.reviewable(b, userID) != nil {
			continue
		}
		bookings = append(bookings, *b)
	}
	return bookings, nil
}
