package review

import (
	"context"
	"fmt"

	"reviewdesk/models"

	"github.com/google/uuid"
)

// GetBooking resolves bookingID.
func (s *DefaultReviewService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("GetBooking: %w", err)
	}
	if booking == nil {
		return nil, NewNotFoundError(fmt.Sprintf("booking %s not found", bookingID))
	}
	return booking, nil
}

// CreateDraft prepares a review of booking by userID addressed to the other participant.
// The draft is not stored; Process persists it.
func (s *DefaultReviewService) CreateDraft(ctx context.Context, booking *models.Booking, userID string) (*models.Review, error) {
	role := booking.RoleOf(userID)
	if role == "" {
		return nil, NewAuthorizationError(fmt.Sprintf("user %s is not a participant of booking %s", userID, booking.ID))
	}

	existing, err := s.Reviews.FindByBookingAndAuthor(ctx, booking.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("CreateDraft: %w", err)
	}
	if existing != nil {
		return nil, NewConflictError("Review already added for this booking by user")
	}

	return &models.Review{
		ID:            uuid.New().String(),
		BookingID:     booking.ID,
		AuthorID:      userID,
		AuthorRole:    role,
		RecipientID:   booking.Counterpart(role),
		RecipientRole: role.Opposite(),
		Status:        models.ReviewStatusDraft,
	}, nil
}

// Recipient loads the public profile of the draft's recipient. A recipient missing from
// the user store is shown by ID only.
func (s *DefaultReviewService) Recipient(ctx context.Context, draft *models.Review) (*models.PublicUser, error) {
	u, err := s.Users.GetByID(ctx, draft.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("Recipient: %w", err)
	}
	if u == nil {
		return &models.PublicUser{ID: draft.RecipientID}, nil
	}
	public := u.Public()
	return &public, nil
}
