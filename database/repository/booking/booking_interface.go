package bookingRepo

import (
	"context"

	"reviewdesk/models"
)

// BookingRepository defines read access to bookings needed by the review flow.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID. It returns nil, nil when no booking matches.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetUnreviewed returns bookings where userID acts as role, whose status is reviewable,
	// and for which userID has not written a review yet. Newest first.
	GetUnreviewed(ctx context.Context, role models.Role, userID string) ([]models.Booking, error)
}
